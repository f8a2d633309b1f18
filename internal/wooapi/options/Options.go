package options

// OrderListOptions is serialized into the query string of GET /orders by
// go-querystring.
type OrderListOptions struct {
	Status  string `url:"status,omitempty"`
	PerPage int    `url:"per_page,omitempty"`
	Page    int    `url:"page,omitempty"`
	After   string `url:"after,omitempty"`
}

type Option func(*OrderListOptions)

func Status(statuses string) Option {
	return func(o *OrderListOptions) {
		o.Status = statuses
	}
}

func PerPage(n int) Option {
	return func(o *OrderListOptions) {
		o.PerPage = n
	}
}

func Page(n int) Option {
	return func(o *OrderListOptions) {
		o.Page = n
	}
}

func After(date string) Option {
	return func(o *OrderListOptions) {
		o.After = date
	}
}
