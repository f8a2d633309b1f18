package wooapi

import (
	"WooWithERPNext/internal/syncerr"
	"WooWithERPNext/internal/wooapi/models"
	optionsWoo "WooWithERPNext/internal/wooapi/options"
	"WooWithERPNext/pkg/logging"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/go-querystring/query"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type WOOAPI interface {
	OrderList(opts ...optionsWoo.Option) ([]*models.Order, error)
	OrderGet(ID int) (*models.Order, error)
	OrderUpdate(ID int, body *models.OrderUpdateRequest) (*models.Order, error)
}

type wooapi struct {
	url         string
	client      *resty.Client
	rps         int
	requestTime time.Time
}

// NewAPI builds a client for the WooCommerce v3 REST API. Credentials travel
// as query parameters; the per-call timeout comes from the config.
func NewAPI(url, key, secret string, timeoutSec, rps int) WOOAPI {
	client := resty.New().
		SetBaseURL(strings.TrimRight(url, "/") + "/wp-json/wc/v3").
		SetTimeout(time.Duration(timeoutSec) * time.Second).
		SetQueryParam("consumer_key", key).
		SetQueryParam("consumer_secret", secret).
		SetHeader("Content-Type", "application/json")

	if rps <= 0 {
		rps = 1
	}

	return &wooapi{
		url:    url,
		client: client,
		rps:    rps,
	}
}

// CheckRPS holds the caller back so that consecutive requests stay under the
// configured requests-per-second ceiling.
func (w *wooapi) CheckRPS() {
	logger := logging.GetLogger()

	TimeRequest := w.requestTime
	TimeNow := time.Now()
	TimeDiff := TimeNow.Sub(w.requestTime)
	TimeRPS := time.Second / time.Duration(w.rps)

	if TimeDiff <= TimeRPS {
		timeSleep := TimeRequest.Add(TimeRPS).Sub(TimeNow)
		logger.Debugf("Over RPS, timeSleep: %s", timeSleep)
		time.Sleep(timeSleep)
	}
}

// OrderList fetches orders filtered by the given options. The whole run
// depends on this call, so a non-200 status or a non-array payload comes back
// as a RemoteAPIError.
func (w *wooapi) OrderList(opts ...optionsWoo.Option) ([]*models.Order, error) {
	logger := logging.GetLogger()
	logger.Println("OrderList:>Start")
	defer logger.Println("OrderList:>End")

	w.CheckRPS()

	o := new(optionsWoo.OrderListOptions)
	for _, opt := range opts {
		opt(o)
	}
	params, err := query.Values(o)
	if err != nil {
		return nil, errors.Wrap(err, "failed query.Values(OrderListOptions)")
	}

	r, err := w.client.R().SetQueryParamsFromValues(params).Get("orders")
	w.requestTime = time.Now()
	if err != nil {
		return nil, &syncerr.RemoteAPIError{Operation: "fetch orders", Body: err.Error()}
	}
	if r.StatusCode() != http.StatusOK {
		return nil, &syncerr.RemoteAPIError{
			Operation:  "fetch orders",
			StatusCode: r.StatusCode(),
			Body:       string(r.Body()),
		}
	}

	var orderList []*models.Order
	if err := json.Unmarshal(r.Body(), &orderList); err != nil {
		return nil, &syncerr.RemoteAPIError{
			Operation: "fetch orders",
			Body:      fmt.Sprintf("unexpected response format, expected array: %v", err),
		}
	}
	logger.Debugf("X-WP-TotalPages: %s", r.Header().Get("X-WP-TotalPages"))
	return orderList, nil
}

func (w *wooapi) OrderGet(ID int) (*models.Order, error) {
	logger := logging.GetLogger()
	logger.Println("OrderGet:>Start")
	defer logger.Println("OrderGet:>End")

	w.CheckRPS()

	endpoint := fmt.Sprintf("orders/%d", ID)
	r, err := w.client.R().Get(endpoint)
	w.requestTime = time.Now()
	if err != nil {
		return nil, errors.Wrapf(err, "failed request to Woo Api, endpoint: %s", endpoint)
	}
	if r.StatusCode() != http.StatusOK {
		return nil, wooError(r)
	}

	var order models.Order
	if err := json.Unmarshal(r.Body(), &order); err != nil {
		return nil, errors.Wrapf(err, "failed json.Unmarshal, endpoint: %s", endpoint)
	}
	return &order, nil
}

// OrderUpdate pushes a partial update to one remote order. Used by the
// invoice path to set status=completed and attach the local invoice id.
func (w *wooapi) OrderUpdate(ID int, body *models.OrderUpdateRequest) (*models.Order, error) {
	logger := logging.GetLogger()
	logger.Println("OrderUpdate:>Start")
	defer logger.Println("OrderUpdate:>End")

	w.CheckRPS()

	endpoint := fmt.Sprintf("orders/%d", ID)
	r, err := w.client.R().SetBody(body).Put(endpoint)
	w.requestTime = time.Now()
	if err != nil {
		return nil, errors.Wrapf(err, "failed request to Woo Api, endpoint: %s", endpoint)
	}
	if r.StatusCode() != http.StatusOK && r.StatusCode() != http.StatusCreated {
		return nil, wooError(r)
	}

	var order models.Order
	if err := json.Unmarshal(r.Body(), &order); err != nil {
		return nil, errors.Wrapf(err, "failed json.Unmarshal, endpoint: %s", endpoint)
	}
	return &order, nil
}

func wooError(r *resty.Response) error {
	var errorWoo models.ErrorWoo
	if err := json.Unmarshal(r.Body(), &errorWoo); err != nil {
		return errors.Errorf("woocommerce error: status %d, body: %s", r.StatusCode(), string(r.Body()))
	}
	return &errorWoo
}
