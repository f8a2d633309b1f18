package models

import "fmt"

// ErrorWoo is the error envelope WooCommerce returns on non-200 responses.
type ErrorWoo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Status int `json:"status"`
	} `json:"data"`
}

func (e *ErrorWoo) Error() string {
	return fmt.Sprintf("woocommerce error: code: %s, message: %s, status: %d", e.Code, e.Message, e.Data.Status)
}
