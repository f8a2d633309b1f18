package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Order is one order object as returned by the WooCommerce REST API.
type Order struct {
	ID          int        `json:"id"`
	Status      string     `json:"status"`
	Currency    string     `json:"currency"`
	DateCreated string     `json:"date_created"`
	Total       string     `json:"total"`
	CustomerID  int        `json:"customer_id"`
	Billing     *Billing   `json:"billing"`
	LineItems   []LineItem `json:"line_items"`
	TaxLines    []TaxLine  `json:"tax_lines"`
	MetaData    []MetaData `json:"meta_data"`
}

type Billing struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type LineItem struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	ProductID   int        `json:"product_id"`
	Quantity    float64    `json:"quantity"`
	SKU         string     `json:"sku"`
	Price       Price      `json:"price"`
	Total       string     `json:"total"`
	Description string     `json:"description"`
	MetaData    []MetaData `json:"meta_data"`
}

// Price decodes leniently. WooCommerce documents price as a number, but
// plugins substitute quoted strings or "", and one bad value must not fail
// the whole payload. An unusable price comes out as not Valid.
type Price struct {
	Float64 float64
	Valid   bool
}

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	p.Float64 = v
	p.Valid = true
	return nil
}

type TaxLine struct {
	ID       int         `json:"id"`
	RateCode string      `json:"rate_code"`
	Label    string      `json:"label"`
	Rate     json.Number `json:"rate"`
	TaxTotal string      `json:"tax_total"`
}

// MetaData values are not uniformly typed: plain strings for checkout fields,
// nested arrays for add-on plugins such as _ywapo_meta_data. The value is
// kept loose here and interpreted where it is consumed.
type MetaData struct {
	ID           int         `json:"id"`
	Key          string      `json:"key"`
	DisplayKey   string      `json:"display_key"`
	Value        interface{} `json:"value"`
	DisplayValue interface{} `json:"display_value"`
}

// StringValue returns the meta value when it is a plain string.
func (m *MetaData) StringValue() string {
	if s, ok := m.Value.(string); ok {
		return s
	}
	return ""
}

// OrderUpdateRequest is the body of PUT /orders/{id} for the invoice push.
type OrderUpdateRequest struct {
	Status   string     `json:"status,omitempty"`
	MetaData []MetaData `json:"meta_data,omitempty"`
}
