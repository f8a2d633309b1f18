package erpstore

import (
	"WooWithERPNext/internal/status"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID            int    `db:"ID"`
	Name          string `db:"Name"`
	CustomerType  string `db:"CustomerType"`
	CustomerGroup string `db:"CustomerGroup"`
	Territory     string `db:"Territory"`
	EmailID       string `db:"EmailID"`
	Phone         string `db:"Phone"`
	AddressLine1  string `db:"AddressLine1"`
	City          string `db:"City"`
	State         string `db:"State"`
	Pincode       string `db:"Pincode"`
	Country       string `db:"Country"`
	WooCustomerID string `db:"WooCustomerID"`
}

type Item struct {
	ID          int    `db:"ID"`
	ItemCode    string `db:"ItemCode"`
	ItemName    string `db:"ItemName"`
	Description string `db:"Description"`
	ItemGroup   string `db:"ItemGroup"`
	StockUOM    string `db:"StockUOM"`
	IsStockItem int    `db:"IsStockItem"`
	IsSalesItem int    `db:"IsSalesItem"`
	IsPurchase  int    `db:"IsPurchaseItem"`
}

// SalesOrder is the back-office document a remote order reconciles into.
// WooOrderID is the idempotency key; Version backs the optimistic
// compare-and-swap on status updates.
type SalesOrder struct {
	ID              int                `db:"ID"`
	Name            string             `db:"Name"`
	Customer        string             `db:"Customer"`
	WooOrderID      string             `db:"WooOrderID"`
	Status          status.OrderStatus `db:"Status"`
	DocStatus       status.DocStatus   `db:"DocStatus"`
	TransactionDate string             `db:"TransactionDate"`
	DeliveryDate    string             `db:"DeliveryDate"`
	StoreLocation   string             `db:"StoreLocation"`
	TaxTemplate     string             `db:"TaxTemplate"`
	Total           decimal.Decimal    `db:"Total"`
	Version         int                `db:"Version"`
}

type SalesOrderItem struct {
	ID          int             `db:"ID"`
	ParentOrder string          `db:"ParentOrder"`
	ItemCode    string          `db:"ItemCode"`
	Qty         float64         `db:"Qty"`
	Rate        decimal.Decimal `db:"Rate"`
	Amount      decimal.Decimal `db:"Amount"`
}

type SalesOrderTax struct {
	ID          int             `db:"ID"`
	ParentOrder string          `db:"ParentOrder"`
	ChargeType  string          `db:"ChargeType"`
	AccountHead string          `db:"AccountHead"`
	Rate        decimal.Decimal `db:"Rate"`
	Description string          `db:"Description"`
}

type SalesInvoice struct {
	ID         int    `db:"ID"`
	Name       string `db:"Name"`
	SalesOrder string `db:"SalesOrder"`
	Status     string `db:"Status"`
}

type CustomerGroup struct {
	ID          int    `db:"ID"`
	Name        string `db:"Name"`
	ParentGroup string `db:"ParentGroup"`
	IsGroup     int    `db:"IsGroup"`
}

type Territory struct {
	ID              int    `db:"ID"`
	Name            string `db:"Name"`
	ParentTerritory string `db:"ParentTerritory"`
	IsGroup         int    `db:"IsGroup"`
}

type Account struct {
	ID          int    `db:"ID"`
	Name        string `db:"Name"`
	AccountType string `db:"AccountType"`
	IsDefault   int    `db:"IsDefault"`
}

type TaxTemplate struct {
	ID        int    `db:"ID"`
	Name      string `db:"Name"`
	IsDefault int    `db:"IsDefault"`
}

// SyncState is a singleton row updated by the run controller at the end of
// every run.
type SyncState struct {
	ID         int    `db:"ID"`
	LastSync   string `db:"LastSync"`
	LastStatus string `db:"LastStatus"`
}
