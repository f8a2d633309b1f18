package sync

import (
	"WooWithERPNext/internal/config"
	"WooWithERPNext/internal/erpstore"
	"WooWithERPNext/internal/status"
	"WooWithERPNext/internal/wooapi/models"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *erpstore.Store) {
	t.Helper()

	store, err := erpstore.NewStoreInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	cfg := new(config.Config)
	cfg.SYNC.EnableSync = true
	cfg.SYNC.Interval = config.IntervalDaily

	return NewService(cfg, nil, store), store
}

func TestUpsertOrderCreatesSubmittedOrder(t *testing.T) {
	Assert := assert.New(t)
	svc, store := newTestService(t)

	require.NoError(t, svc.UpsertOrder(validWooOrder()))

	order, err := store.FindSalesOrderByWooID("501")
	require.NoError(t, err)
	require.NotNil(t, order)

	Assert.Equal(status.ToDeliverAndBill, order.Status)
	Assert.Equal(status.DocStatusSubmitted, order.DocStatus)
	Assert.Equal("A B", order.Customer)
	Assert.True(order.Total.Equal(decimal.RequireFromString("20.00")), "total = %s", order.Total)

	items, err := store.SalesOrderItems(order.Name)
	require.NoError(t, err)
	require.Len(t, items, 1)
	Assert.Equal("W1", items[0].ItemCode)
	Assert.Equal(2.0, items[0].Qty)
	Assert.True(items[0].Amount.Equal(decimal.RequireFromString("20.00")))

	var customerCount int
	require.NoError(t, store.DB.Get(&customerCount, "SELECT COUNT(*) FROM Customer WHERE Name = 'A B'"))
	Assert.Equal(1, customerCount)
}

func TestUpsertOrderIsIdempotent(t *testing.T) {
	Assert := assert.New(t)
	svc, store := newTestService(t)

	require.NoError(t, svc.UpsertOrder(validWooOrder()))
	require.NoError(t, svc.UpsertOrder(validWooOrder()))

	n, err := store.CountSalesOrdersByWooID("501")
	require.NoError(t, err)
	Assert.Equal(1, n)
}

func TestUpsertOrderStatusTransitions(t *testing.T) {
	Assert := assert.New(t)
	svc, store := newTestService(t)

	require.NoError(t, svc.UpsertOrder(validWooOrder()))

	// processing -> completed is a sanctioned forward transition
	completed := validWooOrder()
	completed.Status = "completed"
	require.NoError(t, svc.UpsertOrder(completed))

	order, err := store.FindSalesOrderByWooID("501")
	require.NoError(t, err)
	Assert.Equal(status.Completed, order.Status)

	// completed -> processing is rejected by the guard, order untouched
	back := validWooOrder()
	require.NoError(t, svc.UpsertOrder(back))

	order, err = store.FindSalesOrderByWooID("501")
	require.NoError(t, err)
	Assert.Equal(status.Completed, order.Status)
	Assert.Equal(status.DocStatusSubmitted, order.DocStatus)

	n, err := store.CountSalesOrdersByWooID("501")
	require.NoError(t, err)
	Assert.Equal(1, n)
}

func TestUpsertOrderCancelledStaysDraftDocument(t *testing.T) {
	Assert := assert.New(t)
	svc, store := newTestService(t)

	wcOrder := validWooOrder()
	wcOrder.Status = "cancelled"
	require.NoError(t, svc.UpsertOrder(wcOrder))

	order, err := store.FindSalesOrderByWooID("501")
	require.NoError(t, err)
	Assert.Equal(status.Cancelled, order.Status)
	Assert.Equal(status.DocStatusDraft, order.DocStatus)
}

func TestUpsertOrderPendingStaysDraft(t *testing.T) {
	Assert := assert.New(t)
	svc, store := newTestService(t)

	wcOrder := validWooOrder()
	wcOrder.Status = "pending"
	require.NoError(t, svc.UpsertOrder(wcOrder))

	order, err := store.FindSalesOrderByWooID("501")
	require.NoError(t, err)
	Assert.Equal(status.Draft, order.Status)
	Assert.Equal(status.DocStatusDraft, order.DocStatus)
}

func TestUpsertOrderStoreLocation(t *testing.T) {
	Assert := assert.New(t)
	svc, store := newTestService(t)

	wcOrder := validWooOrder()
	wcOrder.Status = "pending"
	wcOrder.MetaData = []models.MetaData{
		{Key: "_selected_store_location", Value: "Montreal"},
		{Key: "_selected_store_location_key", Value: "store_location_1"},
	}
	require.NoError(t, svc.UpsertOrder(wcOrder))

	order, err := store.FindSalesOrderByWooID("501")
	require.NoError(t, err)
	Assert.Equal("Montreal", order.StoreLocation)

	// still a draft, so a changed location overwrites
	wcOrder.MetaData[0].Value = "Laval"
	require.NoError(t, svc.UpsertOrder(wcOrder))

	order, err = store.FindSalesOrderByWooID("501")
	require.NoError(t, err)
	Assert.Equal("Laval", order.StoreLocation)
}

func TestUpsertOrderLocationAndStatusChangeInOnePass(t *testing.T) {
	Assert := assert.New(t)
	svc, store := newTestService(t)

	wcOrder := validWooOrder()
	wcOrder.Status = "pending"
	wcOrder.MetaData = []models.MetaData{
		{Key: "_selected_store_location", Value: "Montreal"},
	}
	require.NoError(t, svc.UpsertOrder(wcOrder))

	// a repeat sync carrying both a new location and a status move must land
	// on the first attempt instead of burning a retry on its own write
	wcOrder.Status = "processing"
	wcOrder.MetaData[0].Value = "Laval"
	start := time.Now()
	require.NoError(t, svc.UpsertOrder(wcOrder))
	Assert.Less(time.Since(start), retryBackoff)

	order, err := store.FindSalesOrderByWooID("501")
	require.NoError(t, err)
	Assert.Equal(status.ToDeliverAndBill, order.Status)
	Assert.Equal("Laval", order.StoreLocation)
}

func TestUpsertOrderStoreLocationFrozenAfterSubmit(t *testing.T) {
	Assert := assert.New(t)
	svc, store := newTestService(t)

	wcOrder := validWooOrder()
	wcOrder.MetaData = []models.MetaData{
		{Key: "_selected_store_location", Value: "Montreal"},
	}
	require.NoError(t, svc.UpsertOrder(wcOrder))

	wcOrder.MetaData[0].Value = "Laval"
	require.NoError(t, svc.UpsertOrder(wcOrder))

	order, err := store.FindSalesOrderByWooID("501")
	require.NoError(t, err)
	Assert.Equal(status.DocStatusSubmitted, order.DocStatus)
	Assert.Equal("Montreal", order.StoreLocation)
}

func TestUpsertOrderCustomerReusedByForeignID(t *testing.T) {
	Assert := assert.New(t)
	svc, store := newTestService(t)

	first := validWooOrder()
	first.CustomerID = 42
	require.NoError(t, svc.UpsertOrder(first))

	second := validWooOrder()
	second.ID = 502
	second.CustomerID = 42
	require.NoError(t, svc.UpsertOrder(second))

	var n int
	require.NoError(t, store.DB.Get(&n, "SELECT COUNT(*) FROM Customer WHERE WooCustomerID = '42'"))
	Assert.Equal(1, n)
}

func TestUpsertOrderWithTaxLines(t *testing.T) {
	Assert := assert.New(t)
	svc, store := newTestService(t)

	wcOrder := validWooOrder()
	wcOrder.TaxLines = []models.TaxLine{
		{Label: "GST", Rate: "5"},
		{Label: "QST", Rate: "9.975"},
	}
	require.NoError(t, svc.UpsertOrder(wcOrder))

	order, err := store.FindSalesOrderByWooID("501")
	require.NoError(t, err)
	Assert.Equal("Default Sales Taxes", order.TaxTemplate)

	var taxes []erpstore.SalesOrderTax
	require.NoError(t, store.DB.Select(&taxes, "SELECT * FROM SalesOrderTax WHERE ParentOrder = ?", order.Name))
	require.Len(t, taxes, 2)
	Assert.Equal("On Net Total", taxes[0].ChargeType)
	Assert.Equal("Sales Tax Payable", taxes[0].AccountHead)
	Assert.Equal("GST", taxes[0].Description)
	Assert.True(taxes[1].Rate.Equal(decimal.RequireFromString("9.975")))
}

func TestDeriveCustomerName(t *testing.T) {
	Assert := assert.New(t)

	Assert.Equal("A B", deriveCustomerName(&models.Billing{FirstName: "A", LastName: "B", Email: "a@x.com"}))
	Assert.Equal("A", deriveCustomerName(&models.Billing{FirstName: " A ", Email: "a@x.com"}))
	Assert.Equal("someone", deriveCustomerName(&models.Billing{Email: "someone@x.com"}))

	placeholder := deriveCustomerName(&models.Billing{})
	Assert.Contains(placeholder, "WooCommerce Customer ")
}
