package sync

import (
	"WooWithERPNext/internal/erpstore"
	"WooWithERPNext/internal/wooapi/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncInvoiceToWoo(t *testing.T) {
	Assert := assert.New(t)
	svc, store := newTestService(t)

	mock := &wooapiMock{}
	svc.woo = mock

	require.NoError(t, svc.UpsertOrder(validWooOrder()))
	order, err := store.FindSalesOrderByWooID("501")
	require.NoError(t, err)

	require.NoError(t, store.CreateSalesInvoice(&erpstore.SalesInvoice{
		Name:       "SINV-0001",
		SalesOrder: order.Name,
		Status:     "Submitted",
	}))

	wooOrderID, err := svc.SyncInvoiceToWoo("SINV-0001")
	require.NoError(t, err)
	Assert.Equal("501", wooOrderID)

	require.Contains(t, mock.updated, 501)
	body := mock.updated[501]
	Assert.Equal("completed", body.Status)
	require.Len(t, body.MetaData, 1)
	Assert.Equal("erpnext_invoice", body.MetaData[0].Key)
	Assert.Equal("SINV-0001", body.MetaData[0].Value)
}

func TestSyncInvoiceToWooMissingInvoice(t *testing.T) {
	svc, _ := newTestService(t)
	svc.woo = &wooapiMock{}

	_, err := svc.SyncInvoiceToWoo("SINV-MISSING")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSyncInvoiceToWooUnlinkedInvoice(t *testing.T) {
	svc, store := newTestService(t)
	svc.woo = &wooapiMock{}

	require.NoError(t, store.CreateSalesInvoice(&erpstore.SalesInvoice{Name: "SINV-0002"}))

	_, err := svc.SyncInvoiceToWoo("SINV-0002")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no WooCommerce order ID")
}

func TestGetInvoiceSyncStatus(t *testing.T) {
	Assert := assert.New(t)
	svc, store := newTestService(t)

	require.NoError(t, svc.UpsertOrder(validWooOrder()))
	order, err := store.FindSalesOrderByWooID("501")
	require.NoError(t, err)
	require.NoError(t, store.CreateSalesInvoice(&erpstore.SalesInvoice{
		Name:       "SINV-0001",
		SalesOrder: order.Name,
	}))

	mock := &wooapiMock{
		getResponse: &models.Order{
			ID:     501,
			Status: "completed",
			MetaData: []models.MetaData{
				{Key: "erpnext_invoice", Value: "SINV-0001"},
			},
		},
	}
	svc.woo = mock

	invoiceStatus, err := svc.GetInvoiceSyncStatus("SINV-0001")
	require.NoError(t, err)
	Assert.True(invoiceStatus.IsSynced)
	Assert.Equal("501", invoiceStatus.WooOrderID)
	Assert.Equal("completed", invoiceStatus.WooOrderStatus)

	// a different invoice tag does not count as synced
	mock.getResponse.MetaData[0].Value = "SINV-OTHER"
	invoiceStatus, err = svc.GetInvoiceSyncStatus("SINV-0001")
	require.NoError(t, err)
	Assert.False(invoiceStatus.IsSynced)
}
