package sync

import (
	"WooWithERPNext/internal/wooapi/models"
	"WooWithERPNext/pkg/logging"
	"strconv"

	"github.com/pkg/errors"
)

const metaInvoiceKey = "erpnext_invoice"

// SyncInvoiceToWoo is the narrow back-office → storefront push: it marks the
// remote order completed and tags it with the local invoice name. Returns
// the WooCommerce order id that was updated.
func (s *Service) SyncInvoiceToWoo(invoiceName string) (string, error) {
	logger := logging.GetLogger()
	logger.Println("SyncInvoiceToWoo:>Start")
	defer logger.Println("SyncInvoiceToWoo:>End")

	invoice, err := s.store.GetSalesInvoice(invoiceName)
	if err != nil {
		return "", errors.Wrapf(err, "failed to load invoice %s", invoiceName)
	}
	if invoice == nil {
		return "", errors.Errorf("sales invoice %s not found", invoiceName)
	}
	if invoice.SalesOrder == "" {
		return "", errors.New("no WooCommerce order ID found for this invoice")
	}

	salesOrder, err := s.store.GetSalesOrder(invoice.SalesOrder)
	if err != nil {
		return "", errors.Wrapf(err, "failed to load sales order %s", invoice.SalesOrder)
	}
	if salesOrder.WooOrderID == "" {
		return "", errors.New("no WooCommerce order ID found for this invoice")
	}

	wooOrderID, err := strconv.Atoi(salesOrder.WooOrderID)
	if err != nil {
		return "", errors.Wrapf(err, "invalid WooOrderID %q on sales order %s", salesOrder.WooOrderID, salesOrder.Name)
	}

	_, err = s.woo.OrderUpdate(wooOrderID, &models.OrderUpdateRequest{
		Status: "completed",
		MetaData: []models.MetaData{
			{Key: metaInvoiceKey, Value: invoiceName},
		},
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to update WooCommerce order %d", wooOrderID)
	}

	logger.Infof("Successfully synced invoice %s to WooCommerce order %d", invoiceName, wooOrderID)
	return salesOrder.WooOrderID, nil
}

type InvoiceSyncStatus struct {
	IsSynced       bool   `json:"is_synced"`
	WooOrderID     string `json:"woocommerce_order_id"`
	WooOrderStatus string `json:"woocommerce_order_status"`
}

// GetInvoiceSyncStatus checks whether a prior invoice push left its meta tag
// on the remote order.
func (s *Service) GetInvoiceSyncStatus(invoiceName string) (*InvoiceSyncStatus, error) {
	invoice, err := s.store.GetSalesInvoice(invoiceName)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load invoice %s", invoiceName)
	}
	if invoice == nil {
		return nil, errors.Errorf("sales invoice %s not found", invoiceName)
	}
	if invoice.SalesOrder == "" {
		return nil, errors.New("no sales order linked to this invoice")
	}

	salesOrder, err := s.store.GetSalesOrder(invoice.SalesOrder)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load sales order %s", invoice.SalesOrder)
	}
	if salesOrder.WooOrderID == "" {
		return nil, errors.New("no WooCommerce order linked to this invoice")
	}

	wooOrderID, err := strconv.Atoi(salesOrder.WooOrderID)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid WooOrderID %q on sales order %s", salesOrder.WooOrderID, salesOrder.Name)
	}

	wcOrder, err := s.woo.OrderGet(wooOrderID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch WooCommerce order %d", wooOrderID)
	}

	isSynced := false
	for i := range wcOrder.MetaData {
		meta := &wcOrder.MetaData[i]
		if meta.Key == metaInvoiceKey && meta.StringValue() == invoiceName {
			isSynced = true
			break
		}
	}

	return &InvoiceSyncStatus{
		IsSynced:       isSynced,
		WooOrderID:     salesOrder.WooOrderID,
		WooOrderStatus: wcOrder.Status,
	}, nil
}
