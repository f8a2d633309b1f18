package sync

import (
	"WooWithERPNext/internal/erpstore"
	"WooWithERPNext/internal/status"
	"WooWithERPNext/internal/wooapi/models"
	"WooWithERPNext/pkg/logging"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	metaStoreLocation    = "_selected_store_location"
	metaStoreLocationKey = "_selected_store_location_key"

	maxUpdateRetries = 3
	retryBackoff     = time.Second
)

// UpsertOrder reconciles one remote order into the record store: an existing
// document only ever moves status (and, while still a draft, its store
// location); an unseen foreign id gets customer and item resolution and a
// fresh document. Re-running the same order never creates a second document.
func (s *Service) UpsertOrder(wcOrder *models.Order) error {
	logger := logging.GetLogger()
	logger.Infof("Starting order sync for WooCommerce order %d", wcOrder.ID)

	wooOrderID := strconv.Itoa(wcOrder.ID)
	storeLocation, storeLocationKey := getStoreLocation(wcOrder)
	if storeLocation != "" {
		logger.Infof("Store location extracted: %q (key: %s)", storeLocation, storeLocationKey)
	}

	existing, err := s.store.FindSalesOrderByWooID(wooOrderID)
	if err != nil {
		return errors.Wrapf(err, "failed lookup of order %d", wcOrder.ID)
	}

	if existing != nil {
		return s.updateExistingOrder(wcOrder, existing, storeLocation)
	}
	return s.createOrder(wcOrder, wooOrderID, storeLocation)
}

func (s *Service) updateExistingOrder(wcOrder *models.Order, existing *erpstore.SalesOrder, storeLocation string) error {
	logger := logging.GetLogger()
	logger.Infof("Order %d already exists as %s, checking for status update", wcOrder.ID, existing.Name)

	// Store location may only be overwritten while the document is still a
	// draft; submitted financial documents keep what they were booked with.
	if existing.DocStatus == status.DocStatusDraft && storeLocation != "" && existing.StoreLocation != storeLocation {
		logger.Infof("Updating store location of %s from %q to %q", existing.Name, existing.StoreLocation, storeLocation)
		if err := s.store.UpdateSalesOrderStoreLocation(existing.Name, storeLocation); err != nil {
			return errors.Wrapf(err, "failed to update store location of order %d", wcOrder.ID)
		}
		// the store bumped the document version; keep the local copy current
		// so the status update below does not collide with our own write
		existing.Version++
	}

	newStatus := status.FromWoo(wcOrder.Status)
	canUpdate, reason := status.CanTransition(existing.Status, existing.DocStatus, newStatus)
	if !canUpdate {
		logger.Infof("Order %d not updated: %s (current: %s, target: %s, docstatus: %s)",
			wcOrder.ID, reason, existing.Status, newStatus, existing.DocStatus)
		return nil
	}

	logger.Infof("Updating order %s status from %s to %s", existing.Name, existing.Status, newStatus)
	if err := s.updateOrderWithRetry(existing, newStatus); err != nil {
		return errors.Wrapf(err, "failed to update existing order %d", wcOrder.ID)
	}

	logger.Infof("Updated existing order %s status to %s", existing.Name, newStatus)
	return nil
}

// updateOrderWithRetry absorbs write conflicts from concurrent runs or
// manual edits: on a version clash the document is reloaded fresh and the
// mutation re-attempted up to the bound.
func (s *Service) updateOrderWithRetry(order *erpstore.SalesOrder, newStatus status.OrderStatus) error {
	logger := logging.GetLogger()

	var lastErr error
	for attempt := 1; attempt <= maxUpdateRetries; attempt++ {
		if attempt > 1 {
			time.Sleep(retryBackoff)
			reloaded, err := s.store.GetSalesOrder(order.Name)
			if err != nil {
				return errors.Wrapf(err, "failed to reload order %s", order.Name)
			}
			order = reloaded
		}

		lastErr = s.store.UpdateSalesOrderStatus(order.Name, newStatus, order.Version)
		if lastErr == nil {
			logger.Infof("Successfully updated %s on attempt %d", order.Name, attempt)
			return nil
		}
		logger.Infof("Update attempt %d for %s failed, retrying: %v", attempt, order.Name, lastErr)
	}

	return errors.Wrapf(lastErr, "failed after %d attempts", maxUpdateRetries)
}

func (s *Service) createOrder(wcOrder *models.Order, wooOrderID, storeLocation string) error {
	logger := logging.GetLogger()

	logger.Infof("Getting or creating customer for order %d", wcOrder.ID)
	customer, err := s.getOrCreateCustomer(wcOrder)
	if err != nil {
		return errors.Wrapf(err, "failed to create/get customer for order %d", wcOrder.ID)
	}
	logger.Infof("Customer obtained: %s", customer)

	items, total, err := s.buildOrderItems(wcOrder)
	if err != nil {
		return errors.Wrapf(err, "failed to process order items of order %d", wcOrder.ID)
	}
	if len(items) == 0 {
		return errors.Errorf("no valid items found in order %d", wcOrder.ID)
	}

	taxTemplate, taxes, err := s.buildTaxes(wcOrder)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve taxes of order %d", wcOrder.ID)
	}

	today := time.Now().Format("2006-01-02")
	transactionDate := today
	if wcOrder.DateCreated != "" {
		if parsed, err := dateparse.ParseAny(wcOrder.DateCreated); err == nil {
			transactionDate = parsed.Format("2006-01-02")
		}
	}

	order := &erpstore.SalesOrder{
		Name:            fmt.Sprintf("SO-%s", strings.ToUpper(randomSuffix(8))),
		Customer:        customer,
		WooOrderID:      wooOrderID,
		Status:          status.FromWoo(wcOrder.Status),
		DocStatus:       status.DocStatusDraft,
		TransactionDate: transactionDate,
		DeliveryDate:    today,
		StoreLocation:   storeLocation,
		TaxTemplate:     taxTemplate,
		Total:           total,
	}

	logger.Infof("Inserting sales order %s for WooCommerce order %d", order.Name, wcOrder.ID)
	if err := s.store.CreateSalesOrder(order, items, taxes); err != nil {
		return errors.Wrapf(err, "failed to insert sales order for order %d", wcOrder.ID)
	}

	// Most synced orders arrive already past the pending stage, so the
	// document is created and finalized in one logical step.
	if order.Status != status.Draft && order.Status != status.Cancelled {
		logger.Infof("Submitting sales order %s", order.Name)
		if err := s.store.SubmitSalesOrder(order.Name, order.Version); err != nil {
			return errors.Wrapf(err, "failed to submit sales order for order %d", wcOrder.ID)
		}
	}

	logger.Infof("Sales order %s created successfully (customer: %s, status: %s)", order.Name, customer, order.Status)
	return nil
}

func (s *Service) buildOrderItems(wcOrder *models.Order) ([]erpstore.SalesOrderItem, decimal.Decimal, error) {
	var items []erpstore.SalesOrderItem
	total := decimal.Zero

	for i := range wcOrder.LineItems {
		wcItem := &wcOrder.LineItems[i]

		itemCode, err := s.getOrCreateItem(wcItem)
		if err != nil {
			return nil, decimal.Zero, err
		}

		var rate decimal.Decimal
		if wcItem.Price.Valid {
			rate = decimal.NewFromFloat(wcItem.Price.Float64)
		}
		amount, err := decimal.NewFromString(wcItem.Total)
		if err != nil {
			return nil, decimal.Zero, errors.Wrapf(err, "failed to parse total %q of line item %d", wcItem.Total, i+1)
		}

		items = append(items, erpstore.SalesOrderItem{
			ItemCode: itemCode,
			Qty:      wcItem.Quantity,
			Rate:     rate,
			Amount:   amount,
		})
		total = total.Add(amount)
	}

	return items, total, nil
}

// getStoreLocation extracts the checkout store-location annotation from the
// order meta, when the storefront supplied one.
func getStoreLocation(wcOrder *models.Order) (string, string) {
	logger := logging.GetLogger()

	var storeLocation, storeLocationKey string
	for i := range wcOrder.MetaData {
		meta := &wcOrder.MetaData[i]
		switch meta.Key {
		case metaStoreLocation:
			storeLocation = meta.StringValue()
		case metaStoreLocationKey:
			storeLocationKey = meta.StringValue()
		}
	}

	if storeLocation == "" {
		logger.Debugf("No store location found for order %d", wcOrder.ID)
	}
	return storeLocation, storeLocationKey
}
