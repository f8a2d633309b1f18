package sync

import (
	"WooWithERPNext/internal/syncerr"
	"WooWithERPNext/internal/wooapi/models"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceOf(f float64) models.Price {
	return models.Price{Float64: f, Valid: true}
}

func validWooOrder() *models.Order {
	return &models.Order{
		ID:     501,
		Status: "processing",
		Billing: &models.Billing{
			Email:     "a@x.com",
			FirstName: "A",
			LastName:  "B",
		},
		LineItems: []models.LineItem{
			{Name: "Widget", SKU: "W1", Quantity: 2, Price: priceOf(10.00), Total: "20.00"},
		},
	}
}

func TestValidateOrderOK(t *testing.T) {
	assert.NoError(t, ValidateOrder(validWooOrder()))
}

func TestValidateOrderAccumulatesAllFindings(t *testing.T) {
	Assert := assert.New(t)

	// both defects must land in a single error, not just the first one
	wcOrder := &models.Order{
		ID:      77,
		Status:  "processing",
		Billing: &models.Billing{},
	}
	err := ValidateOrder(wcOrder)
	require.Error(t, err)

	var validationErr *syncerr.ValidationError
	require.ErrorAs(t, err, &validationErr)
	Assert.Contains(err.Error(), "customer email is missing")
	Assert.Contains(err.Error(), "order has no line items")
	Assert.Len(validationErr.Findings, 2)
}

func TestValidateOrderMissingID(t *testing.T) {
	wcOrder := validWooOrder()
	wcOrder.ID = 0
	err := ValidateOrder(wcOrder)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order ID is missing")
}

func TestValidateOrderMissingBilling(t *testing.T) {
	wcOrder := validWooOrder()
	wcOrder.Billing = nil
	err := ValidateOrder(wcOrder)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "billing information is missing")
}

func TestValidateOrderLineItemRules(t *testing.T) {
	Assert := assert.New(t)

	wcOrder := validWooOrder()
	wcOrder.LineItems = []models.LineItem{
		{Name: "", Quantity: 2, Price: priceOf(10.00), Total: "20.00"},
		{Name: "Widget", Quantity: 0, Price: priceOf(10.00), Total: "0.00"},
		{Name: "Widget", Quantity: 1, Price: models.Price{}, Total: "10.00"},
		{Name: "Widget", Quantity: 1, Price: priceOf(math.NaN()), Total: "10.00"},
	}
	err := ValidateOrder(wcOrder)
	require.Error(t, err)
	Assert.Contains(err.Error(), "line item 1 has no name")
	Assert.Contains(err.Error(), "line item 2 has invalid quantity")
	Assert.Contains(err.Error(), "line item 3 has no price")
	Assert.Contains(err.Error(), "line item 4 has no price")
}

func TestValidateOrderUnrecognizedStatus(t *testing.T) {
	wcOrder := validWooOrder()
	wcOrder.Status = "checkout-draft"
	err := ValidateOrder(wcOrder)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order status: checkout-draft")
}
