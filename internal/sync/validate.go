package sync

import (
	"WooWithERPNext/internal/status"
	"WooWithERPNext/internal/syncerr"
	"WooWithERPNext/internal/wooapi/models"
	"fmt"
	"math"
)

// ValidateOrder checks one remote order before any side effect is attempted.
// It accumulates every violation instead of failing on the first one, so the
// operator gets the complete defect list in a single error.
func ValidateOrder(wcOrder *models.Order) error {
	var findings []string

	if wcOrder.ID == 0 {
		findings = append(findings, "order ID is missing")
	}

	if wcOrder.Billing == nil {
		findings = append(findings, "billing information is missing")
	} else if wcOrder.Billing.Email == "" {
		findings = append(findings, "customer email is missing")
	}

	if len(wcOrder.LineItems) == 0 {
		findings = append(findings, "order has no line items")
	} else {
		for i, item := range wcOrder.LineItems {
			if item.Name == "" {
				findings = append(findings, fmt.Sprintf("line item %d has no name", i+1))
			}
			if item.Quantity <= 0 {
				findings = append(findings, fmt.Sprintf("line item %d has invalid quantity", i+1))
			}
			if !item.Price.Valid || math.IsNaN(item.Price.Float64) {
				findings = append(findings, fmt.Sprintf("line item %d has no price", i+1))
			}
		}
	}

	if !status.IsRecognizedWooStatus(wcOrder.Status) {
		findings = append(findings, fmt.Sprintf("invalid order status: %s", wcOrder.Status))
	}

	if len(findings) > 0 {
		return &syncerr.ValidationError{OrderID: wcOrder.ID, Findings: findings}
	}
	return nil
}
