package status

import "fmt"

// OrderStatus is the back-office sales-order status vocabulary.
type OrderStatus string

const (
	Draft            OrderStatus = "Draft"
	ToDeliverAndBill OrderStatus = "To Deliver and Bill"
	OnHold           OrderStatus = "On Hold"
	Completed        OrderStatus = "Completed"
	Cancelled        OrderStatus = "Cancelled"
	Closed           OrderStatus = "Closed"
)

// DocStatus is the document finalization state, independent of OrderStatus.
// A submitted financial document may only move forward along a short
// allow-list; a cancelled document never moves again.
type DocStatus int

const (
	DocStatusDraft     DocStatus = 0
	DocStatusSubmitted DocStatus = 1
	DocStatusCancelled DocStatus = 2
)

func (d DocStatus) String() string {
	switch d {
	case DocStatusDraft:
		return "Draft"
	case DocStatusSubmitted:
		return "Submitted"
	case DocStatusCancelled:
		return "Cancelled"
	default:
		return fmt.Sprintf("DocStatus(%d)", int(d))
	}
}

var wooStatusMapping = map[string]OrderStatus{
	"pending":    Draft,
	"processing": ToDeliverAndBill,
	"on-hold":    OnHold,
	"completed":  Completed,
	"cancelled":  Cancelled,
	"refunded":   Closed,
	"failed":     Cancelled,
}

// FromWoo maps a WooCommerce order status onto the local vocabulary.
// Unrecognized statuses fall back to Draft.
func FromWoo(wooStatus string) OrderStatus {
	if s, ok := wooStatusMapping[wooStatus]; ok {
		return s
	}
	return Draft
}

// RecognizedWooStatuses returns the remote statuses the sync includes, in
// fetch-filter order.
func RecognizedWooStatuses() []string {
	return []string{"pending", "processing", "on-hold", "completed", "cancelled", "refunded", "failed"}
}

// IsRecognizedWooStatus reports whether the validator should accept wooStatus.
func IsRecognizedWooStatus(wooStatus string) bool {
	_, ok := wooStatusMapping[wooStatus]
	return ok
}

var submittedTransitions = map[OrderStatus][]OrderStatus{
	ToDeliverAndBill: {Completed, Cancelled},
	Completed:        {Cancelled},
	Cancelled:        {},
}

// CanTransition decides whether a sales order in (current, doc) may move to
// next. The returned reason is informational either way; a rejected
// transition is not an error, the record is simply left alone.
func CanTransition(current OrderStatus, doc DocStatus, next OrderStatus) (bool, string) {
	if current == next {
		return false, "order already in target status"
	}

	switch doc {
	case DocStatusDraft:
		return true, "draft order can be updated"
	case DocStatusSubmitted:
		for _, allowed := range submittedTransitions[current] {
			if next == allowed {
				return true, "valid status transition"
			}
		}
		return false, fmt.Sprintf("invalid status transition from %s to %s", current, next)
	default:
		return false, "cancelled order cannot be updated"
	}
}
