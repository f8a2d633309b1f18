package syncerr

import (
	"fmt"
	"strings"
)

// ConfigurationError aborts a run before any fetch is attempted.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("woocommerce configuration is incomplete: %s", e.Message)
}

// RemoteAPIError is fatal for the whole run: the order fetch itself failed,
// either with a non-200 status or a payload that is not a JSON array.
type RemoteAPIError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *RemoteAPIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("woocommerce api error during %s: %d - %s", e.Operation, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("woocommerce api error during %s: %s", e.Operation, e.Body)
}

// ValidationError carries every structural defect found in one remote order.
// Operators read one log line per bad order, so all findings travel together.
type ValidationError struct {
	OrderID  int
	Findings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("order validation failed: %s", strings.Join(e.Findings, "; "))
}

// ResolutionError wraps a customer or item create/get failure with the value
// that was being resolved.
type ResolutionError struct {
	Entity string
	Key    string
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to create/get %s %q: %v", e.Entity, e.Key, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// ConcurrencyError signals that a status update collided with another writer.
// The orchestrator reloads and retries a bounded number of times before
// reporting a soft failure.
type ConcurrencyError struct {
	OrderName string
}

func (e *ConcurrencyError) Error() string {
	return fmt.Sprintf("sales order %s was modified by another writer", e.OrderName)
}
