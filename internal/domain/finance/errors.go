package finance

import (
	"errors"
	"fmt"
)

// Sentinel errors for the payment ledger.
var (
	// ErrInvalidPaymentAmount rejects non-positive payments before folding.
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")
	// ErrTerminalStatus rejects any attempt to apply a payment to a Paid or
	// Cancelled invoice; the ledger never transitions out of a terminal status.
	ErrTerminalStatus = errors.New("invoice status is terminal")
)

// ValidationError reports an out-of-range or negative numeric input.
// It is always surfaced before any computation proceeds; the engine never
// returns a partially computed breakdown alongside it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
