package finance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kamaug/opshub-api/internal/domain/enum"
)

// ApplyPayment folds an invoice's payment history plus one new payment into
// amount paid, amount due and a recommended status.
//
// The fold itself is pure: it does not persist anything. The caller owns the
// append-only invariant (payments are never edited or deleted once recorded)
// and must persist the new payment before invoking ApplyPayment for the next
// recomputation. The sum is order-insensitive, so [P1, P2] and [P2, P1] yield
// the same amounts.
//
// Status is only ever recommended forward: amountPaid >= grandTotal means
// Paid, any positive amountPaid means Partially Paid, otherwise the current
// status is kept. A terminal current status (Paid, Cancelled) is never
// overwritten; applying a payment to such an invoice is an ErrTerminalStatus.
func ApplyPayment(grandTotal decimal.Decimal, existing []Payment, newPayment Payment, current enum.InvoiceStatus) (*LedgerResult, error) {
	if current.IsTerminal() {
		return nil, fmt.Errorf("cannot apply payment to %s invoice: %w", current, ErrTerminalStatus)
	}
	if !newPayment.Amount.IsPositive() {
		return nil, ErrInvalidPaymentAmount
	}

	payments := make([]Payment, 0, len(existing)+1)
	payments = append(payments, existing...)
	payments = append(payments, newPayment)

	amountPaid := decimal.Zero
	for _, p := range payments {
		if !p.Amount.IsPositive() {
			return nil, fmt.Errorf("payment %s: %w", p.ID, ErrInvalidPaymentAmount)
		}
		amountPaid = amountPaid.Add(p.Amount)
	}

	status := current
	switch {
	case amountPaid.GreaterThanOrEqual(grandTotal):
		status = enum.InvoiceStatusPaid
	case amountPaid.IsPositive():
		status = enum.InvoiceStatusPartiallyPaid
	}

	return &LedgerResult{
		Payments:   payments,
		AmountPaid: amountPaid,
		AmountDue:  grandTotal.Sub(amountPaid),
		Status:     status,
	}, nil
}

// FoldPayments recomputes amount paid and due from an invoice's full payment
// history without appending anything. Used when re-deriving display figures
// from stored payments.
func FoldPayments(grandTotal decimal.Decimal, payments []Payment) (amountPaid, amountDue decimal.Decimal) {
	amountPaid = decimal.Zero
	for _, p := range payments {
		amountPaid = amountPaid.Add(p.Amount)
	}
	return amountPaid, grandTotal.Sub(amountPaid)
}
