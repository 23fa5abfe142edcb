package finance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamaug/opshub-api/internal/domain/enum"
	"github.com/kamaug/opshub-api/internal/domain/finance"
)

func payment(id, amount string, method enum.PaymentMethod) finance.Payment {
	return finance.Payment{
		ID:     id,
		Amount: dec(amount),
		Date:   time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		Method: method,
	}
}

func TestApplyPayment_FirstPartialPayment(t *testing.T) {
	got, err := finance.ApplyPayment(dec("24780"), nil,
		payment("pay-1", "10000", enum.PaymentMethodOnline), enum.InvoiceStatusPending)
	require.NoError(t, err)

	assert.True(t, dec("10000").Equal(got.AmountPaid), "paid = %s", got.AmountPaid)
	assert.True(t, dec("14780").Equal(got.AmountDue), "due = %s", got.AmountDue)
	assert.Equal(t, enum.InvoiceStatusPartiallyPaid, got.Status)
	assert.Len(t, got.Payments, 1)
}

func TestApplyPayment_SettlesInvoice(t *testing.T) {
	existing := []finance.Payment{payment("pay-1", "10000", enum.PaymentMethodOnline)}

	got, err := finance.ApplyPayment(dec("24780"), existing,
		payment("pay-2", "14780", enum.PaymentMethodCash), enum.InvoiceStatusPartiallyPaid)
	require.NoError(t, err)

	assert.True(t, dec("24780").Equal(got.AmountPaid))
	assert.True(t, got.AmountDue.IsZero(), "due = %s", got.AmountDue)
	assert.Equal(t, enum.InvoiceStatusPaid, got.Status)
	assert.Len(t, got.Payments, 2)
}

func TestApplyPayment_Overpayment(t *testing.T) {
	got, err := finance.ApplyPayment(dec("5000"), nil,
		payment("pay-1", "6000", enum.PaymentMethodCard), enum.InvoiceStatusPending)
	require.NoError(t, err)

	assert.Equal(t, enum.InvoiceStatusPaid, got.Status)
	assert.True(t, dec("-1000").Equal(got.AmountDue), "overpayment shows as negative due: %s", got.AmountDue)
}

func TestApplyPayment_OrderInsensitive(t *testing.T) {
	p1 := payment("pay-1", "10000", enum.PaymentMethodOnline)
	p2 := payment("pay-2", "14780", enum.PaymentMethodCash)
	grand := dec("24780")

	forward, err := finance.ApplyPayment(grand, []finance.Payment{p1}, p2, enum.InvoiceStatusPartiallyPaid)
	require.NoError(t, err)
	reverse, err := finance.ApplyPayment(grand, []finance.Payment{p2}, p1, enum.InvoiceStatusPartiallyPaid)
	require.NoError(t, err)

	assert.True(t, forward.AmountPaid.Equal(reverse.AmountPaid))
	assert.True(t, forward.AmountDue.Equal(reverse.AmountDue))
	assert.Equal(t, forward.Status, reverse.Status)
}

func TestApplyPayment_RejectsNonPositiveAmount(t *testing.T) {
	for _, amount := range []string{"0", "-1", "-10000"} {
		_, err := finance.ApplyPayment(dec("24780"), nil,
			payment("pay-1", amount, enum.PaymentMethodCash), enum.InvoiceStatusPending)
		require.Error(t, err, "amount %s must be rejected", amount)
		assert.ErrorIs(t, err, finance.ErrInvalidPaymentAmount)
	}
}

func TestApplyPayment_TerminalStatusRefused(t *testing.T) {
	for _, status := range []enum.InvoiceStatus{enum.InvoiceStatusPaid, enum.InvoiceStatusCancelled} {
		_, err := finance.ApplyPayment(dec("24780"),
			[]finance.Payment{payment("pay-1", "24780", enum.PaymentMethodOnline)},
			payment("pay-2", "100", enum.PaymentMethodCash), status)
		require.Error(t, err, "status %s must refuse further payments", status)
		assert.ErrorIs(t, err, finance.ErrTerminalStatus)
	}
}

func TestApplyPayment_ZeroTotalInvoiceIsPaidImmediately(t *testing.T) {
	got, err := finance.ApplyPayment(decimal.Zero, nil,
		payment("pay-1", "1", enum.PaymentMethodCash), enum.InvoiceStatusPending)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPaid, got.Status)
}

func TestFoldPayments(t *testing.T) {
	payments := []finance.Payment{
		payment("pay-1", "10000", enum.PaymentMethodOnline),
		payment("pay-2", "4780", enum.PaymentMethodOther),
	}

	paid, due := finance.FoldPayments(dec("24780"), payments)
	assert.True(t, dec("14780").Equal(paid))
	assert.True(t, dec("10000").Equal(due))

	paid, due = finance.FoldPayments(dec("24780"), nil)
	assert.True(t, paid.IsZero())
	assert.True(t, dec("24780").Equal(due))
}

func TestInvoiceStatusStateMachine(t *testing.T) {
	tests := []struct {
		from, to enum.InvoiceStatus
		ok       bool
	}{
		{enum.InvoiceStatusPending, enum.InvoiceStatusPartiallyPaid, true},
		{enum.InvoiceStatusPending, enum.InvoiceStatusPaid, true},
		{enum.InvoiceStatusPending, enum.InvoiceStatusCancelled, true},
		{enum.InvoiceStatusPartiallyPaid, enum.InvoiceStatusPaid, true},
		{enum.InvoiceStatusPartiallyPaid, enum.InvoiceStatusCancelled, true},
		{enum.InvoiceStatusPartiallyPaid, enum.InvoiceStatusPending, false},
		{enum.InvoiceStatusPaid, enum.InvoiceStatusCancelled, false},
		{enum.InvoiceStatusPaid, enum.InvoiceStatusPending, false},
		{enum.InvoiceStatusCancelled, enum.InvoiceStatusPending, false},
		{enum.InvoiceStatusCancelled, enum.InvoiceStatusPaid, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestQuotationStatusStateMachine(t *testing.T) {
	tests := []struct {
		from, to enum.QuotationStatus
		ok       bool
	}{
		{enum.QuotationStatusDraft, enum.QuotationStatusSent, true},
		{enum.QuotationStatusDraft, enum.QuotationStatusApproved, false},
		{enum.QuotationStatusSent, enum.QuotationStatusApproved, true},
		{enum.QuotationStatusSent, enum.QuotationStatusRejected, true},
		{enum.QuotationStatusSent, enum.QuotationStatusDraft, false},
		{enum.QuotationStatusApproved, enum.QuotationStatusRejected, false},
		{enum.QuotationStatusRejected, enum.QuotationStatusSent, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}
