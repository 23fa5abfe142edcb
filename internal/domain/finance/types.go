package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kamaug/opshub-api/internal/domain/enum"
)

// LineItem is one billable line of a quotation or invoice draft.
// Quantity * UnitPrice is the item's pre-tax line amount.
type LineItem struct {
	ID            string
	Description   string
	Quantity      decimal.Decimal
	Unit          string
	UnitPrice     decimal.Decimal
	TaxRate       decimal.Decimal // percentage in [0,100]
	SerialNumbers []string        // traceability only, never priced
}

// LineAmount returns Quantity * UnitPrice.
func (li LineItem) LineAmount() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// CostParameters are the document-level cost inputs applied on top of line items.
type CostParameters struct {
	LaborCost       decimal.Decimal
	DiscountPercent decimal.Decimal // percentage in [0,100]
}

// TotalsBreakdown is the derived monetary breakdown of a document.
// All intermediate values are exact; only GrandTotal is rounded
// (half-up, 0 decimal places) to match display and payment matching.
// A breakdown is computed once at document creation and never mutated.
type TotalsBreakdown struct {
	ItemsSubtotal       decimal.Decimal `json:"items_subtotal"`
	SubtotalWithLabor   decimal.Decimal `json:"subtotal_with_labor"`
	DiscountAmount      decimal.Decimal `json:"discount_amount"`
	AmountAfterDiscount decimal.Decimal `json:"amount_after_discount"`
	TaxAmount           decimal.Decimal `json:"tax_amount"`
	GrandTotal          decimal.Decimal `json:"grand_total"`
}

// Payment is a single recorded payment against an invoice.
// Payments are append-only: once recorded they are never edited or deleted.
type Payment struct {
	ID     string
	Amount decimal.Decimal
	Date   time.Time
	Method enum.PaymentMethod
}

// LedgerResult is the outcome of folding an invoice's payment history.
type LedgerResult struct {
	Payments   []Payment
	AmountPaid decimal.Decimal
	AmountDue  decimal.Decimal
	Status     enum.InvoiceStatus
}
