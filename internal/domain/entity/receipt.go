package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the store/business header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineAmount  decimal.Decimal `json:"line_amount"`
}

// Receipt is a value object representing a printable invoice.
// It is NOT a database entity - it is composed from the invoice's cached
// totals breakdown at print time; nothing is recomputed.
type Receipt struct {
	Header              ReceiptHeader   `json:"header"`
	InvoiceNo           string          `json:"invoice_no"`
	Date                string          `json:"date"`
	Customer            string          `json:"customer,omitempty"`
	Items               []ReceiptItem   `json:"items"`
	ItemsSubtotal       decimal.Decimal `json:"items_subtotal"`
	LaborCost           decimal.Decimal `json:"labor_cost"`
	DiscountAmount      decimal.Decimal `json:"discount_amount"`
	AmountAfterDiscount decimal.Decimal `json:"amount_after_discount"`
	TaxAmount           decimal.Decimal `json:"tax_amount"`
	GrandTotal          decimal.Decimal `json:"grand_total"`
	AmountPaid          decimal.Decimal `json:"amount_paid"`
	AmountDue           decimal.Decimal `json:"amount_due"`
	CurrencyCode        string          `json:"currency_code"`
}
