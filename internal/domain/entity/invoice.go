package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kamaug/opshub-api/internal/domain/enum"
	"github.com/kamaug/opshub-api/internal/domain/finance"
)

// Invoice represents a sales invoice.
//
// The monetary breakdown is cached at creation time, either computed from a
// validated draft or carried over verbatim from an approved quotation.
// AmountPaid/AmountDue are maintained by the payment ledger reducer each time
// a payment is appended; payments themselves are append-only.
type Invoice struct {
	ID                  uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID          *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	QuotationID         *uuid.UUID         `gorm:"type:uuid;index" json:"quotation_id,omitempty"`
	InvoiceNo           string             `gorm:"size:100;unique;not null" json:"invoice_no"`
	Date                time.Time          `gorm:"type:date;not null" json:"date"`
	CustomerName        string             `gorm:"size:255" json:"customer_name"`
	LaborCost           decimal.Decimal    `gorm:"type:numeric(20,6);not null" json:"labor_cost"`
	DiscountPercent     decimal.Decimal    `gorm:"type:numeric(5,2);not null" json:"discount_percent"`
	TaxEnabled          bool               `gorm:"not null;default:true" json:"tax_enabled"`
	ItemsSubtotal       decimal.Decimal    `gorm:"type:numeric(20,6);not null" json:"items_subtotal"`
	SubtotalWithLabor   decimal.Decimal    `gorm:"type:numeric(20,6);not null" json:"subtotal_with_labor"`
	DiscountAmount      decimal.Decimal    `gorm:"type:numeric(20,6);not null" json:"discount_amount"`
	AmountAfterDiscount decimal.Decimal    `gorm:"type:numeric(20,6);not null" json:"amount_after_discount"`
	TaxAmount           decimal.Decimal    `gorm:"type:numeric(20,6);not null" json:"tax_amount"`
	GrandTotal          decimal.Decimal    `gorm:"type:numeric(20,0);not null" json:"grand_total"`
	AmountPaid          decimal.Decimal    `gorm:"type:numeric(20,6);not null" json:"amount_paid"`
	AmountDue           decimal.Decimal    `gorm:"type:numeric(20,6);not null" json:"amount_due"`
	Status              enum.InvoiceStatus `gorm:"default:0" json:"status"`
	Note                *string            `gorm:"type:text" json:"note,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
	DeletedAt           gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Customer  *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Quotation *Quotation    `gorm:"foreignKey:QuotationID" json:"-"`
	Details   []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"details,omitempty"`
	Payments  []Payment     `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// Breakdown reconstructs the cached totals breakdown from the stored columns.
func (i *Invoice) Breakdown() finance.TotalsBreakdown {
	return finance.TotalsBreakdown{
		ItemsSubtotal:       i.ItemsSubtotal,
		SubtotalWithLabor:   i.SubtotalWithLabor,
		DiscountAmount:      i.DiscountAmount,
		AmountAfterDiscount: i.AmountAfterDiscount,
		TaxAmount:           i.TaxAmount,
		GrandTotal:          i.GrandTotal,
	}
}

// ApplyBreakdown stores a computed breakdown on the invoice row.
func (i *Invoice) ApplyBreakdown(b finance.TotalsBreakdown) {
	i.ItemsSubtotal = b.ItemsSubtotal
	i.SubtotalWithLabor = b.SubtotalWithLabor
	i.DiscountAmount = b.DiscountAmount
	i.AmountAfterDiscount = b.AmountAfterDiscount
	i.TaxAmount = b.TaxAmount
	i.GrandTotal = b.GrandTotal
}

// LedgerPayments converts the stored payment rows into ledger payments
// for the reducer, preserving record order.
func (i *Invoice) LedgerPayments() []finance.Payment {
	out := make([]finance.Payment, len(i.Payments))
	for idx, p := range i.Payments {
		out[idx] = finance.Payment{
			ID:     p.ID.String(),
			Amount: p.Amount,
			Date:   p.Date,
			Method: p.Method,
		}
	}
	return out
}

// InvoiceItem represents a line item in an invoice
type InvoiceItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID     *uuid.UUID      `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Description   string          `gorm:"size:255;not null" json:"description"`
	Quantity      decimal.Decimal `gorm:"type:numeric(15,3);not null" json:"quantity"`
	Unit          string          `gorm:"size:50" json:"unit"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(20,6);not null" json:"unit_price"`
	TaxRate       decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"tax_rate"`
	LineAmount    decimal.Decimal `gorm:"type:numeric(20,6);not null" json:"line_amount"`
	SerialNumbers StringList      `gorm:"type:jsonb" json:"serial_numbers,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Invoice Invoice  `gorm:"foreignKey:InvoiceID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (ii *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if ii.ID == uuid.Nil {
		ii.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
