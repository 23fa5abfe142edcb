package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kamaug/opshub-api/internal/domain/enum"
	"github.com/kamaug/opshub-api/internal/domain/finance"
)

// Quotation represents a price quotation for a customer.
//
// The monetary breakdown is computed once by the totals calculator when the
// quotation is created and cached on the row; it is never recomputed on read.
// Line items and cost parameters are immutable after creation - only the
// status evolves.
type Quotation struct {
	ID                  uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID          *uuid.UUID           `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Reference           string               `gorm:"size:100;unique;not null" json:"reference"`
	Date                time.Time            `gorm:"type:date;not null" json:"date"`
	CustomerName        string               `gorm:"size:255" json:"customer_name"`
	LaborCost           decimal.Decimal      `gorm:"type:numeric(20,6);not null" json:"labor_cost"`
	DiscountPercent     decimal.Decimal      `gorm:"type:numeric(5,2);not null" json:"discount_percent"`
	TaxEnabled          bool                 `gorm:"not null;default:true" json:"tax_enabled"`
	ItemsSubtotal       decimal.Decimal      `gorm:"type:numeric(20,6);not null" json:"items_subtotal"`
	SubtotalWithLabor   decimal.Decimal      `gorm:"type:numeric(20,6);not null" json:"subtotal_with_labor"`
	DiscountAmount      decimal.Decimal      `gorm:"type:numeric(20,6);not null" json:"discount_amount"`
	AmountAfterDiscount decimal.Decimal      `gorm:"type:numeric(20,6);not null" json:"amount_after_discount"`
	TaxAmount           decimal.Decimal      `gorm:"type:numeric(20,6);not null" json:"tax_amount"`
	GrandTotal          decimal.Decimal      `gorm:"type:numeric(20,0);not null" json:"grand_total"`
	Status              enum.QuotationStatus `gorm:"default:0" json:"status"`
	Note                *string              `gorm:"type:text" json:"note,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
	DeletedAt           gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Details  []QuotationItem `gorm:"foreignKey:QuotationID" json:"details,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quotation
func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quotation model
func (Quotation) TableName() string {
	return "quotations"
}

// Breakdown reconstructs the cached totals breakdown from the stored columns.
func (q *Quotation) Breakdown() finance.TotalsBreakdown {
	return finance.TotalsBreakdown{
		ItemsSubtotal:       q.ItemsSubtotal,
		SubtotalWithLabor:   q.SubtotalWithLabor,
		DiscountAmount:      q.DiscountAmount,
		AmountAfterDiscount: q.AmountAfterDiscount,
		TaxAmount:           q.TaxAmount,
		GrandTotal:          q.GrandTotal,
	}
}

// ApplyBreakdown stores a computed breakdown on the quotation row.
func (q *Quotation) ApplyBreakdown(b finance.TotalsBreakdown) {
	q.ItemsSubtotal = b.ItemsSubtotal
	q.SubtotalWithLabor = b.SubtotalWithLabor
	q.DiscountAmount = b.DiscountAmount
	q.AmountAfterDiscount = b.AmountAfterDiscount
	q.TaxAmount = b.TaxAmount
	q.GrandTotal = b.GrandTotal
}

// QuotationItem represents a line item in a quotation
type QuotationItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	QuotationID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"quotation_id"`
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
	Quotation Quotation `gorm:"foreignKey:QuotationID" json:"-"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quotation item
func (qi *QuotationItem) BeforeCreate(tx *gorm.DB) error {
	if qi.ID == uuid.Nil {
		qi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuotationItem model
func (QuotationItem) TableName() string {
	return "quotation_items"
}
