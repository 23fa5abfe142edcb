package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kamaug/opshub-api/internal/domain/enum"
)

// Payment is a recorded payment against an invoice.
//
// Payments are append-only: there is no update or delete path anywhere in
// the application. Cancelling an invoice changes the invoice status, never
// the payment history.
type Payment struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID          `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Amount    decimal.Decimal    `gorm:"type:numeric(20,6);not null" json:"amount"`
	Date      time.Time          `gorm:"not null" json:"date"`
	Method    enum.PaymentMethod `gorm:"default:0" json:"method"`
	Reference *string            `gorm:"size:255" json:"reference,omitempty"`
	CreatedAt time.Time          `json:"created_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
