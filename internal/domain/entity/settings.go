package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BusinessSettings is a single-row table holding the business profile used on
// receipts and the finance defaults (currency, labor tax convention).
type BusinessSettings struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	StoreName    string          `gorm:"size:255;not null" json:"store_name"`
	Address      *string         `gorm:"type:text" json:"address,omitempty"`
	Phone        *string         `gorm:"size:50" json:"phone,omitempty"`
	TaxID        *string         `gorm:"size:50;column:tax_id" json:"tax_id,omitempty"`
	CurrencyCode string          `gorm:"size:3;not null;default:'INR'" json:"currency_code"`
	LaborTaxRate decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"labor_tax_rate"`
	PrinterWidth int             `gorm:"default:32" json:"printer_width"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating the settings row
func (s *BusinessSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BusinessSettings model
func (BusinessSettings) TableName() string {
	return "business_settings"
}
