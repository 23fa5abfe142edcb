package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a product in the inventory
type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Code          string          `gorm:"size:100;unique;not null" json:"code"`
	Unit          string          `gorm:"size:50" json:"unit"`
	SellingPrice  decimal.Decimal `gorm:"type:numeric(20,6);not null" json:"selling_price"`
	TaxRate       decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"tax_rate"`
	StockQuantity int             `gorm:"default:0" json:"stock_quantity"`
	AlertQuantity int             `gorm:"default:0" json:"alert_quantity"`
	Notes         *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether the stock level is at or below the alert threshold.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.AlertQuantity
}
