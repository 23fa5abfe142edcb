package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kamaug/opshub-api/internal/domain/enum"
)

// Purchase represents a purchase order to a supplier.
// Receiving the order restocks the referenced products.
type Purchase struct {
	ID           uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	SupplierID   *uuid.UUID          `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	SupplierName string              `gorm:"size:255" json:"supplier_name"`
	PurchaseNo   string              `gorm:"size:100;unique;not null" json:"purchase_no"`
	Date         time.Time           `gorm:"type:date;not null" json:"date"`
	Status       enum.PurchaseStatus `gorm:"default:0" json:"status"`
	TotalAmount  decimal.Decimal     `gorm:"type:numeric(20,6);not null" json:"total_amount"`
	Note         *string             `gorm:"type:text" json:"note,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	DeletedAt    gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relationships
	Supplier *Supplier      `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Details  []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"details,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseItem represents a line item in a purchase order
type PurchaseItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseID uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_id"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitCost   decimal.Decimal `gorm:"type:numeric(20,6);not null" json:"unit_cost"`
	Total      decimal.Decimal `gorm:"type:numeric(20,6);not null" json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Purchase Purchase `gorm:"foreignKey:PurchaseID" json:"-"`
	Product  Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase item
func (pi *PurchaseItem) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseItem model
func (PurchaseItem) TableName() string {
	return "purchase_items"
}
