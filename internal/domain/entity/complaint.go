package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kamaug/opshub-api/internal/domain/enum"
)

// Complaint represents a customer complaint tracked by the business
type Complaint struct {
	ID          uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID  *uuid.UUID           `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Subject     string               `gorm:"size:255;not null" json:"subject"`
	Description string               `gorm:"type:text" json:"description"`
	Status      enum.ComplaintStatus `gorm:"default:0" json:"status"`
	Resolution  *string              `gorm:"type:text" json:"resolution,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	DeletedAt   gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// BeforeCreate generates a UUID before creating a new complaint
func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Complaint model
func (Complaint) TableName() string {
	return "complaints"
}
