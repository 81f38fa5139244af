package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a sellable bakery product. BasePrice is the live catalog
// price; historical orders keep their own snapshot of it, so changing it only
// affects orders created afterwards.
type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	Unit      string          `gorm:"not null" json:"unit"` // e.g. "kg", "dozen", "unit"
	BasePrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_price"`
	Active    bool            `gorm:"not null;default:true" json:"active"`
	// ValidAttributes lists which customization categories apply to this
	// product (e.g. a cake allows "Filling" but not "Size")
	ValidAttributes []Attribute `gorm:"many2many:product_valid_attributes" json:"valid_attributes"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
