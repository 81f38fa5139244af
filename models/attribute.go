package models

import (
	"github.com/shopspring/decimal"
)

// Attribute represents a customization category a product may offer
// (e.g. "Filling", "Size", "Decoration")
type Attribute struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

// TableName specifies the table name for the Attribute model
func (Attribute) TableName() string {
	return "attributes"
}

// AttributeOption represents one selectable value within an Attribute
// (e.g. "Dulce de Leche" under "Filling"), carrying its own extra price
type AttributeOption struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	ExtraPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"extra_price"`
	AttributeID uint            `gorm:"not null;index" json:"attribute_id"`
	Attribute   Attribute       `gorm:"foreignKey:AttributeID" json:"attribute"`
}

// TableName specifies the table name for the AttributeOption model
func (AttributeOption) TableName() string {
	return "attribute_options"
}
