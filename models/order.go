package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the aggregate root for a bakery order. It exclusively owns its
// OrderLines (cascade create/delete). Total is computed once at creation from
// the line subtotals plus the additional charge and is never recomputed.
type Order struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	IssuedAt         time.Time       `gorm:"not null" json:"issued_at"`
	DeliveryAt       time.Time       `gorm:"not null" json:"delivery_at"`
	Total            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	AdditionalCharge decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"additional_charge"`
	Notes            string          `gorm:"size:500" json:"notes"`
	ClientID         uint            `gorm:"not null;index" json:"client_id"`
	Client           Client          `gorm:"foreignKey:ClientID" json:"client"`
	Lines            []OrderLine     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines"`
	Cancelled        bool            `gorm:"not null;default:false" json:"cancelled"`
	Delivered        bool            `gorm:"not null;default:false" json:"delivered"`
	Paid             bool            `gorm:"not null;default:false" json:"paid"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderLine is one product entry within an order. HistoricalBasePrice is a
// snapshot of the product's base price at order time; pricing always uses the
// snapshot, the Product reference is for display only.
type OrderLine struct {
	ID                  uint              `gorm:"primaryKey" json:"id"`
	OrderID             uint              `gorm:"not null;index" json:"-"`
	Quantity            decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"quantity"` // fractional allowed, e.g. 1.5 kg
	HistoricalBasePrice decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"historical_base_price"`
	Subtotal            decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	ProductID           uint              `gorm:"not null;index" json:"product_id"`
	Product             Product           `gorm:"foreignKey:ProductID" json:"product"`
	Options             []OrderLineOption `gorm:"foreignKey:OrderLineID;constraint:OnDelete:CASCADE" json:"options"`
}

// TableName specifies the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}

// OrderLineOption records one chosen customization on a line, with a snapshot
// of the option's extra price at order time. Its cost contribution is
// HistoricalExtraPrice * line quantity (charged per produced unit).
type OrderLineOption struct {
	ID                   uint            `gorm:"primaryKey" json:"id"`
	OrderLineID          uint            `gorm:"not null;index" json:"-"`
	HistoricalExtraPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"historical_extra_price"`
	AttributeOptionID    uint            `gorm:"not null;index" json:"attribute_option_id"`
	AttributeOption      AttributeOption `gorm:"foreignKey:AttributeOptionID" json:"attribute_option"`
}

// TableName specifies the table name for the OrderLineOption model
func (OrderLineOption) TableName() string {
	return "order_line_options"
}
