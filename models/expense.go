package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a business expense (ingredients, utilities, etc.)
type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Description string          `gorm:"not null" json:"description"` // e.g. "10kg flour", "electricity bill"
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null" json:"date"`
}

// TableName specifies the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
