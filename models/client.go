package models

import (
	"time"
)

// Client represents a bakery customer
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Surname   string    `json:"surname"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Active    bool      `gorm:"not null;default:true" json:"active"` // soft-delete flag, clients are never hard-deleted
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Client model
func (Client) TableName() string {
	return "clients"
}
