package config

import (
	"fmt"
	"log"

	"github.com/batiendoconamor/bakery-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedDatabase loads a minimal starter catalog the first time the application
// runs against an empty database. It is a no-op if any client already exists.
func SeedDatabase(db *gorm.DB) error {
	var clientCount int64
	if err := db.Model(&models.Client{}).Count(&clientCount).Error; err != nil {
		return fmt.Errorf("failed to check for existing data: %w", err)
	}
	if clientCount > 0 {
		return nil
	}

	client := models.Client{
		Name:    "Juan",
		Surname: "Perez",
		Phone:   "123456",
		Active:  true,
	}
	if err := db.Create(&client).Error; err != nil {
		return err
	}

	cake := models.Product{
		Name:      "Torta Base 2kg",
		Unit:      "unidad",
		BasePrice: decimal.RequireFromString("5000.00"),
		Active:    true,
	}
	if err := db.Create(&cake).Error; err != nil {
		return err
	}

	filling := models.Attribute{Name: "Relleno"}
	if err := db.Create(&filling).Error; err != nil {
		return err
	}

	options := []models.AttributeOption{
		{Name: "Dulce de Leche", ExtraPrice: decimal.RequireFromString("500.00"), AttributeID: filling.ID},
		{Name: "Nutella", ExtraPrice: decimal.RequireFromString("1200.00"), AttributeID: filling.ID},
	}
	if err := db.Create(&options).Error; err != nil {
		return err
	}

	log.Println("Seed data loaded successfully")
	return nil
}
