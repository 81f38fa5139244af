package testutil

import (
	"os"
	"testing"

	"github.com/batiendoconamor/bakery-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// This prevents accidental execution of tests against production or development databases.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to prevent data loss. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in TestMain or suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}

	if os.Getenv("GO_ENV") != "test" {
		t.Fatal("Failed to verify GO_ENV=test")
	}
}

// OpenDatabase opens a fresh in-memory SQLite database with the full schema
// migrated. Each call returns an isolated database.
func OpenDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	// foreign_keys must be switched on per connection; SQLite ships with
	// enforcement disabled, which would let deletes orphan snapshot rows
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Client{},
		&models.Attribute{},
		&models.AttributeOption{},
		&models.Product{},
		&models.Order{},
		&models.OrderLine{},
		&models.OrderLineOption{},
		&models.Expense{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// Catalog holds the fixture rows created by SeedCatalog.
type Catalog struct {
	Client      models.Client
	Product     models.Product
	Filling     models.Attribute
	DulceOption models.AttributeOption
	PremiumOpt  models.AttributeOption
}

// SeedCatalog inserts a minimal client and product catalog: one active
// client, one filling attribute with a cheap and a premium option, and one
// cake product priced per unit.
func SeedCatalog(t *testing.T, db *gorm.DB) Catalog {
	t.Helper()

	cat := Catalog{
		Client:  models.Client{Name: "Ana", Surname: "Gomez", Phone: "555-0101", Active: true},
		Filling: models.Attribute{Name: "Relleno"},
	}

	if err := db.Create(&cat.Client).Error; err != nil {
		t.Fatalf("Failed to seed client: %v", err)
	}
	if err := db.Create(&cat.Filling).Error; err != nil {
		t.Fatalf("Failed to seed attribute: %v", err)
	}

	cat.DulceOption = models.AttributeOption{
		Name:        "Dulce de Leche",
		ExtraPrice:  decimal.RequireFromString("500.00"),
		AttributeID: cat.Filling.ID,
	}
	cat.PremiumOpt = models.AttributeOption{
		Name:        "Nutella",
		ExtraPrice:  decimal.RequireFromString("1200.00"),
		AttributeID: cat.Filling.ID,
	}
	if err := db.Create(&cat.DulceOption).Error; err != nil {
		t.Fatalf("Failed to seed option: %v", err)
	}
	if err := db.Create(&cat.PremiumOpt).Error; err != nil {
		t.Fatalf("Failed to seed option: %v", err)
	}

	cat.Product = models.Product{
		Name:            "Torta Base 2kg",
		Unit:            "unidad",
		BasePrice:       decimal.RequireFromString("5000.00"),
		Active:          true,
		ValidAttributes: []models.Attribute{cat.Filling},
	}
	if err := db.Create(&cat.Product).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}

	return cat
}
