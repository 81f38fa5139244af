package models

import (
	"gorm.io/gorm"
)

// ActiveOnly returns a query scope that restricts results to active rows when
// onlyActive is true and is a no-op otherwise. Client and Product share the
// same soft-delete flag, so both listings use this single scope.
func ActiveOnly(onlyActive bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if onlyActive {
			return db.Where("active = ?", true)
		}
		return db
	}
}
