package controllers

import (
	"errors"
	"net/http"

	"github.com/batiendoconamor/bakery-api/config"
	"github.com/batiendoconamor/bakery-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OptionRequest represents the request body for creating or updating an
// attribute option. AttributeID may be changed on update to re-parent the
// option under a different category.
type OptionRequest struct {
	Name        string          `json:"name" binding:"required"`
	ExtraPrice  decimal.Decimal `json:"extra_price"`
	AttributeID uint            `json:"attribute_id"`
}

// ListOptions handles GET /api/v1/options - all options with their owning
// attribute loaded
func ListOptions(c *gin.Context) {
	db := config.GetDB()
	var options []models.AttributeOption
	if err := db.Preload("Attribute").Order("id").Find(&options).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load options",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    options,
	})
}

// CreateOption handles POST /api/v1/options - the owning attribute must exist
func CreateOption(c *gin.Context) {
	var req OptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var attribute models.Attribute
	if err := db.First(&attribute, req.AttributeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ATTRIBUTE_NOT_FOUND",
				"message": "Attribute not found",
			},
		})
		return
	}

	option := models.AttributeOption{
		Name:        req.Name,
		ExtraPrice:  req.ExtraPrice,
		AttributeID: attribute.ID,
	}

	if err := db.Create(&option).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create option",
			},
		})
		return
	}

	option.Attribute = attribute
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    option,
	})
}

// UpdateOption handles PUT /api/v1/options/:id - changing the extra price
// only affects future orders; historical orders keep their snapshots
func UpdateOption(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req OptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var option models.AttributeOption
	if err := db.First(&option, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "OPTION_NOT_FOUND",
				"message": "Option not found",
			},
		})
		return
	}

	option.Name = req.Name
	option.ExtraPrice = req.ExtraPrice

	// Re-parent under another attribute when requested (e.g. was a filling,
	// is now a topping)
	if req.AttributeID != 0 && req.AttributeID != option.AttributeID {
		var attribute models.Attribute
		if err := db.First(&attribute, req.AttributeID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ATTRIBUTE_NOT_FOUND",
					"message": "Attribute not found",
				},
			})
			return
		}
		option.AttributeID = attribute.ID
	}

	if err := db.Save(&option).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update option",
			},
		})
		return
	}

	if err := db.Preload("Attribute").First(&option, option.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load option details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    option,
	})
}

// DeleteOption handles DELETE /api/v1/options/:id - hard delete. When the
// option is referenced by a historical order line the storage layer rejects
// the delete and the conflict is surfaced as-is.
func DeleteOption(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var option models.AttributeOption
	if err := db.First(&option, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "OPTION_NOT_FOUND",
				"message": "Option not found",
			},
		})
		return
	}

	if err := db.Delete(&option).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "REFERENTIAL_INTEGRITY",
					"message": "Option is referenced by existing orders and cannot be deleted",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete option",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}
