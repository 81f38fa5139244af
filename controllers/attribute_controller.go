package controllers

import (
	"errors"
	"net/http"

	"github.com/batiendoconamor/bakery-api/config"
	"github.com/batiendoconamor/bakery-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AttributeRequest represents the request body for creating or updating a
// customization category
type AttributeRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListAttributes handles GET /api/v1/attributes
func ListAttributes(c *gin.Context) {
	db := config.GetDB()
	var attributes []models.Attribute
	if err := db.Order("id").Find(&attributes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load attributes",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    attributes,
	})
}

// CreateAttribute handles POST /api/v1/attributes
func CreateAttribute(c *gin.Context) {
	var req AttributeRequest
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

	attribute := models.Attribute{Name: req.Name}

	db := config.GetDB()
	if err := db.Create(&attribute).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create attribute",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    attribute,
	})
}

// UpdateAttribute handles PUT /api/v1/attributes/:id
func UpdateAttribute(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req AttributeRequest
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
	if err := db.First(&attribute, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ATTRIBUTE_NOT_FOUND",
				"message": "Attribute not found",
			},
		})
		return
	}

	attribute.Name = req.Name
	if err := db.Save(&attribute).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update attribute",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    attribute,
	})
}

// DeleteAttribute handles DELETE /api/v1/attributes/:id - hard delete
func DeleteAttribute(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var attribute models.Attribute
	if err := db.First(&attribute, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ATTRIBUTE_NOT_FOUND",
				"message": "Attribute not found",
			},
		})
		return
	}

	if err := db.Delete(&attribute).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "REFERENTIAL_INTEGRITY",
					"message": "Attribute is still referenced and cannot be deleted",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete attribute",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}
