package controllers

import (
	"net/http"
	"strconv"

	"github.com/batiendoconamor/bakery-api/config"
	"github.com/batiendoconamor/bakery-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest represents the request body for creating or updating a
// product. ValidAttributeIDs selects which customization categories apply.
type ProductRequest struct {
	Name              string          `json:"name" binding:"required"`
	Unit              string          `json:"unit" binding:"required"`
	BasePrice         decimal.Decimal `json:"base_price" binding:"required"`
	ValidAttributeIDs []uint          `json:"valid_attribute_ids"`
}

// ListProducts handles GET /api/v1/products - by default only products
// available for sale (?active_only=false includes discontinued ones)
func ListProducts(c *gin.Context) {
	activeOnly, err := strconv.ParseBool(c.DefaultQuery("active_only", "true"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "active_only must be true or false",
			},
		})
		return
	}

	db := config.GetDB()
	var products []models.Product
	if err := db.Scopes(models.ActiveOnly(activeOnly)).Preload("ValidAttributes").Order("id").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// CreateProduct handles POST /api/v1/products - products are born active
func CreateProduct(c *gin.Context) {
	var req ProductRequest
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

	product := models.Product{
		Name:      req.Name,
		Unit:      req.Unit,
		BasePrice: req.BasePrice,
		Active:    true,
	}

	if len(req.ValidAttributeIDs) > 0 {
		var attributes []models.Attribute
		if err := db.Find(&attributes, req.ValidAttributeIDs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to load attributes",
				},
			})
			return
		}
		product.ValidAttributes = attributes
	}

	if err := db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create product",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// UpdateProduct handles PUT /api/v1/products/:id - updates name, unit, price
// and valid attributes. A price change only affects orders created from now
// on; historical orders keep their snapshots.
func UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ProductRequest
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
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	product.Name = req.Name
	product.Unit = req.Unit
	product.BasePrice = req.BasePrice

	if err := db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update product",
			},
		})
		return
	}

	if req.ValidAttributeIDs != nil {
		var attributes []models.Attribute
		if err := db.Find(&attributes, req.ValidAttributeIDs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to load attributes",
				},
			})
			return
		}
		if err := db.Model(&product).Association("ValidAttributes").Replace(attributes); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update product attributes",
				},
			})
			return
		}
	}

	if err := db.Preload("ValidAttributes").First(&product, product.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load product details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// DeactivateProduct handles DELETE /api/v1/products/:id - soft delete.
// Discontinued products become unsellable but stay referenced by old orders.
func DeactivateProduct(c *gin.Context) {
	if !setProductActive(c, false) {
		return
	}
	c.Status(http.StatusNoContent)
}

// ActivateProduct handles PUT /api/v1/products/:id/activate
func ActivateProduct(c *gin.Context) {
	if !setProductActive(c, true) {
		return
	}
	c.Status(http.StatusOK)
}

func setProductActive(c *gin.Context, active bool) bool {
	id, ok := parseIDParam(c)
	if !ok {
		return false
	}

	db := config.GetDB()
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return false
	}

	if err := db.Model(&product).Update("active", active).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update product",
			},
		})
		return false
	}

	return true
}
