package controllers

import (
	"net/http"
	"strconv"

	"github.com/batiendoconamor/bakery-api/config"
	"github.com/batiendoconamor/bakery-api/models"
	"github.com/gin-gonic/gin"
)

// ClientRequest represents the request body for creating or updating a client
type ClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Surname string `json:"surname"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// ListClients handles GET /api/v1/clients - lists clients, by default only
// active ones (?active_only=false includes deactivated clients)
func ListClients(c *gin.Context) {
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
	var clients []models.Client
	if err := db.Scopes(models.ActiveOnly(activeOnly)).Order("id").Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load clients",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    clients,
	})
}

// CreateClient handles POST /api/v1/clients - clients are born active
func CreateClient(c *gin.Context) {
	var req ClientRequest
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

	client := models.Client{
		Name:    req.Name,
		Surname: req.Surname,
		Address: req.Address,
		Phone:   req.Phone,
		Active:  true,
	}

	db := config.GetDB()
	if err := db.Create(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create client",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    client,
	})
}

// UpdateClient handles PUT /api/v1/clients/:id
func UpdateClient(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ClientRequest
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
	var client models.Client
	if err := db.First(&client, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CLIENT_NOT_FOUND",
				"message": "Client not found",
			},
		})
		return
	}

	client.Name = req.Name
	client.Surname = req.Surname
	client.Address = req.Address
	client.Phone = req.Phone

	if err := db.Save(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update client",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    client,
	})
}

// DeactivateClient handles DELETE /api/v1/clients/:id - soft delete. The
// client row is never removed; historical orders keep referencing it.
func DeactivateClient(c *gin.Context) {
	if !setClientActive(c, false) {
		return
	}
	c.Status(http.StatusNoContent)
}

// ActivateClient handles PUT /api/v1/clients/:id/activate - reactivates a
// previously deactivated client
func ActivateClient(c *gin.Context) {
	if !setClientActive(c, true) {
		return
	}
	c.Status(http.StatusOK)
}

func setClientActive(c *gin.Context, active bool) bool {
	id, ok := parseIDParam(c)
	if !ok {
		return false
	}

	db := config.GetDB()
	var client models.Client
	if err := db.First(&client, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CLIENT_NOT_FOUND",
				"message": "Client not found",
			},
		})
		return false
	}

	if err := db.Model(&client).Update("active", active).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update client",
			},
		})
		return false
	}

	return true
}
