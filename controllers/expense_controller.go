package controllers

import (
	"net/http"
	"time"

	"github.com/batiendoconamor/bakery-api/config"
	"github.com/batiendoconamor/bakery-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ExpenseRequest represents the request body for registering an expense
type ExpenseRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        string          `json:"date" binding:"required"` // YYYY-MM-DD
}

// ListExpenses handles GET /api/v1/expenses
func ListExpenses(c *gin.Context) {
	db := config.GetDB()
	var expenses []models.Expense
	if err := db.Order("id").Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load expenses",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    expenses,
	})
}

// CreateExpense handles POST /api/v1/expenses
func CreateExpense(c *gin.Context) {
	var req ExpenseRequest
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

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "date must be in YYYY-MM-DD format",
			},
		})
		return
	}

	expense := models.Expense{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
	}

	db := config.GetDB()
	if err := db.Create(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create expense",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    expense,
	})
}

// DeleteExpense handles DELETE /api/v1/expenses/:id - hard delete
func DeleteExpense(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var expense models.Expense
	if err := db.First(&expense, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EXPENSE_NOT_FOUND",
				"message": "Expense not found",
			},
		})
		return
	}

	if err := db.Delete(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete expense",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}
