package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/batiendoconamor/bakery-api/middleware"
	"github.com/batiendoconamor/bakery-api/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// OrderLineRequest is one requested line within a create-order payload
type OrderLineRequest struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	OptionIDs []uint          `json:"option_ids"`
}

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	ClientID         uint               `json:"client_id" binding:"required"`
	DeliveryDate     string             `json:"delivery_date" binding:"required"` // YYYY-MM-DD
	Notes            string             `json:"notes"`
	AdditionalCharge *decimal.Decimal   `json:"additional_charge"`
	Lines            []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// CreateOrder handles POST /api/v1/orders - builds and persists a new order
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
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

	// Delivery date is date-only; the time defaults to start of day
	deliveryAt, err := time.Parse("2006-01-02", req.DeliveryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "delivery_date must be in YYYY-MM-DD format",
			},
		})
		return
	}

	input := services.CreateOrderInput{
		ClientID:         req.ClientID,
		DeliveryAt:       deliveryAt,
		Notes:            req.Notes,
		AdditionalCharge: req.AdditionalCharge,
	}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, services.OrderLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			OptionIDs: line.OptionIDs,
		})
	}

	order, err := services.GetOrderService().CreateOrder(input)
	if err != nil {
		middleware.RecordOrderOperation("create", false)
		respondOrderError(c, err)
		return
	}
	middleware.RecordOrderOperation("create", true)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/orders - returns all orders with their
// lines and options
func ListOrders(c *gin.Context) {
	orders, err := services.GetOrderService().ListOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// CancelOrder handles DELETE /api/v1/orders/:id - sets the cancelled flag.
// Cancelling is always permitted and idempotent.
func CancelOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := services.GetOrderService().CancelOrder(id); err != nil {
		middleware.RecordOrderOperation("cancel", false)
		respondOrderError(c, err)
		return
	}
	middleware.RecordOrderOperation("cancel", true)

	c.Status(http.StatusNoContent)
}

// DeliverOrder handles POST /api/v1/orders/:id/deliver
func DeliverOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := services.GetOrderService().DeliverOrder(id); err != nil {
		middleware.RecordOrderOperation("deliver", false)
		respondOrderError(c, err)
		return
	}
	middleware.RecordOrderOperation("deliver", true)

	c.Status(http.StatusOK)
}

// PayOrder handles POST /api/v1/orders/:id/pay
func PayOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := services.GetOrderService().PayOrder(id); err != nil {
		middleware.RecordOrderOperation("pay", false)
		respondOrderError(c, err)
		return
	}
	middleware.RecordOrderOperation("pay", true)

	c.Status(http.StatusOK)
}

// respondOrderError maps service errors onto the response envelope
func respondOrderError(c *gin.Context, err error) {
	var status int
	var code string

	switch {
	case errors.Is(err, services.ErrClientNotFound):
		status, code = http.StatusNotFound, "CLIENT_NOT_FOUND"
	case errors.Is(err, services.ErrProductNotFound):
		status, code = http.StatusNotFound, "PRODUCT_NOT_FOUND"
	case errors.Is(err, services.ErrOptionNotFound):
		status, code = http.StatusNotFound, "OPTION_NOT_FOUND"
	case errors.Is(err, services.ErrOrderNotFound):
		status, code = http.StatusNotFound, "ORDER_NOT_FOUND"
	case errors.Is(err, services.ErrClientInactive):
		status, code = http.StatusConflict, "CLIENT_INACTIVE"
	case errors.Is(err, services.ErrProductInactive):
		status, code = http.StatusConflict, "PRODUCT_INACTIVE"
	case errors.Is(err, services.ErrOrderCancelled):
		status, code = http.StatusConflict, "ORDER_CANCELLED"
	default:
		status, code = http.StatusInternalServerError, "DATABASE_ERROR"
	}

	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": err.Error(),
		},
	})
}

// parseIDParam parses the :id path parameter, writing a 400 response itself
// when the value is not a positive integer
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "id must be a positive integer",
			},
		})
		return 0, false
	}
	return uint(id), true
}
