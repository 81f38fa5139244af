package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/batiendoconamor/bakery-api/config"
	"github.com/batiendoconamor/bakery-api/models"
	"github.com/batiendoconamor/bakery-api/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOptionTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Attribute{}, &models.AttributeOption{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func setupOptionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/v1/options", ListOptions)
	router.POST("/api/v1/options", CreateOption)
	router.PUT("/api/v1/options/:id", UpdateOption)
	router.DELETE("/api/v1/options/:id", DeleteOption)
	return router
}

func TestCreateOptionRequiresExistingAttribute(t *testing.T) {
	db := setupOptionTestDB(t)
	config.SetDB(db)
	router := setupOptionRouter()

	filling := models.Attribute{Name: "Relleno"}
	db.Create(&filling)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Successfully create option",
			requestBody: map[string]interface{}{
				"name":         "Dulce de Leche",
				"extra_price":  "500.00",
				"attribute_id": filling.ID,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Fail with unknown attribute",
			requestBody: map[string]interface{}{
				"name":         "Nutella",
				"extra_price":  "1200.00",
				"attribute_id": 999,
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "ATTRIBUTE_NOT_FOUND",
		},
		{
			name:           "Fail with missing name",
			requestBody:    map[string]interface{}{"extra_price": "500.00", "attribute_id": filling.ID},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest("POST", "/api/v1/options", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assertErrorCode(t, w, tt.expectedError)
			}
		})
	}
}

func TestUpdateOptionCanReparent(t *testing.T) {
	db := setupOptionTestDB(t)
	config.SetDB(db)
	router := setupOptionRouter()

	filling := models.Attribute{Name: "Relleno"}
	db.Create(&filling)
	topping := models.Attribute{Name: "Cobertura"}
	db.Create(&topping)

	option := models.AttributeOption{
		Name:        "Chocolate",
		ExtraPrice:  decimal.RequireFromString("500.00"),
		AttributeID: filling.ID,
	}
	db.Create(&option)

	body, _ := json.Marshal(map[string]interface{}{
		"name":         "Chocolate",
		"extra_price":  "800.00",
		"attribute_id": topping.ID,
	})
	req, _ := http.NewRequest("PUT", "/api/v1/options/1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.AttributeOption
	db.First(&reloaded, option.ID)
	assert.Equal(t, topping.ID, reloaded.AttributeID, "option moved to the new category")
	assert.True(t, reloaded.ExtraPrice.Equal(decimal.RequireFromString("800.00")))
}

func TestListOptionsIncludesAttribute(t *testing.T) {
	db := setupOptionTestDB(t)
	config.SetDB(db)
	router := setupOptionRouter()

	filling := models.Attribute{Name: "Relleno"}
	db.Create(&filling)
	db.Create(&models.AttributeOption{
		Name:        "Dulce de Leche",
		ExtraPrice:  decimal.RequireFromString("500.00"),
		AttributeID: filling.ID,
	})

	w := performRequest(router, "GET", "/api/v1/options")
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)

	item := data[0].(map[string]interface{})
	attribute := item["attribute"].(map[string]interface{})
	assert.Equal(t, "Relleno", attribute["name"])
}

func TestDeleteOption(t *testing.T) {
	db := setupOptionTestDB(t)
	config.SetDB(db)
	router := setupOptionRouter()

	filling := models.Attribute{Name: "Relleno"}
	db.Create(&filling)
	option := models.AttributeOption{
		Name:        "Dulce de Leche",
		ExtraPrice:  decimal.RequireFromString("500.00"),
		AttributeID: filling.ID,
	}
	db.Create(&option)

	w := performRequest(router, "DELETE", "/api/v1/options/1")
	assert.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	db.Model(&models.AttributeOption{}).Count(&count)
	assert.Equal(t, int64(0), count)

	w = performRequest(router, "DELETE", "/api/v1/options/1")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assertErrorCode(t, w, "OPTION_NOT_FOUND")
}

func TestDeleteOptionReferencedByOrderIsRejected(t *testing.T) {
	db := setupOrderTestDB(t)
	config.SetDB(db)
	services.SetOrderService(services.NewOrderService(db))
	router := setupOptionRouter()

	client := models.Client{Name: "Juan", Surname: "Perez", Active: true}
	db.Create(&client)
	filling := models.Attribute{Name: "Relleno"}
	db.Create(&filling)
	product := models.Product{
		Name:      "Torta Base 2kg",
		Unit:      "unidad",
		BasePrice: decimal.RequireFromString("5000.00"),
		Active:    true,
	}
	db.Create(&product)
	option := models.AttributeOption{
		Name:        "Dulce de Leche",
		ExtraPrice:  decimal.RequireFromString("500.00"),
		AttributeID: filling.ID,
	}
	db.Create(&option)

	// Place an order whose line snapshots this option
	_, err := services.GetOrderService().CreateOrder(services.CreateOrderInput{
		ClientID:   client.ID,
		DeliveryAt: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Lines: []services.OrderLineInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(1), OptionIDs: []uint{option.ID}},
		},
	})
	assert.NoError(t, err)

	w := performRequest(router, "DELETE", "/api/v1/options/1")
	assert.Equal(t, http.StatusConflict, w.Code)
	assertErrorCode(t, w, "REFERENTIAL_INTEGRITY")

	var optionCount int64
	db.Model(&models.AttributeOption{}).Count(&optionCount)
	assert.Equal(t, int64(1), optionCount, "the referenced option must survive")

	var snapshotCount int64
	db.Model(&models.OrderLineOption{}).Count(&snapshotCount)
	assert.Equal(t, int64(1), snapshotCount, "the order keeps its snapshot row")
}
