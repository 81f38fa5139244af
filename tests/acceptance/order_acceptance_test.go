package acceptance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/batiendoconamor/bakery-api/config"
	"github.com/batiendoconamor/bakery-api/controllers"
	"github.com/batiendoconamor/bakery-api/services"
	"github.com/batiendoconamor/bakery-api/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// OrderAcceptanceTestSuite defines the acceptance test suite for the order API
type OrderAcceptanceTestSuite struct {
	suite.Suite
	server *httptest.Server
	db     *gorm.DB
	cfg    *config.Config
}

// SetupSuite runs once before all tests
func (suite *OrderAcceptanceTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	// Set test environment
	os.Setenv("GO_ENV", "test")
	os.Setenv("DATABASE_URL", "sqlite::memory:")
	os.Setenv("PORT", "8080")

	cfg, err := config.Load()
	suite.NoError(err)
	suite.cfg = cfg

	suite.db = testutil.OpenDatabase(suite.T())
	config.SetDB(suite.db)
	services.SetOrderService(services.NewOrderService(suite.db))

	// Create test server
	router := suite.createRouter()
	suite.server = httptest.NewServer(router)
}

// TearDownSuite runs once after all tests
func (suite *OrderAcceptanceTestSuite) TearDownSuite() {
	suite.server.Close()
	if suite.db != nil {
		sqlDB, _ := suite.db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	}
}

// SetupTest runs before each test
func (suite *OrderAcceptanceTestSuite) SetupTest() {
	// Clean up database before each test
	suite.db.Exec("DELETE FROM order_line_options")
	suite.db.Exec("DELETE FROM order_lines")
	suite.db.Exec("DELETE FROM orders")
	suite.db.Exec("DELETE FROM product_valid_attributes")
	suite.db.Exec("DELETE FROM products")
	suite.db.Exec("DELETE FROM attribute_options")
	suite.db.Exec("DELETE FROM attributes")
	suite.db.Exec("DELETE FROM clients")
}

// createRouter creates the full application router for acceptance testing
func (suite *OrderAcceptanceTestSuite) createRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	{
		v1.POST("/orders", controllers.CreateOrder)
		v1.GET("/orders", controllers.ListOrders)
		v1.DELETE("/orders/:id", controllers.CancelOrder)
		v1.POST("/orders/:id/deliver", controllers.DeliverOrder)
		v1.POST("/orders/:id/pay", controllers.PayOrder)

		v1.GET("/clients", controllers.ListClients)
		v1.POST("/clients", controllers.CreateClient)
		v1.DELETE("/clients/:id", controllers.DeactivateClient)

		v1.POST("/products", controllers.CreateProduct)
		v1.POST("/attributes", controllers.CreateAttribute)
		v1.POST("/options", controllers.CreateOption)
	}

	return router
}

// makeRequest is a helper to make HTTP requests
func (suite *OrderAcceptanceTestSuite) makeRequest(method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	var bodyReader *bytes.Reader
	if body != nil {
		bodyJSON, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyJSON)
	} else {
		bodyReader = bytes.NewReader([]byte{})
	}

	req, err := http.NewRequest(method, suite.server.URL+path, bodyReader)
	suite.NoError(err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	suite.NoError(err)

	raw, err := io.ReadAll(resp.Body)
	suite.NoError(err)
	resp.Body.Close()

	// Lifecycle endpoints respond with an empty body
	var responseData map[string]interface{}
	if len(raw) > 0 {
		err = json.Unmarshal(raw, &responseData)
		suite.NoError(err)
	}

	return resp, responseData
}

// assertDecimal compares a JSON money value against an expected decimal string
func (suite *OrderAcceptanceTestSuite) assertDecimal(expected string, actual interface{}, msgAndArgs ...interface{}) {
	got, err := decimal.NewFromString(fmt.Sprintf("%v", actual))
	suite.NoError(err, "value %v should parse as a decimal", actual)
	assert.True(suite.T(), decimal.RequireFromString(expected).Equal(got), msgAndArgs...)
}

// idOf extracts the numeric id from a success envelope
func (suite *OrderAcceptanceTestSuite) idOf(respData map[string]interface{}) int {
	data := respData["data"].(map[string]interface{})
	return int(data["id"].(float64))
}

// TestCompleteBakeryWorkflow_Acceptance walks the whole business flow over
// HTTP: build the catalog, register a client, place a customized order, then
// deliver and collect payment.
func (suite *OrderAcceptanceTestSuite) TestCompleteBakeryWorkflow_Acceptance() {
	// Step 1: Register a client
	resp, respData := suite.makeRequest("POST", "/api/v1/clients", map[string]interface{}{
		"name":    "Maria",
		"surname": "Lopez",
		"address": "Av. Siempreviva 742",
		"phone":   "555-0142",
	})
	assert.Equal(suite.T(), http.StatusCreated, resp.StatusCode)
	assert.True(suite.T(), respData["success"].(bool))
	clientID := suite.idOf(respData)

	// Step 2: Build the catalog: attribute, option, product
	resp, respData = suite.makeRequest("POST", "/api/v1/attributes", map[string]interface{}{
		"name": "Cobertura",
	})
	assert.Equal(suite.T(), http.StatusCreated, resp.StatusCode)
	attributeID := suite.idOf(respData)

	resp, respData = suite.makeRequest("POST", "/api/v1/options", map[string]interface{}{
		"name":         "Chocolate",
		"extra_price":  "800.00",
		"attribute_id": attributeID,
	})
	assert.Equal(suite.T(), http.StatusCreated, resp.StatusCode)
	optionID := suite.idOf(respData)

	resp, respData = suite.makeRequest("POST", "/api/v1/products", map[string]interface{}{
		"name":                "Budin de Limon",
		"unit":                "unidad",
		"base_price":          "3500.00",
		"valid_attribute_ids": []int{attributeID},
	})
	assert.Equal(suite.T(), http.StatusCreated, resp.StatusCode)
	productID := suite.idOf(respData)

	// Step 3: Place an order with a surcharge for custom decoration
	resp, respData = suite.makeRequest("POST", "/api/v1/orders", map[string]interface{}{
		"client_id":         clientID,
		"delivery_date":     "2025-11-30",
		"notes":             "Pickup at noon",
		"additional_charge": "250.50",
		"lines": []map[string]interface{}{
			{
				"product_id": productID,
				"quantity":   "3",
				"option_ids": []int{optionID},
			},
		},
	})
	assert.Equal(suite.T(), http.StatusCreated, resp.StatusCode)
	assert.True(suite.T(), respData["success"].(bool))

	orderData := respData["data"].(map[string]interface{})
	orderID := int(orderData["id"].(float64))

	// 3 x 3500.00 base, 3 x 800.00 topping, 250.50 surcharge
	suite.assertDecimal("13150.50", orderData["total"])
	assert.Equal(suite.T(), "Pickup at noon", orderData["notes"])
	assert.Equal(suite.T(), false, orderData["delivered"])
	assert.Equal(suite.T(), false, orderData["paid"])

	// Step 4: Deliver, then collect payment
	resp, _ = suite.makeRequest("POST", fmt.Sprintf("/api/v1/orders/%d/deliver", orderID), nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	resp, _ = suite.makeRequest("POST", fmt.Sprintf("/api/v1/orders/%d/pay", orderID), nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	// Step 5: The listed order reflects the completed lifecycle
	resp, respData = suite.makeRequest("GET", "/api/v1/orders", nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	orders := respData["data"].([]interface{})
	assert.Equal(suite.T(), 1, len(orders))

	finalOrder := orders[0].(map[string]interface{})
	assert.Equal(suite.T(), true, finalOrder["delivered"])
	assert.Equal(suite.T(), true, finalOrder["paid"])
	assert.Equal(suite.T(), false, finalOrder["cancelled"])

	clientData := finalOrder["client"].(map[string]interface{})
	assert.Equal(suite.T(), "Maria", clientData["name"])
}

// TestDeactivatedClientCannotOrder_Acceptance tests that orders are rejected
// once the client has been deactivated.
func (suite *OrderAcceptanceTestSuite) TestDeactivatedClientCannotOrder_Acceptance() {
	// Register a client and a product
	resp, respData := suite.makeRequest("POST", "/api/v1/clients", map[string]interface{}{
		"name": "Carlos",
	})
	assert.Equal(suite.T(), http.StatusCreated, resp.StatusCode)
	clientID := suite.idOf(respData)

	resp, respData = suite.makeRequest("POST", "/api/v1/products", map[string]interface{}{
		"name":       "Pan de Campo",
		"unit":       "kg",
		"base_price": "1200.00",
	})
	assert.Equal(suite.T(), http.StatusCreated, resp.StatusCode)
	productID := suite.idOf(respData)

	// Deactivate the client
	resp, _ = suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/clients/%d", clientID), nil)
	assert.Equal(suite.T(), http.StatusNoContent, resp.StatusCode)

	// Ordering on their behalf now fails
	resp, respData = suite.makeRequest("POST", "/api/v1/orders", map[string]interface{}{
		"client_id":     clientID,
		"delivery_date": "2025-11-30",
		"lines": []map[string]interface{}{
			{"product_id": productID, "quantity": "1"},
		},
	})
	assert.Equal(suite.T(), http.StatusConflict, resp.StatusCode)
	assert.False(suite.T(), respData["success"].(bool))

	errorData := respData["error"].(map[string]interface{})
	assert.Equal(suite.T(), "CLIENT_INACTIVE", errorData["code"])

	// The deactivated client is hidden from the default listing
	resp, respData = suite.makeRequest("GET", "/api/v1/clients", nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	clients := respData["data"].([]interface{})
	assert.Equal(suite.T(), 0, len(clients))

	// But still visible when inactive clients are requested
	resp, respData = suite.makeRequest("GET", "/api/v1/clients?active_only=false", nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	clients = respData["data"].([]interface{})
	assert.Equal(suite.T(), 1, len(clients))
}

// TestCancelledOrderStaysListed_Acceptance tests that cancelling keeps the
// order in history instead of deleting it.
func (suite *OrderAcceptanceTestSuite) TestCancelledOrderStaysListed_Acceptance() {
	resp, respData := suite.makeRequest("POST", "/api/v1/clients", map[string]interface{}{
		"name": "Lucia",
	})
	assert.Equal(suite.T(), http.StatusCreated, resp.StatusCode)
	clientID := suite.idOf(respData)

	resp, respData = suite.makeRequest("POST", "/api/v1/products", map[string]interface{}{
		"name":       "Tarta de Frutilla",
		"unit":       "unidad",
		"base_price": "4200.00",
	})
	assert.Equal(suite.T(), http.StatusCreated, resp.StatusCode)
	productID := suite.idOf(respData)

	resp, respData = suite.makeRequest("POST", "/api/v1/orders", map[string]interface{}{
		"client_id":     clientID,
		"delivery_date": "2025-11-30",
		"lines": []map[string]interface{}{
			{"product_id": productID, "quantity": "1"},
		},
	})
	assert.Equal(suite.T(), http.StatusCreated, resp.StatusCode)
	orderID := suite.idOf(respData)

	// Cancel twice; the second call is a no-op
	for i := 0; i < 2; i++ {
		resp, _ = suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/orders/%d", orderID), nil)
		assert.Equal(suite.T(), http.StatusNoContent, resp.StatusCode)
	}

	resp, respData = suite.makeRequest("GET", "/api/v1/orders", nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	orders := respData["data"].([]interface{})
	assert.Equal(suite.T(), 1, len(orders), "Cancelled orders remain in the history")
	assert.Equal(suite.T(), true, orders[0].(map[string]interface{})["cancelled"])
}

// TestOrderAcceptanceSuite runs the test suite
func TestOrderAcceptanceSuite(t *testing.T) {
	suite.Run(t, new(OrderAcceptanceTestSuite))
}
