package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/batiendoconamor/bakery-api/config"
	"github.com/batiendoconamor/bakery-api/controllers"
	"github.com/batiendoconamor/bakery-api/middleware"
	"github.com/batiendoconamor/bakery-api/models"
	"github.com/batiendoconamor/bakery-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Bakery Orders API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Client{},
		&models.Product{},
		&models.Attribute{},
		&models.AttributeOption{},
		&models.Order{},
		&models.OrderLine{},
		&models.OrderLineOption{},
		&models.Expense{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Load starter catalog on first run
	if err := config.SeedDatabase(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Initialize services
	services.InitOrderService(db)

	// Initialize Gin router
	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter configures middleware and the full route table
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.PrometheusMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}))

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Orders
		v1.POST("/orders", controllers.CreateOrder)
		v1.GET("/orders", controllers.ListOrders)
		v1.DELETE("/orders/:id", controllers.CancelOrder)
		v1.POST("/orders/:id/deliver", controllers.DeliverOrder)
		v1.POST("/orders/:id/pay", controllers.PayOrder)

		// Clients
		v1.GET("/clients", controllers.ListClients)
		v1.POST("/clients", controllers.CreateClient)
		v1.PUT("/clients/:id", controllers.UpdateClient)
		v1.DELETE("/clients/:id", controllers.DeactivateClient)
		v1.PUT("/clients/:id/activate", controllers.ActivateClient)

		// Products
		v1.GET("/products", controllers.ListProducts)
		v1.POST("/products", controllers.CreateProduct)
		v1.PUT("/products/:id", controllers.UpdateProduct)
		v1.DELETE("/products/:id", controllers.DeactivateProduct)
		v1.PUT("/products/:id/activate", controllers.ActivateProduct)

		// Attributes and options
		v1.GET("/attributes", controllers.ListAttributes)
		v1.POST("/attributes", controllers.CreateAttribute)
		v1.PUT("/attributes/:id", controllers.UpdateAttribute)
		v1.DELETE("/attributes/:id", controllers.DeleteAttribute)
		v1.GET("/options", controllers.ListOptions)
		v1.POST("/options", controllers.CreateOption)
		v1.PUT("/options/:id", controllers.UpdateOption)
		v1.DELETE("/options/:id", controllers.DeleteOption)

		// Expenses
		v1.GET("/expenses", controllers.ListExpenses)
		v1.POST("/expenses", controllers.CreateExpense)
		v1.DELETE("/expenses/:id", controllers.DeleteExpense)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Bakery Orders API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
