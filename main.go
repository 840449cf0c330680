package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/harborview-bistro/menu-analytics-api/config"
	"github.com/harborview-bistro/menu-analytics-api/controllers"
	"github.com/harborview-bistro/menu-analytics-api/middleware"
	"github.com/harborview-bistro/menu-analytics-api/models"
	"github.com/harborview-bistro/menu-analytics-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Menu Analytics API server...")

	// Load configuration
	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(&models.Transaction{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize the S3 service when the dataset lives in S3
	if cfg.UsesS3Dataset() {
		if _, err := services.InitS3Service(); err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
	}

	// Import the dataset on first start, then load the in-memory snapshot
	datasets := services.NewDatasetService(db)
	importer := services.NewImporterService(db)

	source := cfg.DatasetPath
	count, err := datasets.RowCount()
	if err != nil {
		log.Fatalf("Failed to inspect the transactions table: %v", err)
	}
	if count == 0 {
		receipt, err := controllers.ImportFromConfiguredSource(importer, cfg)
		if err != nil {
			log.Fatalf("Failed to import the dataset: %v", err)
		}
		source = receipt.Source
	} else if cfg.UsesS3Dataset() {
		source = services.GetS3Service().ObjectURL(cfg.DatasetS3Key)
	}

	if err := datasets.Load(source); err != nil {
		log.Fatalf("Failed to load the dataset snapshot: %v", err)
	}

	// Initialize Gin router
	router := setupRouter(cfg, datasets, importer)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter configures the Gin engine, middleware and all API routes
func setupRouter(cfg *config.Config, datasets *services.DatasetService, importer *services.ImporterService) *gin.Engine {
	router := gin.Default()

	// CORS for the separately served dashboard frontend
	corsConfig := cors.DefaultConfig()
	if cfg.CORSAllowOrigin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.CORSAllowOrigin}
	}
	router.Use(cors.New(corsConfig))

	overviewController := controllers.NewOverviewController(datasets)
	menuController := controllers.NewMenuController(datasets)
	wasteController := controllers.NewWasteController(datasets)
	patternsController := controllers.NewPatternsController(datasets)
	simulatorController := controllers.NewSimulatorController(datasets)
	datasetController := controllers.NewDatasetController(datasets, importer)

	filters := middleware.ResolveFilters(datasets, cfg.TargetFoodCostPct)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Dataset metadata and reload
		v1.GET("/dataset/meta", datasetController.GetMeta)
		v1.POST("/dataset/reload", datasetController.Reload)

		// Analytics endpoints share the filter middleware
		analytics := v1.Group("/analytics", filters)
		{
			analytics.GET("/overview", overviewController.GetOverview)
			analytics.GET("/revenue/channels", overviewController.GetRevenueByChannel)
			analytics.GET("/revenue/categories", overviewController.GetRevenueByCategory)
			analytics.GET("/menu/engineering", menuController.GetMenuEngineering)
			analytics.GET("/waste", wasteController.GetWasteAnalysis)
			analytics.GET("/patterns", patternsController.GetTimePatterns)
		}

		// Price simulator
		simulator := v1.Group("/simulator", filters)
		{
			simulator.GET("/items", simulatorController.GetSelectableItems)
			simulator.POST("", simulatorController.RunSimulation)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Menu Analytics API is running",
	})
}
