package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/harborview-bistro/menu-analytics-api/controllers"
	"github.com/harborview-bistro/menu-analytics-api/middleware"
	"github.com/harborview-bistro/menu-analytics-api/models"
	"github.com/harborview-bistro/menu-analytics-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SimulatorIntegrationTestSuite defines the test suite for the price simulator
type SimulatorIntegrationTestSuite struct {
	suite.Suite
	router   *gin.Engine
	db       *gorm.DB
	datasets *services.DatasetService
}

// SetupSuite runs once before all tests
func (suite *SimulatorIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
}

// SetupTest runs before each test
func (suite *SimulatorIntegrationTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.NoError(err)
	suite.db = db

	err = db.AutoMigrate(&models.Transaction{})
	suite.NoError(err)

	importer := services.NewImporterService(db)
	suite.datasets = services.NewDatasetService(db)

	receipt, err := importer.Import(strings.NewReader(posExportCSV), "pos_export.csv")
	suite.NoError(err)
	suite.NoError(suite.datasets.Load(receipt.Source))

	simulatorController := controllers.NewSimulatorController(suite.datasets)
	filters := middleware.ResolveFilters(suite.datasets, 32)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1")
	{
		simulator := v1.Group("/simulator", filters)
		{
			simulator.GET("/items", simulatorController.GetSelectableItems)
			simulator.POST("", simulatorController.RunSimulation)
		}
	}
}

// TearDownTest runs after each test
func (suite *SimulatorIntegrationTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (suite *SimulatorIntegrationTestSuite) simulate(body map[string]interface{}) (int, map[string]interface{}) {
	bodyJSON, err := json.Marshal(body)
	suite.NoError(err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulator", bytes.NewBuffer(bodyJSON))
	req.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, req)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	suite.NoError(err)
	return w.Code, response
}

// TestSelectableItemsList verifies the item picker source
func (suite *SimulatorIntegrationTestSuite) TestSelectableItemsList() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/simulator/items", nil)
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []interface{}{
		"Caesar Salad", "Margherita Pizza", "Ribeye Steak", "Tiramisu",
	}, response["data"])
}

// TestPriceIncreaseProjection runs the full simulation workflow for a price increase
func (suite *SimulatorIntegrationTestSuite) TestPriceIncreaseProjection() {
	// Margherita Pizza: three rows at price 15.00 and food cost 4.50
	code, response := suite.simulate(map[string]interface{}{
		"item_name":        "Margherita Pizza",
		"price_change_pct": 10,
		"elasticity_pct":   20,
	})

	assert.Equal(suite.T(), http.StatusOK, code)
	assert.True(suite.T(), response["success"].(bool))

	data := response["data"].(map[string]interface{})
	current := data["current"].(map[string]interface{})
	projected := data["projected"].(map[string]interface{})
	deltas := data["deltas"].(map[string]interface{})

	assert.InDelta(suite.T(), 15.0, current["price"].(float64), 1e-9)
	assert.InDelta(suite.T(), 3.0, current["quantity"].(float64), 1e-9)
	assert.InDelta(suite.T(), 45.0, current["revenue"].(float64), 1e-9)
	assert.InDelta(suite.T(), 31.5, current["margin"].(float64), 1e-9)

	assert.InDelta(suite.T(), 16.5, projected["price"].(float64), 1e-9)
	assert.InDelta(suite.T(), 2.4, projected["quantity"].(float64), 1e-9)
	assert.InDelta(suite.T(), 39.6, projected["revenue"].(float64), 1e-9)
	assert.InDelta(suite.T(), 28.8, projected["margin"].(float64), 1e-9)

	assert.InDelta(suite.T(), -20.0, deltas["volume_pct"].(float64), 1e-9)
	assert.InDelta(suite.T(), -2.7, data["net_margin_impact"].(float64), 1e-9)
}

// TestPriceDecreaseProjection verifies the half-elasticity demand lift
func (suite *SimulatorIntegrationTestSuite) TestPriceDecreaseProjection() {
	code, response := suite.simulate(map[string]interface{}{
		"item_name":        "Margherita Pizza",
		"price_change_pct": -10,
		"elasticity_pct":   20,
	})

	assert.Equal(suite.T(), http.StatusOK, code)

	data := response["data"].(map[string]interface{})
	projected := data["projected"].(map[string]interface{})
	deltas := data["deltas"].(map[string]interface{})

	assert.InDelta(suite.T(), 10.0, deltas["volume_pct"].(float64), 1e-9)
	assert.InDelta(suite.T(), 13.5, projected["price"].(float64), 1e-9)
	assert.InDelta(suite.T(), 3.3, projected["quantity"].(float64), 1e-9)
}

// TestSimulationRespectsFilters verifies the simulator works on the filtered subset
func (suite *SimulatorIntegrationTestSuite) TestSimulationRespectsFilters() {
	bodyJSON, err := json.Marshal(map[string]interface{}{
		"item_name":        "Margherita Pizza",
		"price_change_pct": 10,
		"elasticity_pct":   20,
	})
	suite.NoError(err)

	// Only one pizza row falls inside this window
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/simulator?start_date=2025-03-03&end_date=2025-03-03", bytes.NewBuffer(bodyJSON))
	req.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	current := response["data"].(map[string]interface{})["current"].(map[string]interface{})
	assert.InDelta(suite.T(), 1.0, current["quantity"].(float64), 1e-9)
	assert.InDelta(suite.T(), 15.0, current["revenue"].(float64), 1e-9)
}

// TestUnknownItemRejected verifies the 404 contract for unknown items
func (suite *SimulatorIntegrationTestSuite) TestUnknownItemRejected() {
	code, response := suite.simulate(map[string]interface{}{
		"item_name":        "Lobster Thermidor",
		"price_change_pct": 10,
		"elasticity_pct":   20,
	})

	assert.Equal(suite.T(), http.StatusNotFound, code)
	assert.False(suite.T(), response["success"].(bool))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "ITEM_NOT_FOUND", errorData["code"])
}

// TestOutOfRangeParametersRejected verifies the 400 contract for bad sliders
func (suite *SimulatorIntegrationTestSuite) TestOutOfRangeParametersRejected() {
	code, response := suite.simulate(map[string]interface{}{
		"item_name":        "Margherita Pizza",
		"price_change_pct": 50,
		"elasticity_pct":   20,
	})

	assert.Equal(suite.T(), http.StatusBadRequest, code)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "VALIDATION_ERROR", errorData["code"])
}

// TestSimulatorIntegrationSuite runs the test suite
func TestSimulatorIntegrationSuite(t *testing.T) {
	suite.Run(t, new(SimulatorIntegrationTestSuite))
}
