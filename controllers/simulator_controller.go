package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborview-bistro/menu-analytics-api/models"
	"github.com/harborview-bistro/menu-analytics-api/services"
)

// SimulatorController serves the price simulator tab
type SimulatorController struct {
	datasets *services.DatasetService
}

// NewSimulatorController creates a simulator controller backed by the given dataset service
func NewSimulatorController(datasets *services.DatasetService) *SimulatorController {
	return &SimulatorController{datasets: datasets}
}

// GetSelectableItems handles GET /api/v1/simulator/items - lists the items
// present in the filtered dataset. The simulator is undefined for items
// outside this list, so the dashboard draws its item picker from here.
func (ctrl *SimulatorController) GetSelectableItems(c *gin.Context) {
	rows, _, ok := filteredRows(c, ctrl.datasets)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services.SelectableItems(rows),
	})
}

// RunSimulation handles POST /api/v1/simulator - projects the effect of a
// price change on one item's volume, revenue, margin and classification
func (ctrl *SimulatorController) RunSimulation(c *gin.Context) {
	rows, _, ok := filteredRows(c, ctrl.datasets)
	if !ok {
		return
	}

	// Parse request body
	var req models.SimulationRequest
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

	// The medians come from the current (unsimulated) item set
	engineering := services.AggregateByItem(rows)

	result, err := services.SimulatePrice(rows, engineering, req)
	if err != nil {
		var invalidParam *services.InvalidParameterError
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ITEM_NOT_FOUND",
					"message": "The selected item has no transactions in the current filter",
				},
			})
		case errors.As(err, &invalidParam):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": invalidParam.Error(),
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SIMULATION_ERROR",
					"message": "Failed to run the price simulation",
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
