package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborview-bistro/menu-analytics-api/services"
)

// OverviewController serves the dashboard's overview tab
type OverviewController struct {
	datasets *services.DatasetService
}

// NewOverviewController creates an overview controller backed by the given dataset service
func NewOverviewController(datasets *services.DatasetService) *OverviewController {
	return &OverviewController{datasets: datasets}
}

// GetOverview handles GET /api/v1/analytics/overview - returns the KPI card
// values and the daily revenue trend for the filtered dataset
func (ctrl *OverviewController) GetOverview(c *gin.Context) {
	rows, params, ok := filteredRows(c, ctrl.datasets)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"overview":    services.ComputeOverview(rows, params.TargetFoodCostPct),
			"daily_trend": services.DailyRevenueTrend(rows),
		},
	})
}

// GetRevenueByChannel handles GET /api/v1/analytics/revenue/channels
func (ctrl *OverviewController) GetRevenueByChannel(c *gin.Context) {
	rows, _, ok := filteredRows(c, ctrl.datasets)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services.RevenueByChannel(rows),
	})
}

// GetRevenueByCategory handles GET /api/v1/analytics/revenue/categories
func (ctrl *OverviewController) GetRevenueByCategory(c *gin.Context) {
	rows, _, ok := filteredRows(c, ctrl.datasets)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services.RevenueByCategory(rows),
	})
}
