package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborview-bistro/menu-analytics-api/services"
)

// MenuController serves the menu engineering tab
type MenuController struct {
	datasets *services.DatasetService
}

// NewMenuController creates a menu controller backed by the given dataset service
func NewMenuController(datasets *services.DatasetService) *MenuController {
	return &MenuController{datasets: datasets}
}

// GetMenuEngineering handles GET /api/v1/analytics/menu/engineering -
// returns the classified per-item aggregates, the medians they were
// classified against, and the supporting category/food-cost tables.
// Everything is computed from the same filtered subset, so the medians
// always belong to the aggregates they classify.
func (ctrl *MenuController) GetMenuEngineering(c *gin.Context) {
	rows, params, ok := filteredRows(c, ctrl.datasets)
	if !ok {
		return
	}

	engineering := services.AggregateByItem(rows)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"items":                  engineering.Items,
			"median_revenue":         engineering.MedianRevenue,
			"median_margin_per_unit": engineering.MedianMarginPerUnit,
			"category_margins":       services.CategoryMargins(rows),
			"item_food_costs":        services.ItemFoodCosts(rows, params.TargetFoodCostPct, topListLimit),
			"target_food_cost_pct":   params.TargetFoodCostPct,
		},
	})
}
