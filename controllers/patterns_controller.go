package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborview-bistro/menu-analytics-api/services"
)

// PatternsController serves the time patterns tab
type PatternsController struct {
	datasets *services.DatasetService
}

// NewPatternsController creates a patterns controller backed by the given dataset service
func NewPatternsController(datasets *services.DatasetService) *PatternsController {
	return &PatternsController{datasets: datasets}
}

// GetTimePatterns handles GET /api/v1/analytics/patterns - returns the
// hour/day-of-week demand heatmap, the weekday/monthly/hourly revenue
// series, and the holiday impact comparison
func (ctrl *PatternsController) GetTimePatterns(c *gin.Context) {
	rows, _, ok := filteredRows(c, ctrl.datasets)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"heatmap":         services.OrdersHeatmap(rows),
			"weekday_revenue": services.RevenueByWeekday(rows),
			"monthly_revenue": services.RevenueByMonth(rows),
			"hourly_revenue":  services.RevenueByHour(rows),
			"holiday_impact":  services.HolidayImpact(rows),
		},
	})
}
