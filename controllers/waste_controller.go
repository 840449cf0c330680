package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborview-bistro/menu-analytics-api/services"
)

// WasteController serves the waste and loss tab
type WasteController struct {
	datasets *services.DatasetService
}

// NewWasteController creates a waste controller backed by the given dataset service
func NewWasteController(datasets *services.DatasetService) *WasteController {
	return &WasteController{datasets: datasets}
}

// GetWasteAnalysis handles GET /api/v1/analytics/waste - returns the waste
// KPI values and the breakdowns by item, type, month and channel
func (ctrl *WasteController) GetWasteAnalysis(c *gin.Context) {
	rows, params, ok := filteredRows(c, ctrl.datasets)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"summary":    services.WasteAnalysis(rows, params.StartDate, params.EndDate),
			"by_item":    services.WasteByItem(rows, topListLimit),
			"by_type":    services.WasteByType(rows),
			"by_month":   services.WasteByMonth(rows),
			"by_channel": services.WasteByChannel(rows),
		},
	})
}
