package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborview-bistro/menu-analytics-api/middleware"
	"github.com/harborview-bistro/menu-analytics-api/models"
	"github.com/harborview-bistro/menu-analytics-api/services"
)

// topListLimit caps the per-item breakdown tables served to the dashboard
const topListLimit = 15

// filteredRows resolves the request's filter params and applies them to the
// current snapshot. It writes the error response and returns ok=false when
// the filter middleware did not run for this route.
func filteredRows(c *gin.Context, datasets *services.DatasetService) ([]models.Transaction, models.FilterParams, bool) {
	params, err := middleware.GetFilterParams(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILTER_ERROR",
				"message": "Filter parameters were not resolved for this request",
			},
		})
		return nil, models.FilterParams{}, false
	}

	snapshot := datasets.Snapshot()
	if snapshot == nil {
		// ResolveFilters rejects requests before a dataset is loaded, so
		// this only guards handlers wired without the middleware.
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATASET_NOT_LOADED",
				"message": "No dataset has been loaded yet",
			},
		})
		return nil, models.FilterParams{}, false
	}

	return services.FilterTransactions(snapshot.Rows, params), params, true
}
