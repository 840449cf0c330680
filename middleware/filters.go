package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/harborview-bistro/menu-analytics-api/models"
	"github.com/harborview-bistro/menu-analytics-api/services"
	"github.com/harborview-bistro/menu-analytics-api/utils"
)

// filterParamsKey is the context key the resolved filter params are stored under
const filterParamsKey = "filter_params"

// ResolveFilters parses the shared filter query parameters and stores them
// in the request context for the analytics handlers:
//
//	start_date, end_date      YYYY-MM-DD, default: the snapshot's full range
//	categories, channels      comma-separated, default: no restriction
//	target_food_cost_pct      display threshold, default from configuration
//
// A start date after the end date is a valid query (it yields an empty
// result set downstream), not a validation error.
func ResolveFilters(datasets *services.DatasetService, defaultTargetFoodCostPct float64) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot := datasets.Snapshot()
		if snapshot == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATASET_NOT_LOADED",
					"message": "No dataset has been loaded yet",
				},
			})
			return
		}

		params := snapshot.DefaultFilter(defaultTargetFoodCostPct)

		if value := c.Query("start_date"); value != "" {
			parsed, err := utils.ParseDate("start_date", value)
			if err != nil {
				abortValidation(c, err)
				return
			}
			params.StartDate = parsed
		}
		if value := c.Query("end_date"); value != "" {
			parsed, err := utils.ParseDate("end_date", value)
			if err != nil {
				abortValidation(c, err)
				return
			}
			params.EndDate = parsed
		}

		params.Categories = splitList(c.Query("categories"))
		params.Channels = splitList(c.Query("channels"))

		if value := c.Query("target_food_cost_pct"); value != "" {
			parsed, err := strconv.ParseFloat(value, 64)
			if err != nil || parsed <= 0 || parsed >= 100 {
				abortValidation(c, fmt.Errorf("target_food_cost_pct must be a number between 0 and 100"))
				return
			}
			params.TargetFoodCostPct = parsed
		}

		c.Set(filterParamsKey, params)
		c.Next()
	}
}

// GetFilterParams extracts the resolved filter params from the context.
// It returns an error if ResolveFilters did not run for this request.
func GetFilterParams(c *gin.Context) (models.FilterParams, error) {
	value, exists := c.Get(filterParamsKey)
	if !exists {
		return models.FilterParams{}, errors.New("filter params not found in context")
	}

	params, ok := value.(models.FilterParams)
	if !ok {
		return models.FilterParams{}, errors.New("filter params have unexpected type")
	}
	return params, nil
}

// splitList parses a comma-separated query value into trimmed entries;
// an empty value means no restriction and yields nil
func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	entries := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			entries = append(entries, trimmed)
		}
	}
	if len(entries) == 0 {
		return nil
	}
	return entries
}

func abortValidation(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid filter parameters",
			"details": err.Error(),
		},
	})
}
