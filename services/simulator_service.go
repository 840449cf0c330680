package services

import (
	"errors"
	"fmt"

	"github.com/harborview-bistro/menu-analytics-api/models"
	"github.com/montanaflynn/stats"
)

// ErrItemNotFound is returned when a simulation targets an item with no
// rows in the currently filtered dataset. The simulator is undefined for
// such items, so callers must offer only items from SelectableItems.
var ErrItemNotFound = errors.New("item not present in the filtered dataset")

// InvalidParameterError reports a simulator parameter outside its allowed range
type InvalidParameterError struct {
	Param   string
	Message string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Message)
}

// SimulatePrice projects the effect of a price change on one item's volume,
// revenue and margin, and reclassifies the projection against the medians
// of the current (unsimulated) item set.
//
// The volume response is deliberately asymmetric: a price increase loses the
// full assumed elasticity, while an unchanged or decreased price gains only
// half of it as a demand lift, modeling the weaker customer response to
// discounts. The projected quantity is kept fractional for the revenue and
// margin math; only the display layer truncates it.
func SimulatePrice(rows []models.Transaction, engineering models.MenuEngineering, req models.SimulationRequest) (*models.SimulationResult, error) {
	if req.PriceChangePct < models.MinPriceChangePct || req.PriceChangePct > models.MaxPriceChangePct {
		return nil, &InvalidParameterError{
			Param:   "price_change_pct",
			Message: fmt.Sprintf("must be between %.0f and %.0f", models.MinPriceChangePct, models.MaxPriceChangePct),
		}
	}
	if req.ElasticityPct < models.MinElasticityPct || req.ElasticityPct > models.MaxElasticityPct {
		return nil, &InvalidParameterError{
			Param:   "elasticity_pct",
			Message: fmt.Sprintf("must be between %.0f and %.0f", models.MinElasticityPct, models.MaxElasticityPct),
		}
	}

	itemRows := make([]models.Transaction, 0)
	for _, row := range rows {
		if row.ItemName == req.ItemName {
			itemRows = append(itemRows, row)
		}
	}
	if len(itemRows) == 0 {
		return nil, ErrItemNotFound
	}

	prices := make([]float64, 0, len(itemRows))
	foodCosts := make([]float64, 0, len(itemRows))
	currentRevenue := 0.0
	currentMargin := 0.0
	for _, row := range itemRows {
		prices = append(prices, row.ActualPrice)
		foodCosts = append(foodCosts, row.FoodCostPerUnit)
		currentRevenue += row.TotalRevenue
		currentMargin += row.ContributionMargin
	}

	currentPrice, err := stats.Mean(prices)
	if err != nil {
		return nil, fmt.Errorf("failed to compute current price: %w", err)
	}
	currentFoodCost, err := stats.Mean(foodCosts)
	if err != nil {
		return nil, fmt.Errorf("failed to compute current food cost: %w", err)
	}

	currentQuantity := float64(len(itemRows))
	currentMarginPerUnit := currentMargin / currentQuantity

	newPrice := currentPrice * (1 + req.PriceChangePct/100)

	// Full elasticity on an increase, half-elasticity lift otherwise
	volumeChangePct := req.ElasticityPct / 2
	if req.PriceChangePct > 0 {
		volumeChangePct = -req.ElasticityPct
	}

	newQuantity := currentQuantity * (1 + volumeChangePct/100)
	newRevenue := newPrice * newQuantity
	// Food cost per unit is held constant under repricing
	newMargin := (newPrice - currentFoodCost) * newQuantity
	newMarginPerUnit := 0.0
	if newQuantity > 0 {
		newMarginPerUnit = newMargin / newQuantity
	}

	// Both sides classify against the same medians; the simulator never
	// recomputes them for the hypothetical item set.
	current := models.SimulationSnapshot{
		Price:          currentPrice,
		Quantity:       currentQuantity,
		Revenue:        currentRevenue,
		Margin:         currentMargin,
		MarginPerUnit:  currentMarginPerUnit,
		Classification: models.Classify(currentRevenue, currentMarginPerUnit, engineering.MedianRevenue, engineering.MedianMarginPerUnit),
	}
	projected := models.SimulationSnapshot{
		Price:          newPrice,
		Quantity:       newQuantity,
		Revenue:        newRevenue,
		Margin:         newMargin,
		MarginPerUnit:  newMarginPerUnit,
		Classification: models.Classify(newRevenue, newMarginPerUnit, engineering.MedianRevenue, engineering.MedianMarginPerUnit),
	}

	return &models.SimulationResult{
		ItemName:  req.ItemName,
		Current:   current,
		Projected: projected,
		Deltas: models.SimulationDeltas{
			PricePct:         req.PriceChangePct,
			VolumePct:        volumeChangePct,
			RevenuePct:       pctChange(currentRevenue, newRevenue),
			MarginPct:        pctChange(currentMargin, newMargin),
			MarginPerUnitPct: pctChange(currentMarginPerUnit, newMarginPerUnit),
		},
		NetMarginImpact:       newMargin - currentMargin,
		ClassificationChanged: current.Classification != projected.Classification,
	}, nil
}

// pctChange returns the percentage change from current to projected,
// falling back to 0 when the current value is 0
func pctChange(current, projected float64) float64 {
	if current == 0 {
		return 0
	}
	return (projected/current - 1) * 100
}
