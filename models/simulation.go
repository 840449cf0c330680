package models

// Bounds for the price simulator inputs, in percentage points
const (
	MinPriceChangePct = -20.0
	MaxPriceChangePct = 30.0
	MinElasticityPct  = 0.0
	MaxElasticityPct  = 30.0
)

// SimulationRequest carries the user parameters for a price simulation.
// ElasticityPct is the assumed percentage drop in volume under a price
// increase; under a decrease only half of it applies as a demand lift.
type SimulationRequest struct {
	ItemName       string  `json:"item_name" binding:"required"`
	PriceChangePct float64 `json:"price_change_pct"`
	ElasticityPct  float64 `json:"elasticity_pct"`
}

// SimulationSnapshot is one side (current or projected) of a simulation
type SimulationSnapshot struct {
	Price          float64        `json:"price"`
	Quantity       float64        `json:"quantity"` // projected quantity may be fractional
	Revenue        float64        `json:"revenue"`
	Margin         float64        `json:"margin"`
	MarginPerUnit  float64        `json:"margin_per_unit"`
	Classification Classification `json:"classification"`
}

// SimulationDeltas holds the percentage changes between current and
// projected values. Divisions by a zero current value yield 0.
type SimulationDeltas struct {
	PricePct         float64 `json:"price_pct"`
	VolumePct        float64 `json:"volume_pct"`
	RevenuePct       float64 `json:"revenue_pct"`
	MarginPct        float64 `json:"margin_pct"`
	MarginPerUnitPct float64 `json:"margin_per_unit_pct"`
}

// SimulationResult is the full projection for one item under a price change
type SimulationResult struct {
	ItemName              string             `json:"item_name"`
	Current               SimulationSnapshot `json:"current"`
	Projected             SimulationSnapshot `json:"projected"`
	Deltas                SimulationDeltas   `json:"deltas"`
	NetMarginImpact       float64            `json:"net_margin_impact"` // projected margin - current margin
	ClassificationChanged bool               `json:"classification_changed"`
}
