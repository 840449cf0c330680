package models

import "time"

// Classification is a menu engineering quadrant label. Every item aggregate
// falls in exactly one quadrant based on its revenue and margin per unit
// relative to the cross-item medians of the currently filtered dataset.
type Classification string

const (
	ClassificationStar      Classification = "Star"      // high revenue, high margin
	ClassificationPlowhorse Classification = "Plowhorse" // high revenue, low margin
	ClassificationPuzzle    Classification = "Puzzle"    // low revenue, high margin
	ClassificationDog       Classification = "Dog"       // low revenue, low margin
)

// Classify assigns a menu engineering quadrant from the decision table.
// Ties go to the high branch (>=, not >).
func Classify(revenue, marginPerUnit, medianRevenue, medianMarginPerUnit float64) Classification {
	highRevenue := revenue >= medianRevenue
	highMargin := marginPerUnit >= medianMarginPerUnit

	switch {
	case highRevenue && highMargin:
		return ClassificationStar
	case highRevenue:
		return ClassificationPlowhorse
	case highMargin:
		return ClassificationPuzzle
	default:
		return ClassificationDog
	}
}

// FilterParams restricts the transaction table before any aggregation.
// Empty Categories/Channels mean no restriction on that dimension.
// TargetFoodCostPct is a display threshold only and never filters rows.
type FilterParams struct {
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	Categories        []string  `json:"categories"`
	Channels          []string  `json:"channels"`
	TargetFoodCostPct float64   `json:"target_food_cost_pct"`
}

// ItemAggregate holds the per-item rollup produced by the aggregation engine
type ItemAggregate struct {
	ItemName       string         `json:"item_name"`
	Category       string         `json:"category"`      // first category seen for the item
	Revenue        float64        `json:"revenue"`       // sum of total_revenue
	Margin         float64        `json:"margin"`        // sum of contribution_margin
	QuantitySold   int            `json:"quantity_sold"` // row count, not sum of quantity
	MarginPerUnit  float64        `json:"margin_per_unit"`
	AvgFoodCostPct float64        `json:"avg_food_cost_pct"`
	Classification Classification `json:"classification"`
}

// MenuEngineering is the classified item set plus the medians it was
// classified against. The medians always come from the same filtered subset
// as the aggregates.
type MenuEngineering struct {
	Items               []ItemAggregate `json:"items"`
	MedianRevenue       float64         `json:"median_revenue"`
	MedianMarginPerUnit float64         `json:"median_margin_per_unit"`
}

// Health status values for the food cost KPI relative to its target
const (
	StatusHealthy  = "Healthy"
	StatusWatch    = "Watch"
	StatusCritical = "Critical"
)

// Overview holds the KPI card values for the filtered dataset
type Overview struct {
	TotalRevenue    float64 `json:"total_revenue"`
	TotalFoodCost   float64 `json:"total_food_cost"`
	FoodCostPct     float64 `json:"food_cost_pct"`     // 0 when revenue is 0
	GrossMargin     float64 `json:"gross_margin"`      // revenue - food cost
	WasteCost       float64 `json:"waste_cost"`        // food cost of waste rows
	WastePctOfCost  float64 `json:"waste_pct_of_cost"` // waste cost / total food cost * 100
	AvgTicket       float64 `json:"avg_ticket"`        // mean revenue per order
	TargetFoodCost  float64 `json:"target_food_cost_pct"`
	FoodCostStatus  string  `json:"food_cost_status"` // Healthy, Watch, Critical
	TransactionRows int     `json:"transaction_rows"`
	OrderCount      int     `json:"order_count"`
}

// DailyRevenuePoint is one day of the revenue trend with trailing 7-day
// moving averages. For the first days of the range the average covers
// however many days are available so far.
type DailyRevenuePoint struct {
	Date        time.Time `json:"date"`
	Revenue     float64   `json:"revenue"`
	Margin      float64   `json:"margin"`
	Revenue7Day float64   `json:"revenue_7d"`
	Margin7Day  float64   `json:"margin_7d"`
}

// ChannelRevenue is total revenue for one order channel
type ChannelRevenue struct {
	Channel string  `json:"channel"`
	Revenue float64 `json:"revenue"`
}

// CategoryRevenue is total revenue for one menu category
type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// CategoryMargin is revenue, margin and margin percentage for one category
type CategoryMargin struct {
	Category  string  `json:"category"`
	Revenue   float64 `json:"revenue"`
	Margin    float64 `json:"margin"`
	MarginPct float64 `json:"margin_pct"` // 0 when revenue is 0
}

// ItemFoodCost is the mean food cost percentage for one item, flagged
// against the target threshold for display coloring
type ItemFoodCost struct {
	ItemName    string  `json:"item_name"`
	FoodCostPct float64 `json:"food_cost_pct"`
	Revenue     float64 `json:"revenue"`
	OverTarget  bool    `json:"over_target"`
}

// WasteSummary holds the waste KPI card values
type WasteSummary struct {
	TotalWasteCost      float64 `json:"total_waste_cost"`
	WasteRatePct        float64 `json:"waste_rate_pct"`  // waste rows / all rows * 100
	TopWasteItem        string  `json:"top_waste_item"`  // empty when there is no waste
	AnnualizedWasteCost float64 `json:"annualized_waste_cost"`
}

// WasteBucket is the waste food cost attributed to one breakdown key
// (item name, waste type, channel or month depending on the breakdown)
type WasteBucket struct {
	Label string  `json:"label"`
	Cost  float64 `json:"cost"`
}

// HeatmapCell is the order line count for one (hour, day-of-week) slot.
// Slots with no orders are absent rather than zero-filled.
type HeatmapCell struct {
	Hour      int    `json:"hour"`
	DayOfWeek string `json:"day_of_week"`
	Orders    int    `json:"orders"`
}

// WeekdayRevenue is total revenue for one day of the week
type WeekdayRevenue struct {
	DayOfWeek string  `json:"day_of_week"`
	Revenue   float64 `json:"revenue"`
}

// MonthlyRevenue is total revenue for one calendar month (YYYY-MM)
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// HourlyRevenue is total revenue for one hour of the day
type HourlyRevenue struct {
	Hour    int     `json:"hour"`
	Revenue float64 `json:"revenue"`
}

// HolidayImpact compares average daily revenue on holidays against regular
// days. An average is nil when the filtered set has no days of that kind;
// LiftPct is present only when both averages are.
type HolidayImpact struct {
	RegularAvgDailyRevenue *float64 `json:"regular_avg_daily_revenue"`
	HolidayAvgDailyRevenue *float64 `json:"holiday_avg_daily_revenue"`
	LiftPct                *float64 `json:"lift_pct"`
}
