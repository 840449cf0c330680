package models

import (
	"time"
)

// Order channels supported by the POS export
const (
	ChannelDineIn   = "Dine-In"
	ChannelTakeout  = "Takeout"
	ChannelDelivery = "Delivery"
)

// Waste types recorded when a line item is discarded
const (
	WasteCustomerReturn = "Customer Return"
	WasteKitchenError   = "Kitchen Error"
	WasteSpoilage       = "Spoilage"
)

// WeekdayNames lists day-of-week values in display order (Monday first),
// matching the day_of_week column of the POS export.
var WeekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Transaction represents one line item of a POS order. Rows are imported
// from the POS CSV export and never mutated afterwards; multiple rows share
// an OrderID when an order contains several items.
type Transaction struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	OrderID            string    `gorm:"not null;index" json:"order_id"`
	OrderDate          time.Time `gorm:"not null;index" json:"order_date"`
	OrderDatetime      time.Time `gorm:"not null" json:"order_datetime"`
	OrderChannel       string    `gorm:"not null" json:"order_channel"` // Dine-In, Takeout, Delivery
	TableNumber        *int      `json:"table_number"`                  // nullable, dine-in only
	ServerID           string    `json:"server_id"`
	ItemName           string    `gorm:"not null;index" json:"item_name"`
	Category           string    `gorm:"not null" json:"category"`
	MenuPrice          float64   `json:"menu_price"`
	ActualPrice        float64   `gorm:"not null" json:"actual_price"`
	FoodCostPerUnit    float64   `gorm:"not null" json:"food_cost_per_unit"`
	Quantity           int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	TotalRevenue       float64   `json:"total_revenue"` // 0 when the line is waste
	TotalFoodCost      float64   `json:"total_food_cost"`
	ContributionMargin float64   `json:"contribution_margin"` // total_revenue - total_food_cost
	FoodCostPct        float64   `json:"food_cost_pct"`       // 0 when revenue is 0
	PrepTimeMin        int       `json:"prep_time_min"`
	IsWaste            bool      `gorm:"index" json:"is_waste"`
	WasteType          *string   `json:"waste_type"` // nullable, set only when IsWaste
	DayOfWeek          string    `json:"day_of_week"`
	Month              string    `json:"month"`
	Hour               int       `json:"hour"` // 0-23
	IsWeekend          bool      `json:"is_weekend"`
	IsHoliday          bool      `json:"is_holiday"`
	IsRainy            bool      `json:"is_rainy"`
	PaymentMethod      string    `json:"payment_method"`
}

// TableName specifies the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// ImportReceipt records a completed dataset import
type ImportReceipt struct {
	BatchID    string    `json:"batch_id"` // uuid assigned per import
	Source     string    `json:"source"`   // file path or s3://bucket/key
	RowCount   int       `json:"row_count"`
	ImportedAt time.Time `json:"imported_at"`
}
