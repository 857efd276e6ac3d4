package models

import "time"

// Transaction is one row of the canonical table. OrderDate is nil when the
// source value did not parse; Region/Category/Product are empty strings when
// the source column was absent or blank.
type Transaction struct {
	OrderID   string
	OrderDate *time.Time
	Region    string
	Category  string
	Product   string
	DayOfWeek string
	Month     string // "YYYY-MM", derived from OrderDate when not source-provided
	Quantity  int
	Revenue   float64
}

type KPISummary struct {
	TotalRevenue  float64 `json:"total_revenue"`
	UniqueOrders  int     `json:"unique_orders"`
	AvgOrderValue float64 `json:"avg_order_value"`
	TotalUnits    int     `json:"total_units"`
}

// GroupTotal is one (key, value) pair of a grouped aggregation.
type GroupTotal struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

type MonthlyPoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// ForecastResult carries the historical monthly series and the flat
// mean-valued projection.
type ForecastResult struct {
	History   []MonthlyPoint `json:"history"`
	Projected []MonthlyPoint `json:"projected"`
	Mean      float64        `json:"mean"`
}

// FilterOptions lists the distinct categorical values available to the
// UI's filter widgets.
type FilterOptions struct {
	Regions    []string `json:"regions"`
	Categories []string `json:"categories"`
	MinDate    string   `json:"min_date,omitempty"`
	MaxDate    string   `json:"max_date,omitempty"`
}
