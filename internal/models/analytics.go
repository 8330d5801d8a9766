package models

import "time"

// KPISummary holds the scalar KPIs displayed at the top of the dashboard.
type KPISummary struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalOrders       int     `json:"totalOrders"`
	TotalCustomers    int     `json:"totalCustomers"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

// RollupRow is one group of a grouped rollup (by category or by product).
type RollupRow struct {
	GroupID       int64   `json:"groupId"`
	GroupName     string  `json:"groupName"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalQuantity int64   `json:"totalQuantity"`
}

// MonthlyRevenue is one calendar month of the revenue trend.
type MonthlyRevenue struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	TotalRevenue float64 `json:"totalRevenue"`
	OrderCount   int     `json:"orderCount"`
}

// PivotMatrix is a dense two-dimensional pivot. Values is indexed
// [row][column]; combinations absent from the source rows hold 0.
type PivotMatrix struct {
	Rows    []string    `json:"rows"`
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// HistogramBin is one equal-width bin of a value distribution. Upper is
// exclusive except for the last bin, which includes the maximum.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// BoxplotSummary is a five-number summary of subtotals within one category.
// Whiskers extend to the furthest values within 1.5×IQR of the quartiles;
// values beyond them are listed as outliers.
type BoxplotSummary struct {
	Category string    `json:"category"`
	Min      float64   `json:"min"`
	Q1       float64   `json:"q1"`
	Median   float64   `json:"median"`
	Q3       float64   `json:"q3"`
	Max      float64   `json:"max"`
	Outliers []float64 `json:"outliers,omitempty"`
	Count    int       `json:"count"`
}

// Distribution bundles everything the presentation layer needs for the
// histogram and boxplot charts: the raw per-row subtotals plus the
// precomputed summaries.
type Distribution struct {
	Values        []float64            `json:"values"`
	Bins          []HistogramBin       `json:"bins"`
	GroupedValues map[string][]float64 `json:"groupedValues"`
	Boxplots      []BoxplotSummary     `json:"boxplots"`
}

// DashboardSnapshot is the fully composed dashboard payload for one
// department selection. Heatmap is present only when more than one
// department is selected, mirroring the chart-gating rule of the UI.
type DashboardSnapshot struct {
	Departments []string `json:"departments"`
	Selected    []string `json:"selected"`

	KPIs KPISummary `json:"kpis"`

	TopCategoriesByRevenue  []RollupRow `json:"topCategoriesByRevenue"`
	TopCategoriesByQuantity []RollupRow `json:"topCategoriesByQuantity"`
	TopProductsByRevenue    []RollupRow `json:"topProductsByRevenue"`
	TopProductsByQuantity   []RollupRow `json:"topProductsByQuantity"`

	Distribution Distribution     `json:"distribution"`
	Heatmap      *PivotMatrix     `json:"heatmap,omitempty"`
	MonthlyTrend []MonthlyRevenue `json:"monthlyTrend"`

	GeneratedAt time.Time `json:"generatedAt"`
}
