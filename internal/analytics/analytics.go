// Package analytics contains the pure aggregation core of the dashboard:
// filtering, KPI computation, grouped rollups, top-N selection and the
// city/category pivot. Every function is side-effect free and leaves its
// input untouched, so each user interaction is a full recomputation over
// the current view.
package analytics

import (
	"fmt"
	"sort"

	"github.com/riwisport/sales-dashboard/internal/models"
)

// Metric selects which rollup column top-N operates on.
type Metric string

const (
	MetricRevenue  Metric = "revenue"
	MetricQuantity Metric = "quantity"
)

// ParseMetric validates a user-supplied metric name. An empty string
// defaults to revenue.
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "", string(MetricRevenue):
		return MetricRevenue, nil
	case string(MetricQuantity):
		return MetricQuantity, nil
	default:
		return "", fmt.Errorf("unknown metric %q", s)
	}
}

// Filter returns the subsequence of rows whose department is in selected,
// preserving row order. An empty selection yields an empty view; labels not
// present in the data simply match nothing.
func Filter(rows []models.OrderItemRow, selected []string) []models.OrderItemRow {
	set := make(map[string]struct{}, len(selected))
	for _, d := range selected {
		set[d] = struct{}{}
	}

	out := make([]models.OrderItemRow, 0, len(rows))
	for _, r := range rows {
		if _, ok := set[r.Department]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Summarize computes the scalar KPIs over a view. On an empty view every
// field is zero; in particular the average order value is 0, not NaN, when
// there are no orders.
func Summarize(rows []models.OrderItemRow) models.KPISummary {
	orders := make(map[int64]struct{})
	customers := make(map[int64]struct{})
	var revenue float64

	for _, r := range rows {
		revenue += r.Subtotal
		orders[r.OrderID] = struct{}{}
		customers[r.CustomerID] = struct{}{}
	}

	aov := 0.0
	if len(orders) > 0 {
		aov = revenue / float64(len(orders))
	}

	return models.KPISummary{
		TotalRevenue:      revenue,
		TotalOrders:       len(orders),
		TotalCustomers:    len(customers),
		AverageOrderValue: aov,
	}
}

// RollupByCategory groups rows by (category id, category name) and sums
// revenue and quantity per group. Groups appear in first-appearance order of
// the rows; categories without rows in the view are absent, never zero-filled.
func RollupByCategory(rows []models.OrderItemRow) []models.RollupRow {
	return rollup(rows, func(r models.OrderItemRow) (int64, string) {
		return r.CategoryID, r.CategoryName
	})
}

// RollupByProduct groups rows by (product id, product name), same shape as
// RollupByCategory.
func RollupByProduct(rows []models.OrderItemRow) []models.RollupRow {
	return rollup(rows, func(r models.OrderItemRow) (int64, string) {
		return r.ProductID, r.ProductName
	})
}

func rollup(rows []models.OrderItemRow, key func(models.OrderItemRow) (int64, string)) []models.RollupRow {
	index := make(map[int64]int)
	out := make([]models.RollupRow, 0)

	for _, r := range rows {
		id, name := key(r)
		i, ok := index[id]
		if !ok {
			i = len(out)
			index[id] = i
			out = append(out, models.RollupRow{GroupID: id, GroupName: name})
		}
		out[i].TotalRevenue += r.Subtotal
		out[i].TotalQuantity += r.Quantity
	}
	return out
}

// TopN returns the n groups with the largest metric value, descending. The
// sort is stable, so exact ties keep the rollup's first-appearance order.
// The input slice is not modified.
func TopN(groups []models.RollupRow, metric Metric, n int) []models.RollupRow {
	out := make([]models.RollupRow, len(groups))
	copy(out, groups)

	sort.SliceStable(out, func(i, j int) bool {
		if metric == MetricQuantity {
			return out[i].TotalQuantity > out[j].TotalQuantity
		}
		return out[i].TotalRevenue > out[j].TotalRevenue
	})

	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// PivotCityCategory builds the city × category revenue matrix. Rows are
// cities and columns category names, both sorted ascending; combinations
// absent from the view hold 0.
func PivotCityCategory(rows []models.OrderItemRow) models.PivotMatrix {
	citySet := make(map[string]struct{})
	catSet := make(map[string]struct{})
	for _, r := range rows {
		citySet[r.City] = struct{}{}
		catSet[r.CategoryName] = struct{}{}
	}

	cities := sortedKeys(citySet)
	categories := sortedKeys(catSet)

	cityIdx := make(map[string]int, len(cities))
	for i, c := range cities {
		cityIdx[c] = i
	}
	catIdx := make(map[string]int, len(categories))
	for i, c := range categories {
		catIdx[c] = i
	}

	values := make([][]float64, len(cities))
	for i := range values {
		values[i] = make([]float64, len(categories))
	}
	for _, r := range rows {
		values[cityIdx[r.City]][catIdx[r.CategoryName]] += r.Subtotal
	}

	return models.PivotMatrix{Rows: cities, Columns: categories, Values: values}
}

// RevenueByMonth sums revenue and counts distinct orders per calendar month,
// using the date fields derived at load time. Months are returned in
// chronological order.
func RevenueByMonth(rows []models.OrderItemRow) []models.MonthlyRevenue {
	type bucket struct {
		revenue float64
		orders  map[int64]struct{}
	}
	buckets := make(map[int]*bucket)

	for _, r := range rows {
		key := r.Year*100 + r.Month
		b, ok := buckets[key]
		if !ok {
			b = &bucket{orders: make(map[int64]struct{})}
			buckets[key] = b
		}
		b.revenue += r.Subtotal
		b.orders[r.OrderID] = struct{}{}
	}

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]models.MonthlyRevenue, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		out = append(out, models.MonthlyRevenue{
			Year:         k / 100,
			Month:        k % 100,
			TotalRevenue: b.revenue,
			OrderCount:   len(b.orders),
		})
	}
	return out
}

// SubtotalValues extracts the per-row subtotal sequence for histogram
// rendering.
func SubtotalValues(rows []models.OrderItemRow) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Subtotal
	}
	return out
}

// SubtotalsByCategory groups the per-row subtotals by category name for
// boxplot rendering.
func SubtotalsByCategory(rows []models.OrderItemRow) map[string][]float64 {
	out := make(map[string][]float64)
	for _, r := range rows {
		out[r.CategoryName] = append(out[r.CategoryName], r.Subtotal)
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
