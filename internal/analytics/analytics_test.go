package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riwisport/sales-dashboard/internal/analytics"
	"github.com/riwisport/sales-dashboard/internal/models"
)

// threeItemFixture is the canonical worked example: two orders, three line
// items, two categories, one department.
func threeItemFixture() []models.OrderItemRow {
	return []models.OrderItemRow{
		{OrderItemID: 1, OrderID: 1, CustomerID: 10, ProductID: 100, ProductName: "Runner X", CategoryID: 1, CategoryName: "Shoes", City: "Medellin", Department: "Antioquia", Subtotal: 100, Quantity: 2},
		{OrderItemID: 2, OrderID: 1, CustomerID: 10, ProductID: 200, ProductName: "Classic Tee", CategoryID: 2, CategoryName: "Shirts", City: "Medellin", Department: "Antioquia", Subtotal: 50, Quantity: 1},
		{OrderItemID: 3, OrderID: 2, CustomerID: 20, ProductID: 100, ProductName: "Runner X", CategoryID: 1, CategoryName: "Shoes", City: "Bogota", Department: "Cundinamarca", Subtotal: 200, Quantity: 1},
	}
}

func TestSummarize(t *testing.T) {
	t.Run("computes KPIs over the worked example", func(t *testing.T) {
		kpis := analytics.Summarize(threeItemFixture())

		assert.Equal(t, 350.0, kpis.TotalRevenue)
		assert.Equal(t, 2, kpis.TotalOrders)
		assert.Equal(t, 2, kpis.TotalCustomers)
		assert.Equal(t, 175.0, kpis.AverageOrderValue)
	})

	t.Run("empty view yields all zeros and no division fault", func(t *testing.T) {
		kpis := analytics.Summarize(nil)

		assert.Equal(t, 0.0, kpis.TotalRevenue)
		assert.Equal(t, 0, kpis.TotalOrders)
		assert.Equal(t, 0, kpis.TotalCustomers)
		assert.Equal(t, 0.0, kpis.AverageOrderValue)
	})

	t.Run("counts orders and customers distinctly", func(t *testing.T) {
		rows := []models.OrderItemRow{
			{OrderID: 1, CustomerID: 10, Subtotal: 10},
			{OrderID: 1, CustomerID: 10, Subtotal: 10},
			{OrderID: 1, CustomerID: 10, Subtotal: 10},
		}
		kpis := analytics.Summarize(rows)

		assert.Equal(t, 1, kpis.TotalOrders)
		assert.Equal(t, 1, kpis.TotalCustomers)
		assert.Equal(t, 30.0, kpis.AverageOrderValue)
	})
}

func TestFilter(t *testing.T) {
	rows := threeItemFixture()

	t.Run("keeps only matching departments in original order", func(t *testing.T) {
		got := analytics.Filter(rows, []string{"Antioquia"})

		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].OrderItemID)
		assert.Equal(t, int64(2), got[1].OrderItemID)
	})

	t.Run("empty selection yields empty view", func(t *testing.T) {
		got := analytics.Filter(rows, []string{})
		assert.Empty(t, got)
	})

	t.Run("unknown department matches nothing without fault", func(t *testing.T) {
		got := analytics.Filter(rows, []string{"Atlantico"})
		assert.Empty(t, got)
	})

	t.Run("revenue of filtered view covers exactly the selected rows", func(t *testing.T) {
		got := analytics.Filter(rows, []string{"Cundinamarca"})
		kpis := analytics.Summarize(got)

		assert.Equal(t, 200.0, kpis.TotalRevenue)
		assert.Equal(t, 1, kpis.TotalOrders)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		before := threeItemFixture()
		_ = analytics.Filter(rows, []string{"Antioquia"})
		assert.Equal(t, before, rows)
	})
}

func TestRollups(t *testing.T) {
	rows := threeItemFixture()

	t.Run("category rollup sums revenue and quantity per group", func(t *testing.T) {
		groups := analytics.RollupByCategory(rows)

		require.Len(t, groups, 2)
		// First-appearance order: Shoes before Shirts.
		assert.Equal(t, "Shoes", groups[0].GroupName)
		assert.Equal(t, 300.0, groups[0].TotalRevenue)
		assert.Equal(t, int64(3), groups[0].TotalQuantity)
		assert.Equal(t, "Shirts", groups[1].GroupName)
		assert.Equal(t, 50.0, groups[1].TotalRevenue)
		assert.Equal(t, int64(1), groups[1].TotalQuantity)
	})

	t.Run("product rollup has the same shape", func(t *testing.T) {
		groups := analytics.RollupByProduct(rows)

		require.Len(t, groups, 2)
		assert.Equal(t, "Runner X", groups[0].GroupName)
		assert.Equal(t, 300.0, groups[0].TotalRevenue)
	})

	t.Run("groups partition the view's totals", func(t *testing.T) {
		kpis := analytics.Summarize(rows)

		var revenue float64
		var quantity int64
		for _, g := range analytics.RollupByCategory(rows) {
			revenue += g.TotalRevenue
			quantity += g.TotalQuantity
		}
		assert.Equal(t, kpis.TotalRevenue, revenue)
		assert.Equal(t, int64(4), quantity)
	})

	t.Run("empty view yields empty rollups", func(t *testing.T) {
		assert.Empty(t, analytics.RollupByCategory(nil))
		assert.Empty(t, analytics.RollupByProduct(nil))
	})
}

func TestTopN(t *testing.T) {
	groups := []models.RollupRow{
		{GroupID: 1, GroupName: "a", TotalRevenue: 10, TotalQuantity: 5},
		{GroupID: 2, GroupName: "b", TotalRevenue: 30, TotalQuantity: 1},
		{GroupID: 3, GroupName: "c", TotalRevenue: 20, TotalQuantity: 5},
		{GroupID: 4, GroupName: "d", TotalRevenue: 20, TotalQuantity: 9},
	}

	t.Run("returns n largest by revenue, descending", func(t *testing.T) {
		top := analytics.TopN(groups, analytics.MetricRevenue, 2)

		require.Len(t, top, 2)
		assert.Equal(t, "b", top[0].GroupName)
		assert.Equal(t, "c", top[1].GroupName)
	})

	t.Run("exact ties keep first-appearance order", func(t *testing.T) {
		top := analytics.TopN(groups, analytics.MetricRevenue, 4)

		// c (id 3) appears before d (id 4) in the rollup, both at 20.
		assert.Equal(t, []int64{2, 3, 4, 1}, []int64{top[0].GroupID, top[1].GroupID, top[2].GroupID, top[3].GroupID})
	})

	t.Run("supports the quantity metric", func(t *testing.T) {
		top := analytics.TopN(groups, analytics.MetricQuantity, 2)

		assert.Equal(t, "d", top[0].GroupName)
		assert.Equal(t, "a", top[1].GroupName) // ties with c, a appears first
	})

	t.Run("n larger than the rollup returns everything", func(t *testing.T) {
		assert.Len(t, analytics.TopN(groups, analytics.MetricRevenue, 10), 4)
	})

	t.Run("does not reorder the input", func(t *testing.T) {
		_ = analytics.TopN(groups, analytics.MetricRevenue, 2)
		assert.Equal(t, int64(1), groups[0].GroupID)
	})
}

func TestParseMetric(t *testing.T) {
	m, err := analytics.ParseMetric("")
	require.NoError(t, err)
	assert.Equal(t, analytics.MetricRevenue, m)

	m, err = analytics.ParseMetric("quantity")
	require.NoError(t, err)
	assert.Equal(t, analytics.MetricQuantity, m)

	_, err = analytics.ParseMetric("profit")
	assert.Error(t, err)
}

func TestPivotCityCategory(t *testing.T) {
	rows := threeItemFixture()

	t.Run("sums revenue per city/category pair and zero-fills the rest", func(t *testing.T) {
		m := analytics.PivotCityCategory(rows)

		require.Equal(t, []string{"Bogota", "Medellin"}, m.Rows)
		require.Equal(t, []string{"Shirts", "Shoes"}, m.Columns)

		// Bogota: no Shirts, 200 in Shoes.
		assert.Equal(t, 0.0, m.Values[0][0])
		assert.Equal(t, 200.0, m.Values[0][1])
		// Medellin: 50 Shirts, 100 Shoes.
		assert.Equal(t, 50.0, m.Values[1][0])
		assert.Equal(t, 100.0, m.Values[1][1])
	})

	t.Run("column totals match the category rollup", func(t *testing.T) {
		m := analytics.PivotCityCategory(rows)
		rollup := analytics.RollupByCategory(rows)

		byName := make(map[string]float64)
		for _, g := range rollup {
			byName[g.GroupName] = g.TotalRevenue
		}
		for col, name := range m.Columns {
			var total float64
			for row := range m.Rows {
				total += m.Values[row][col]
			}
			assert.Equal(t, byName[name], total, "column %s", name)
		}
	})

	t.Run("matrix grand total matches overall revenue", func(t *testing.T) {
		m := analytics.PivotCityCategory(rows)

		var total float64
		for _, row := range m.Values {
			for _, v := range row {
				total += v
			}
		}
		assert.Equal(t, analytics.Summarize(rows).TotalRevenue, total)
	})

	t.Run("empty view yields an empty matrix", func(t *testing.T) {
		m := analytics.PivotCityCategory(nil)
		assert.Empty(t, m.Rows)
		assert.Empty(t, m.Columns)
		assert.Empty(t, m.Values)
	})
}

func TestRevenueByMonth(t *testing.T) {
	rows := []models.OrderItemRow{
		{OrderID: 1, Year: 2024, Month: 3, Subtotal: 10},
		{OrderID: 2, Year: 2023, Month: 12, Subtotal: 20},
		{OrderID: 3, Year: 2024, Month: 3, Subtotal: 5},
		{OrderID: 1, Year: 2024, Month: 3, Subtotal: 1},
	}

	months := analytics.RevenueByMonth(rows)

	require.Len(t, months, 2)
	assert.Equal(t, 2023, months[0].Year)
	assert.Equal(t, 12, months[0].Month)
	assert.Equal(t, 20.0, months[0].TotalRevenue)
	assert.Equal(t, 1, months[0].OrderCount)

	assert.Equal(t, 2024, months[1].Year)
	assert.Equal(t, 3, months[1].Month)
	assert.Equal(t, 16.0, months[1].TotalRevenue)
	assert.Equal(t, 2, months[1].OrderCount)
}
