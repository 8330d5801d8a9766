package dataset_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riwisport/sales-dashboard/internal/dataset"
	"github.com/riwisport/sales-dashboard/internal/models"
)

// fakeLoader counts queries and can be told to fail.
type fakeLoader struct {
	rows  []models.OrderItemRow
	err   error
	calls int
}

func (f *fakeLoader) LoadOrderItems(ctx context.Context) ([]models.OrderItemRow, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.OrderItemRow, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func sampleRows() []models.OrderItemRow {
	bogotaTime := time.FixedZone("UTC-5", -5*3600)
	return []models.OrderItemRow{
		{OrderItemID: 1, OrderID: 1, Department: "Antioquia", CategoryName: "Shoes", PaymentDate: time.Date(2024, 3, 15, 14, 30, 0, 0, bogotaTime)},
		{OrderItemID: 2, OrderID: 2, Department: "Cundinamarca", CategoryName: "Shirts", PaymentDate: time.Date(2023, 12, 31, 23, 59, 59, 0, bogotaTime)},
	}
}

func TestCacheGet(t *testing.T) {
	t.Run("second call is a cache hit with no second query", func(t *testing.T) {
		loader := &fakeLoader{rows: sampleRows()}
		c := dataset.NewCache(loader)

		first, err := c.Get(context.Background())
		require.NoError(t, err)
		second, err := c.Get(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, loader.calls)
		assert.Same(t, first, second)
		assert.Equal(t, first.Rows, second.Rows)
	})

	t.Run("load failure is returned and never cached", func(t *testing.T) {
		loader := &fakeLoader{rows: sampleRows(), err: errors.New("connection refused")}
		c := dataset.NewCache(loader)

		_, err := c.Get(context.Background())
		require.Error(t, err)

		loader.err = nil
		table, err := c.Get(context.Background())
		require.NoError(t, err)
		assert.Len(t, table.Rows, 2)
		assert.Equal(t, 2, loader.calls)
	})

	t.Run("derives date fields and strips the timezone offset", func(t *testing.T) {
		loader := &fakeLoader{rows: sampleRows()}
		c := dataset.NewCache(loader)

		table, err := c.Get(context.Background())
		require.NoError(t, err)

		r := table.Rows[0]
		// Wall clock preserved, offset discarded.
		assert.Equal(t, time.UTC, r.PaymentDate.Location())
		assert.Equal(t, 14, r.PaymentDate.Hour())
		assert.Equal(t, 2024, r.Year)
		assert.Equal(t, 3, r.Month)
		assert.Equal(t, "Friday", r.DayOfWeek)

		r = table.Rows[1]
		assert.Equal(t, 2023, r.Year)
		assert.Equal(t, 12, r.Month)
		assert.Equal(t, "Sunday", r.DayOfWeek)
	})

	t.Run("collects sorted label domains", func(t *testing.T) {
		loader := &fakeLoader{rows: sampleRows()}
		c := dataset.NewCache(loader)

		table, err := c.Get(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []string{"Antioquia", "Cundinamarca"}, table.Departments)
		assert.Equal(t, []string{"Shirts", "Shoes"}, table.Categories)
	})

	t.Run("empty dataset still builds a table", func(t *testing.T) {
		loader := &fakeLoader{}
		c := dataset.NewCache(loader)

		table, err := c.Get(context.Background())
		require.NoError(t, err)
		assert.Empty(t, table.Rows)
		assert.Empty(t, table.Departments)
	})
}

func TestCacheInvalidate(t *testing.T) {
	loader := &fakeLoader{rows: sampleRows()}
	c := dataset.NewCache(loader)

	_, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), c.Generation())

	c.Invalidate()
	assert.Equal(t, uint64(1), c.Generation())

	_, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, loader.calls)
}
