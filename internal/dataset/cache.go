package dataset

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riwisport/sales-dashboard/internal/models"
)

// Loader produces the denormalized sales rows. Implemented by
// repository.SalesRepository; tests inject fakes.
type Loader interface {
	LoadOrderItems(ctx context.Context) ([]models.OrderItemRow, error)
}

// Table is the immutable in-memory sales table. Rows carry the derived date
// fields; Departments and Categories record the distinct label domains
// observed at load time (sorted ascending). Callers must not mutate it.
type Table struct {
	Rows        []models.OrderItemRow
	Departments []string
	Categories  []string
	LoadedAt    time.Time
}

// Cache memoizes the loaded table. The join query takes no parameters, so
// there is a single cache slot. The mutex is held across the load, which
// gives at-most-one in-flight query when concurrent callers race on a cold
// cache; load failures are returned and never cached, so the next call
// retries.
type Cache struct {
	loader Loader

	mu         sync.Mutex
	table      *Table
	generation uint64
}

// NewCache creates a Cache around the given loader.
func NewCache(loader Loader) *Cache {
	return &Cache{loader: loader}
}

// Get returns the cached table, loading it first if necessary. The context
// applies to the underlying query.
func (c *Cache) Get(ctx context.Context) (*Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table != nil {
		return c.table, nil
	}

	rows, err := c.loader.LoadOrderItems(ctx)
	if err != nil {
		return nil, err
	}

	c.table = buildTable(rows)
	return c.table, nil
}

// Invalidate drops the cached table and bumps the generation counter so that
// downstream caches keyed on it roll over. The next Get re-queries.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table = nil
	c.generation++
}

// Generation returns the current invalidation generation.
func (c *Cache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// buildTable normalizes timestamps, derives the date fields and collects the
// categorical label domains.
func buildTable(rows []models.OrderItemRow) *Table {
	departments := make(map[string]struct{})
	categories := make(map[string]struct{})

	for i := range rows {
		ts := stripZone(rows[i].PaymentDate)
		rows[i].PaymentDate = ts
		rows[i].Year = ts.Year()
		rows[i].Month = int(ts.Month())
		rows[i].DayOfWeek = ts.Weekday().String()

		departments[rows[i].Department] = struct{}{}
		categories[rows[i].CategoryName] = struct{}{}
	}

	return &Table{
		Rows:        rows,
		Departments: sortedKeys(departments),
		Categories:  sortedKeys(categories),
		LoadedAt:    time.Now().UTC(),
	}
}

// stripZone discards the timezone offset while keeping the wall-clock time.
// Payment timestamps are assumed to already be in a single reference zone.
func stripZone(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
