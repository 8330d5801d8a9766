package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/riwisport/sales-dashboard/internal/analytics"
	"github.com/riwisport/sales-dashboard/internal/cache"
	"github.com/riwisport/sales-dashboard/internal/config"
	"github.com/riwisport/sales-dashboard/internal/dataset"
	"github.com/riwisport/sales-dashboard/internal/models"
)

// DashboardService composes the dashboard payloads from the cached sales
// table. All heavy lifting happens in the analytics package; this layer
// resolves the department selection, wires the dataset cache and handles
// snapshot caching.
type DashboardService struct {
	data      *dataset.Cache
	snapshots *cache.SnapshotCache // nil disables snapshot caching
	topN      int
	bins      int
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(data *dataset.Cache, snapshots *cache.SnapshotCache, cfg *config.DashboardConfig) *DashboardService {
	return &DashboardService{
		data:      data,
		snapshots: snapshots,
		topN:      cfg.TopN,
		bins:      cfg.HistogramBins,
	}
}

// Departments returns the selectable department labels.
func (s *DashboardService) Departments(ctx context.Context) ([]string, error) {
	table, err := s.data.Get(ctx)
	if err != nil {
		return nil, err
	}
	return table.Departments, nil
}

// Invalidate drops the cached dataset; the next request re-queries.
func (s *DashboardService) Invalidate() {
	s.data.Invalidate()
}

// view loads the table and applies the department filter. A nil selection
// means "all departments" (the dashboard's initial state); an explicit empty
// selection yields an empty view.
func (s *DashboardService) view(ctx context.Context, departments []string) ([]models.OrderItemRow, []string, *dataset.Table, error) {
	table, err := s.data.Get(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	selected := departments
	if selected == nil {
		selected = table.Departments
	}
	return analytics.Filter(table.Rows, selected), selected, table, nil
}

// KPIs computes the scalar KPIs for a selection.
func (s *DashboardService) KPIs(ctx context.Context, departments []string) (models.KPISummary, error) {
	view, _, _, err := s.view(ctx, departments)
	if err != nil {
		return models.KPISummary{}, err
	}
	return analytics.Summarize(view), nil
}

// TopCategories returns the top-N category rollup for the given metric.
// A non-positive limit falls back to the configured default.
func (s *DashboardService) TopCategories(ctx context.Context, departments []string, metric analytics.Metric, limit int) ([]models.RollupRow, error) {
	view, _, _, err := s.view(ctx, departments)
	if err != nil {
		return nil, err
	}
	return analytics.TopN(analytics.RollupByCategory(view), metric, s.limitOrDefault(limit)), nil
}

// TopProducts returns the top-N product rollup for the given metric.
func (s *DashboardService) TopProducts(ctx context.Context, departments []string, metric analytics.Metric, limit int) ([]models.RollupRow, error) {
	view, _, _, err := s.view(ctx, departments)
	if err != nil {
		return nil, err
	}
	return analytics.TopN(analytics.RollupByProduct(view), metric, s.limitOrDefault(limit)), nil
}

// Distribution returns the raw subtotal sequence plus histogram bins and
// per-category boxplot summaries.
func (s *DashboardService) Distribution(ctx context.Context, departments []string) (models.Distribution, error) {
	view, _, _, err := s.view(ctx, departments)
	if err != nil {
		return models.Distribution{}, err
	}
	return s.distribution(view), nil
}

// Heatmap returns the city × category revenue pivot. The engine computes it
// for any selection; display gating on selection size belongs to the caller.
func (s *DashboardService) Heatmap(ctx context.Context, departments []string) (models.PivotMatrix, error) {
	view, _, _, err := s.view(ctx, departments)
	if err != nil {
		return models.PivotMatrix{}, err
	}
	return analytics.PivotCityCategory(view), nil
}

// MonthlyTrend returns revenue and order counts per calendar month.
func (s *DashboardService) MonthlyTrend(ctx context.Context, departments []string) ([]models.MonthlyRevenue, error) {
	view, _, _, err := s.view(ctx, departments)
	if err != nil {
		return nil, err
	}
	return analytics.RevenueByMonth(view), nil
}

// Snapshot composes the full dashboard payload for a selection, consulting
// the snapshot cache first when one is configured. The heatmap is included
// only when more than one department is selected, matching the dashboard's
// chart-gating rule.
func (s *DashboardService) Snapshot(ctx context.Context, departments []string) (*models.DashboardSnapshot, error) {
	view, selected, table, err := s.view(ctx, departments)
	if err != nil {
		return nil, err
	}

	generation := s.data.Generation()
	if s.snapshots != nil {
		if snap, ok := s.snapshots.Get(ctx, generation, selected); ok {
			return snap, nil
		}
	}

	categoryRollup := analytics.RollupByCategory(view)
	productRollup := analytics.RollupByProduct(view)

	snap := &models.DashboardSnapshot{
		Departments:             table.Departments,
		Selected:                selected,
		KPIs:                    analytics.Summarize(view),
		TopCategoriesByRevenue:  analytics.TopN(categoryRollup, analytics.MetricRevenue, s.topN),
		TopCategoriesByQuantity: analytics.TopN(categoryRollup, analytics.MetricQuantity, s.topN),
		TopProductsByRevenue:    analytics.TopN(productRollup, analytics.MetricRevenue, s.topN),
		TopProductsByQuantity:   analytics.TopN(productRollup, analytics.MetricQuantity, s.topN),
		Distribution:            s.distribution(view),
		MonthlyTrend:            analytics.RevenueByMonth(view),
		GeneratedAt:             time.Now().UTC(),
	}
	if len(selected) > 1 {
		heatmap := analytics.PivotCityCategory(view)
		snap.Heatmap = &heatmap
	}

	if s.snapshots != nil {
		if err := s.snapshots.Set(ctx, generation, selected, snap); err != nil {
			log.Warn().Err(err).Msg("snapshot cache write failed")
		}
	}
	return snap, nil
}

func (s *DashboardService) distribution(view []models.OrderItemRow) models.Distribution {
	values := analytics.SubtotalValues(view)
	return models.Distribution{
		Values:        values,
		Bins:          analytics.HistogramOf(values, s.bins),
		GroupedValues: analytics.SubtotalsByCategory(view),
		Boxplots:      analytics.BoxplotByCategory(view),
	}
}

func (s *DashboardService) limitOrDefault(limit int) int {
	if limit <= 0 {
		return s.topN
	}
	return limit
}
