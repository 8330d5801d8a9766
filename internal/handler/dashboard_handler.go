package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/riwisport/sales-dashboard/internal/analytics"
	"github.com/riwisport/sales-dashboard/internal/service"
	"github.com/riwisport/sales-dashboard/internal/utils"
)

// DashboardHandler handles the dashboard HTTP endpoints.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// selectedDepartments parses the departments query parameter. An absent
// parameter returns nil (meaning "all departments"); a present but empty
// parameter returns an empty selection, which filters everything out.
func selectedDepartments(c *gin.Context) []string {
	raw, ok := c.GetQuery("departments")
	if !ok {
		return nil
	}
	selected := []string{}
	for _, d := range strings.Split(raw, ",") {
		if d = strings.TrimSpace(d); d != "" {
			selected = append(selected, d)
		}
	}
	return selected
}

// GetFilters returns the selectable department labels.
func (h *DashboardHandler) GetFilters(c *gin.Context) {
	departments, err := h.dashboardService.Departments(c.Request.Context())
	if err != nil {
		utils.Error(c, 503, "DATA_UNAVAILABLE", "Data could not be loaded")
		return
	}

	utils.Success(c, 200, "Filters retrieved successfully", gin.H{
		"departments": departments,
	})
}

// GetDashboard returns the full dashboard snapshot for the selection.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	snapshot, err := h.dashboardService.Snapshot(c.Request.Context(), selectedDepartments(c))
	if err != nil {
		utils.Error(c, 503, "DATA_UNAVAILABLE", "Data could not be loaded")
		return
	}

	utils.Success(c, 200, "Dashboard retrieved successfully", snapshot)
}

// GetKPIs returns the scalar KPIs for the selection.
func (h *DashboardHandler) GetKPIs(c *gin.Context) {
	kpis, err := h.dashboardService.KPIs(c.Request.Context(), selectedDepartments(c))
	if err != nil {
		utils.Error(c, 503, "DATA_UNAVAILABLE", "Data could not be loaded")
		return
	}

	utils.Success(c, 200, "KPIs retrieved successfully", kpis)
}

// GetTopCategories returns the top-N categories for the requested metric.
func (h *DashboardHandler) GetTopCategories(c *gin.Context) {
	metric, limit, ok := topParams(c)
	if !ok {
		return
	}

	rollup, err := h.dashboardService.TopCategories(c.Request.Context(), selectedDepartments(c), metric, limit)
	if err != nil {
		utils.Error(c, 503, "DATA_UNAVAILABLE", "Data could not be loaded")
		return
	}

	utils.Success(c, 200, "Top categories retrieved successfully", gin.H{
		"metric": metric,
		"groups": rollup,
	})
}

// GetTopProducts returns the top-N products for the requested metric.
func (h *DashboardHandler) GetTopProducts(c *gin.Context) {
	metric, limit, ok := topParams(c)
	if !ok {
		return
	}

	rollup, err := h.dashboardService.TopProducts(c.Request.Context(), selectedDepartments(c), metric, limit)
	if err != nil {
		utils.Error(c, 503, "DATA_UNAVAILABLE", "Data could not be loaded")
		return
	}

	utils.Success(c, 200, "Top products retrieved successfully", gin.H{
		"metric": metric,
		"groups": rollup,
	})
}

// GetDistribution returns raw subtotals, histogram bins and boxplot summaries.
func (h *DashboardHandler) GetDistribution(c *gin.Context) {
	dist, err := h.dashboardService.Distribution(c.Request.Context(), selectedDepartments(c))
	if err != nil {
		utils.Error(c, 503, "DATA_UNAVAILABLE", "Data could not be loaded")
		return
	}

	utils.Success(c, 200, "Distribution retrieved successfully", dist)
}

// GetHeatmap returns the city × category revenue pivot.
func (h *DashboardHandler) GetHeatmap(c *gin.Context) {
	matrix, err := h.dashboardService.Heatmap(c.Request.Context(), selectedDepartments(c))
	if err != nil {
		utils.Error(c, 503, "DATA_UNAVAILABLE", "Data could not be loaded")
		return
	}

	utils.Success(c, 200, "Heatmap retrieved successfully", matrix)
}

// GetTrend returns the monthly revenue trend.
func (h *DashboardHandler) GetTrend(c *gin.Context) {
	trend, err := h.dashboardService.MonthlyTrend(c.Request.Context(), selectedDepartments(c))
	if err != nil {
		utils.Error(c, 503, "DATA_UNAVAILABLE", "Data could not be loaded")
		return
	}

	utils.Success(c, 200, "Trend retrieved successfully", gin.H{
		"months": trend,
	})
}

// topParams parses and validates the metric and limit query parameters,
// writing the error response itself when validation fails.
func topParams(c *gin.Context) (analytics.Metric, int, bool) {
	metric, err := analytics.ParseMetric(c.Query("metric"))
	if err != nil {
		utils.Error(c, 400, "INVALID_METRIC", "metric must be 'revenue' or 'quantity'")
		return "", 0, false
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			utils.Error(c, 400, "INVALID_LIMIT", "limit must be a positive integer")
			return "", 0, false
		}
		limit = n
	}
	return metric, limit, true
}
