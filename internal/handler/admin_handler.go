package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/riwisport/sales-dashboard/internal/service"
	"github.com/riwisport/sales-dashboard/internal/utils"
)

// AdminHandler exposes operational endpoints for the hosting environment.
type AdminHandler struct {
	dashboardService *service.DashboardService
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(dashboardService *service.DashboardService) *AdminHandler {
	return &AdminHandler{dashboardService: dashboardService}
}

// InvalidateCache drops the in-memory sales table so the next request
// re-queries the database. Failed loads are never cached, so invalidation is
// always safe to call.
func (h *AdminHandler) InvalidateCache(c *gin.Context) {
	h.dashboardService.Invalidate()
	utils.Success(c, 200, "Dataset cache invalidated", nil)
}
