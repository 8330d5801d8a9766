package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/riwisport/sales-dashboard/internal/repository"
	"github.com/riwisport/sales-dashboard/internal/utils"
)

var startTime = time.Now()

// HealthHandler provides health endpoint.
type HealthHandler struct {
	salesRepo *repository.SalesRepository
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(salesRepo *repository.SalesRepository) *HealthHandler {
	return &HealthHandler{salesRepo: salesRepo}
}

// GetHealth responds with service and database status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "connected"
	if err := h.salesRepo.Ping(ctx); err != nil {
		dbStatus = "disconnected"
	}

	utils.Success(c, 200, "Service is healthy", gin.H{
		"status":  "healthy",
		"version": "1.0.0",
		"uptime":  int(time.Since(startTime).Seconds()),
		"database": gin.H{
			"status": dbStatus,
		},
	})
}
