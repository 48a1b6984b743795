package handler

import (
	"github.com/gin-gonic/gin"

	"smart-rw-svc/internal/middleware"
	"smart-rw-svc/internal/service"
	"smart-rw-svc/pkg/logger"
	"smart-rw-svc/pkg/utils"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService service.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetStatistics handles GET /api/v1/dashboard/statistics
// @Summary Dashboard statistics
// @Description Aggregate counts scoped to the actor's territory
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param rt_number query string false "RT number (ADMIN only)"
// @Param rw_number query string false "RW number (ADMIN only)"
// @Success 200 {object} utils.APIResponse{data=repository.DashboardStatistics} "Statistics retrieved"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Router /api/v1/dashboard/statistics [get]
func (h *DashboardHandler) GetStatistics(c *gin.Context) {
	stats, err := h.dashboardService.GetStatistics(
		middleware.ActorFromContext(c),
		c.Query("rt_number"),
		c.Query("rw_number"),
	)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Statistics retrieved successfully", stats)
}
