package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/services"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/stores"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/pkg/response"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboard *services.DashboardService
	returns   *stores.ReturnStore
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *services.DashboardService, returns *stores.ReturnStore) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, returns: returns}
}

// Overview handles the home screen figures
// @Summary Dashboard
// @Description Counters and recent sales computed from the loaded stores
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	return response.Success(c, "Dashboard data retrieved successfully", h.dashboard.Overview())
}

// PendingReturns handles the pending return counter
// @Summary Pending returns count
// @Tags Returns
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /returns/pending-count [get]
func (h *DashboardHandler) PendingReturns(c *fiber.Ctx) error {
	return response.Success(c, "Pending returns counted", fiber.Map{
		"count": h.returns.PendingCount(),
	})
}
