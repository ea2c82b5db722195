package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/services"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/pkg/response"
)

// SyncHandler handles manual store refreshes
type SyncHandler struct {
	initializer *services.StoreInitializer
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(initializer *services.StoreInitializer) *SyncHandler {
	return &SyncHandler{initializer: initializer}
}

// Refresh handles reloading every store from the database
// @Summary Refresh stores
// @Description Reload every store. Failed stores are listed in the report and keep their previous records.
// @Tags Sync
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=services.Report}
// @Router /sync [post]
func (h *SyncHandler) Refresh(c *fiber.Ctx) error {
	report := h.initializer.Refresh(c.UserContext())
	if failed := report.Failed(); len(failed) > 0 {
		return response.Success(c, "Sync finished with failures", report)
	}
	return response.Success(c, "Sync finished", report)
}

// LastReport handles reading the report of the latest sign-in sync
// @Summary Last sync report
// @Tags Sync
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=services.Report}
// @Failure 404 {object} response.Response
// @Router /sync/report [get]
func (h *SyncHandler) LastReport(c *fiber.Ctx) error {
	report, ok := h.initializer.LastReport()
	if !ok {
		return response.NotFound(c, "No sync has run yet")
	}
	return response.Success(c, "Sync report retrieved successfully", report)
}
