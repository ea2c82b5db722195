package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/services"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/stores"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/pkg/response"
)

// SalesHandler handles recording sales and the sales figures
type SalesHandler struct {
	sales     *stores.SaleStore
	inventory *stores.InventoryStore
	dashboard *services.DashboardService
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(sales *stores.SaleStore, inventory *stores.InventoryStore, dashboard *services.DashboardService) *SalesHandler {
	return &SalesHandler{sales: sales, inventory: inventory, dashboard: dashboard}
}

// Create handles recording a sale and taking the sold items out of stock
// @Summary Record sale
// @Description Records a sale, then decrements stock for every sold line
// @Tags Sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.Sale true "Sale"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /sales [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var sale domain.Sale
	if err := c.BodyParser(&sale); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if len(sale.Items) == 0 {
		return response.BadRequest(c, "A sale needs at least one item")
	}

	// 1. Record the sale
	saved, err := h.sales.Create(c.UserContext(), sale)
	if err != nil {
		return storeError(c, err, "Failed to record sale")
	}

	// 2. Update stock; the sale stands even if some items fail
	updated, err := h.inventory.ApplySale(c.UserContext(), saved.Items)
	if err != nil {
		log.Printf("⚠️ Sale %s recorded but stock update failed: %v", saved.ID, err)
		return response.Created(c, "Sale recorded, but some stock levels could not be updated", fiber.Map{
			"sale":      saved,
			"inventory": updated,
		})
	}

	return response.Created(c, "Sale recorded successfully", fiber.Map{
		"sale":      saved,
		"inventory": updated,
	})
}

// Stats handles the sales figures
// @Summary Sales statistics
// @Tags Sales
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /sales/stats [get]
func (h *SalesHandler) Stats(c *fiber.Ctx) error {
	return response.Success(c, "Sales statistics retrieved successfully", h.dashboard.SalesStats())
}
