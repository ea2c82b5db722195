package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/stores"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/pkg/response"
)

// InventoryHandler handles the derived inventory endpoints
type InventoryHandler struct {
	inventory  *stores.InventoryStore
	expiryDays int
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventory *stores.InventoryStore, expiryDays int) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, expiryDays: expiryDays}
}

// NameRequest represents a request carrying a single name
type NameRequest struct {
	Name string `json:"name"`
}

// LowStock handles listing items at or below their reorder level
// @Summary Low stock items
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	return response.Success(c, "Low stock items retrieved successfully", h.inventory.LowStock())
}

// Expiring handles listing items expiring within ?days=
// @Summary Expiring items
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window in days" default(30)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /inventory/expiring [get]
func (h *InventoryHandler) Expiring(c *fiber.Ctx) error {
	days := h.expiryDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return response.BadRequest(c, "days must be a non-negative number")
		}
		days = n
	}
	return response.Success(c, "Expiring items retrieved successfully", h.inventory.ExpiringWithin(days, time.Now()))
}

// Categories handles listing medicine categories
// @Summary List categories
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /inventory/categories [get]
func (h *InventoryHandler) Categories(c *fiber.Ctx) error {
	return response.Success(c, "Categories retrieved successfully", h.inventory.Categories())
}

// AddCategory handles adding a medicine category
// @Summary Add category
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body NameRequest true "Category"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /inventory/categories [post]
func (h *InventoryHandler) AddCategory(c *fiber.Ctx) error {
	return h.addName(c, "Category", h.inventory.AddCategory, h.inventory.Categories)
}

// Manufacturers handles listing manufacturers
// @Summary List manufacturers
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /inventory/manufacturers [get]
func (h *InventoryHandler) Manufacturers(c *fiber.Ctx) error {
	return response.Success(c, "Manufacturers retrieved successfully", h.inventory.Manufacturers())
}

// AddManufacturer handles adding a manufacturer
// @Summary Add manufacturer
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body NameRequest true "Manufacturer"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /inventory/manufacturers [post]
func (h *InventoryHandler) AddManufacturer(c *fiber.Ctx) error {
	return h.addName(c, "Manufacturer", h.inventory.AddManufacturer, h.inventory.Manufacturers)
}

func (h *InventoryHandler) addName(c *fiber.Ctx, label string, add func(string) bool, list func() []string) error {
	var req NameRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return response.BadRequest(c, label+" name is required")
	}
	if !add(name) {
		return response.Conflict(c, label+" already exists")
	}
	return response.Created(c, label+" added successfully", list())
}
