package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
)

// Pinger checks a backing service
type Pinger func(ctx context.Context) error

// AuthStater exposes the workstation session state
type AuthStater interface {
	State() domain.AuthState
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db       Pinger
	sessions AuthStater
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db Pinger, sessions AuthStater) *HealthHandler {
	return &HealthHandler{db: db, sessions: sessions}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "🚀 Rx Nexus Pharmacy Hub API v1.0 is running",
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API and database health
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	// Check database
	dbStatus := "healthy"
	status := fiber.StatusOK
	if h.db == nil || h.db(c.UserContext()) != nil {
		dbStatus = "unhealthy"
		status = fiber.StatusServiceUnavailable
	}

	session := domain.Unauthenticated
	if h.sessions != nil {
		session = h.sessions.State()
	}

	return c.Status(status).JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"api":      "healthy",
			"database": dbStatus,
			"session":  session.String(),
		},
	})
}

// APIInfo handles API v1 info
// @Summary API v1 Info
// @Description Returns API v1 information
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Rx Nexus Pharmacy Hub API v1.0",
		"version": "1.0.0",
		"modules": domain.Modules,
	})
}
