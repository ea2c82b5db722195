package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/stores"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/pkg/response"
)

// UserHandler handles roles and per-user permission overrides
type UserHandler struct {
	users *stores.UserStore
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *stores.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// RoleResponse represents one role and its default matrix
type RoleResponse struct {
	Role   domain.Role   `json:"role"`
	Matrix domain.Matrix `json:"matrix"`
}

// PermissionsResponse represents a user's override state
type PermissionsResponse struct {
	UserID string        `json:"user_id"`
	Custom bool          `json:"custom"`
	Matrix domain.Matrix `json:"matrix"`
}

// Roles handles listing roles with their default matrices
// @Summary List roles
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users/roles [get]
func (h *UserHandler) Roles(c *fiber.Ctx) error {
	roles := h.users.AvailableRoles()
	out := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		m, _ := h.users.RoleMatrix(role)
		out = append(out, RoleResponse{Role: role, Matrix: m.Complete()})
	}
	return response.Success(c, "Roles retrieved successfully", out)
}

// GetPermissions handles reading a user's override, or the role default when
// none is set
// @Summary Get user permissions
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id}/permissions [get]
func (h *UserHandler) GetPermissions(c *fiber.Ctx) error {
	id := utils.CopyString(c.Params("id"))
	user, ok := h.users.GetByID(id)
	if !ok {
		return response.NotFound(c, "User not found")
	}

	if m, ok := h.users.CustomPermissions(id); ok {
		return response.Success(c, "Permissions retrieved successfully", PermissionsResponse{UserID: id, Custom: true, Matrix: m})
	}
	m, _ := h.users.RoleMatrix(user.Role)
	return response.Success(c, "Permissions retrieved successfully", PermissionsResponse{UserID: id, Matrix: m.Complete()})
}

// SetPermissions handles replacing a user's override
// @Summary Set user permissions
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body domain.Matrix true "Module -> action -> allowed"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id}/permissions [put]
func (h *UserHandler) SetPermissions(c *fiber.Ctx) error {
	id := utils.CopyString(c.Params("id"))
	var matrix domain.Matrix
	if err := c.BodyParser(&matrix); err != nil || matrix == nil {
		return response.BadRequest(c, "Invalid permission matrix")
	}

	if err := h.users.SetCustomPermissions(c.UserContext(), id, matrix); err != nil {
		return storeError(c, err, "Failed to save permissions")
	}
	m, _ := h.users.CustomPermissions(id)
	return response.Success(c, "Permissions saved successfully", PermissionsResponse{UserID: id, Custom: true, Matrix: m})
}

// ClearPermissions handles removing a user's override
// @Summary Clear user permissions
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Router /users/{id}/permissions [delete]
func (h *UserHandler) ClearPermissions(c *fiber.Ctx) error {
	if err := h.users.ClearCustomPermissions(c.UserContext(), utils.CopyString(c.Params("id"))); err != nil {
		return storeError(c, err, "Failed to clear permissions")
	}
	return response.Success(c, "Permissions reset to role default", nil)
}
