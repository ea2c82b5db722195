package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/adapters/http/middleware"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/services"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/pkg/response"
)

// SessionAuthority is the part of the session manager the auth endpoints use
type SessionAuthority interface {
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Logout(ctx context.Context)
	Session() *domain.Session
}

// AuthHandler handles workstation sign-in
type AuthHandler struct {
	sessions SessionAuthority
	perms    middleware.Authorizer
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions SessionAuthority, perms middleware.Authorizer) *AuthHandler {
	return &AuthHandler{sessions: sessions, perms: perms}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email" example:"pharmacist@rxnexus.com"`
	Password string `json:"password" example:"password123"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *domain.User `json:"user"`
}

// MeResponse represents the signed-in user with their permissions
type MeResponse struct {
	User        *domain.User  `json:"user"`
	Permissions domain.Matrix `json:"permissions"`
}

// Login handles staff login
// @Summary Staff login
// @Description Sign in at this workstation. Signing in replaces the current operator.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} response.Response{data=LoginResponse}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.sessions.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return response.ServiceUnavailable(c, "Authentication service unavailable")
	}
	if !result.Success {
		if result.Error == services.MsgMissingCredentials {
			return response.BadRequest(c, result.Error)
		}
		return response.Unauthorized(c, result.Error)
	}

	session := h.sessions.Session()
	if session == nil {
		// Replaced by another login before we could read it
		return response.Unauthorized(c, services.MsgLoginCancelled)
	}
	return response.Success(c, "Login successful", LoginResponse{
		AccessToken: session.Token,
		TokenType:   "Bearer",
		ExpiresAt:   session.ExpiresAt,
		User:        result.User,
	})
}

// Logout handles staff logout
// @Summary Staff logout
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Logout(c.UserContext())
	return response.Success(c, "Logout successful", nil)
}

// Me handles reading the signed-in user
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=MeResponse}
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	matrix := make(domain.Matrix, len(domain.Modules))
	for _, module := range domain.Modules {
		matrix[module] = make(map[string]bool, len(domain.Actions))
		for _, action := range domain.Actions {
			matrix[module][action] = h.perms.Allows(user, module, action)
		}
	}
	return response.Success(c, "User retrieved successfully", MeResponse{User: user, Permissions: matrix})
}
