package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/pkg/response"
)

// Locals keys set by RequireAuth
const (
	LocalUser   = "user"
	LocalUserID = "userID"
	LocalRole   = "role"
	LocalToken  = "token"
)

// Authenticator resolves a bearer token to the signed-in user
type Authenticator interface {
	Authenticate(token string) (*domain.User, error)
}

// Authorizer decides whether a user may perform an action on a module
type Authorizer interface {
	Allows(user *domain.User, module, action string) bool
}

// RequireAuth creates authentication middleware
func RequireAuth(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Get token from Authorization header
		token := BearerToken(c)
		if token == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 2. Validate against the current session
		user, err := auth.Authenticate(token)
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				return response.Unauthorized(c, "Session expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 3. Set user info in context
		c.Locals(LocalUser, user)
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalRole, string(user.Role))
		c.Locals(LocalToken, token)

		return c.Next()
	}
}

// RequirePermission creates authorization middleware for one module action.
// It must run after RequireAuth.
func RequirePermission(authz Authorizer, module, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}

		if !authz.Allows(user, module, action) {
			return response.Forbidden(c, "You don't have permission to "+action+" "+module)
		}

		return c.Next()
	}
}

// CurrentUser returns the user set by RequireAuth, or nil
func CurrentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(LocalUser).(*domain.User)
	return user
}

// BearerToken extracts the token from the Authorization header
func BearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
