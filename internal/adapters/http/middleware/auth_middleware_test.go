package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
)

type stubAuth struct {
	token string
	user  domain.User
}

func (s stubAuth) Authenticate(token string) (*domain.User, error) {
	if token != s.token {
		return nil, domain.ErrUnauthorized
	}
	u := s.user
	return &u, nil
}

type stubAuthz map[string]bool

func (s stubAuthz) Allows(_ *domain.User, module, action string) bool {
	return s[module+"."+action]
}

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	auth := stubAuth{token: "good", user: domain.User{ID: "u1", Role: domain.RolePharmacist}}
	authz := stubAuthz{"inventory.view": true}

	api := app.Group("/api", RequireAuth(auth))
	api.Get("/inventory", RequirePermission(authz, domain.ModuleInventory, domain.ActionView), func(c *fiber.Ctx) error {
		return c.SendString(CurrentUser(c).ID)
	})
	api.Delete("/inventory", RequirePermission(authz, domain.ModuleInventory, domain.ActionDelete), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestRequireAuth(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/inventory", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/api/inventory", nil)
	req.Header.Set("Authorization", "Bearer bad")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/inventory", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequirePermission(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("DELETE", "/api/inventory", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
