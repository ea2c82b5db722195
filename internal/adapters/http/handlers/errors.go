package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/pkg/response"
)

// storeError maps a store or service error to an HTTP response. what names
// the failed operation, e.g. "Failed to update customer".
func storeError(c *fiber.Ctx, err error, what string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Record not found")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrDuplicateEntry):
		return response.Conflict(c, "A record with the same key already exists")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to access this resource")
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, "Unauthorized")
	}

	log.Printf("❌ %s: %v", what, err)
	return response.InternalServerError(c, what)
}
