package handlers

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/pkg/pagination"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/pkg/response"
)

// RecordStore is the part of a domain store the CRUD endpoints use
type RecordStore[T any, K comparable] interface {
	All() []T
	GetByID(id K) (T, bool)
	Create(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, record T) (T, error)
	Delete(ctx context.Context, id K) error
}

// StoreHandler serves list/get/create/update/delete for one store
type StoreHandler[T any, K comparable] struct {
	store   RecordStore[T, K]
	label   string
	parseID func(string) (K, error)
	setID   func(T, K) T
	match   func(T, string) bool
}

// NewStoreHandler creates a CRUD handler. label is the singular record name
// used in messages; match filters the list by the q query parameter.
func NewStoreHandler[T any, K comparable](
	store RecordStore[T, K],
	label string,
	parseID func(string) (K, error),
	setID func(T, K) T,
	match func(T, string) bool,
) *StoreHandler[T, K] {
	return &StoreHandler[T, K]{
		store:   store,
		label:   label,
		parseID: parseID,
		setID:   setID,
		match:   match,
	}
}

// List returns the records, newest first, optionally filtered by q
func (h *StoreHandler[T, K]) List(c *fiber.Ctx) error {
	records := h.store.All()

	if q := strings.TrimSpace(c.Query("q")); q != "" && h.match != nil {
		filtered := make([]T, 0, len(records))
		for _, r := range records {
			if h.match(r, q) {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	return response.Success(c, h.label+" list retrieved successfully", pagination.Page(records, pagination.GetParams(c)))
}

// Get returns one record from the store
func (h *StoreHandler[T, K]) Get(c *fiber.Ctx) error {
	id, err := h.parseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid "+h.label+" ID")
	}

	record, ok := h.store.GetByID(id)
	if !ok {
		return response.NotFound(c, h.label+" not found")
	}
	return response.Success(c, h.label+" retrieved successfully", record)
}

// Create writes a new record through the store
func (h *StoreHandler[T, K]) Create(c *fiber.Ctx) error {
	var record T
	if err := c.BodyParser(&record); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	saved, err := h.store.Create(c.UserContext(), record)
	if err != nil {
		return storeError(c, err, "Failed to create "+h.label)
	}
	return response.Created(c, h.label+" created successfully", saved)
}

// Update merges the request body onto the stored record and writes it
// through the store. The body is decoded with encoding/json directly so
// fields it omits keep their stored values.
func (h *StoreHandler[T, K]) Update(c *fiber.Ctx) error {
	id, err := h.parseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid "+h.label+" ID")
	}

	record, _ := h.store.GetByID(id)
	if err := json.Unmarshal(c.Body(), &record); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	record = h.setID(record, id)

	saved, err := h.store.Update(c.UserContext(), record)
	if err != nil {
		return storeError(c, err, "Failed to update "+h.label)
	}
	return response.Success(c, h.label+" updated successfully", saved)
}

// Delete removes a record through the store
func (h *StoreHandler[T, K]) Delete(c *fiber.Ctx) error {
	id, err := h.parseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid "+h.label+" ID")
	}

	if err := h.store.Delete(c.UserContext(), id); err != nil {
		return storeError(c, err, "Failed to delete "+h.label)
	}
	return response.Success(c, h.label+" deleted successfully", nil)
}

// ParseInt64ID parses a numeric path id
func ParseInt64ID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// ParseStringID accepts any non-empty path id. The result is copied out of
// the request buffer since it can end up stored.
func ParseStringID(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", strconv.ErrSyntax
	}
	return utils.CopyString(s), nil
}

// containsFold reports whether any field contains q, ignoring case
func containsFold(q string, fields ...string) bool {
	q = strings.ToLower(q)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
