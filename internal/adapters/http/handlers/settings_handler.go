package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/stores"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/pkg/response"
)

// SettingsHandler handles the workstation settings
type SettingsHandler struct {
	settings *stores.SettingsStore
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settings *stores.SettingsStore) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get handles reading all settings
// @Summary Get settings
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	return response.Success(c, "Settings retrieved successfully", h.settings.Get())
}

// UpdateGeneral handles a partial update of the pharmacy details
// @Summary Update general settings
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body stores.GeneralSettings true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /settings/general [put]
func (h *SettingsHandler) UpdateGeneral(c *fiber.Ctx) error {
	updated, err := h.settings.UpdateGeneral(c.Body())
	if err != nil {
		return storeError(c, err, "Failed to update settings")
	}
	return response.Success(c, "General settings updated", updated)
}

// UpdateNotifications handles a partial update of the alert toggles
// @Summary Update notification settings
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body stores.NotificationSettings true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /settings/notifications [put]
func (h *SettingsHandler) UpdateNotifications(c *fiber.Ctx) error {
	updated, err := h.settings.UpdateNotifications(c.Body())
	if err != nil {
		return storeError(c, err, "Failed to update settings")
	}
	return response.Success(c, "Notification settings updated", updated)
}

// UpdateProfile handles a partial update of the workstation preferences
// @Summary Update profile settings
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body stores.ProfileSettings true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /settings/profile [put]
func (h *SettingsHandler) UpdateProfile(c *fiber.Ctx) error {
	updated, err := h.settings.UpdateProfile(c.Body())
	if err != nil {
		return storeError(c, err, "Failed to update settings")
	}
	return response.Success(c, "Profile settings updated", updated)
}
