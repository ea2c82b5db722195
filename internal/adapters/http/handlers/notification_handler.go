package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/stores"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/pkg/response"
)

// NotificationHandler handles in-app notifications
type NotificationHandler struct {
	notifications *stores.NotificationStore
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications *stores.NotificationStore) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles listing notifications, newest first
// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	return response.Success(c, "Notifications retrieved successfully", fiber.Map{
		"notifications": h.notifications.List(),
		"unread":        h.notifications.UnreadCount(),
	})
}

// Add handles adding a notification
// @Summary Add notification
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.Notification true "Notification"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /notifications [post]
func (h *NotificationHandler) Add(c *fiber.Ctx) error {
	var n domain.Notification
	if err := c.BodyParser(&n); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(n.Title) == "" {
		return response.BadRequest(c, "Title is required")
	}
	return response.Created(c, "Notification added", h.notifications.Add(n))
}

// MarkAsRead handles marking one notification read
// @Summary Mark notification read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	if !h.notifications.MarkAsRead(c.Params("id")) {
		return response.NotFound(c, "Notification not found")
	}
	return response.Success(c, "Notification marked as read", nil)
}

// MarkAllAsRead handles marking every notification read
// @Summary Mark all notifications read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications/read-all [post]
func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	h.notifications.MarkAllAsRead()
	return response.Success(c, "All notifications marked as read", nil)
}

// Remove handles deleting one notification
// @Summary Delete notification
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Remove(c *fiber.Ctx) error {
	if !h.notifications.Remove(c.Params("id")) {
		return response.NotFound(c, "Notification not found")
	}
	return response.Success(c, "Notification deleted", nil)
}

// Clear handles deleting every notification
// @Summary Clear notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications [delete]
func (h *NotificationHandler) Clear(c *fiber.Ctx) error {
	h.notifications.Clear()
	return response.Success(c, "Notifications cleared", nil)
}
