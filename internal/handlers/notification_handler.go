package handlers

import (
	"net/http"

	"github.com/anonto42/nano-link/backend/internal/middleware"
	"github.com/anonto42/nano-link/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.POST("/notifications", h.MarkAllAsRead)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.POST("/notifications/:id/read", h.MarkAsRead)
}

// GetNotifications returns the caller's latest notifications
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	session := middleware.CurrentSession(c)

	notifications, err := h.notifications.List(c.Request().Context(), session.UserID)
	if err != nil {
		return serviceError(c, err, "Failed to fetch notifications")
	}
	return c.JSON(http.StatusOK, echo.Map{"notifications": notifications})
}

// GetUnreadCount returns how many of the caller's notifications are unread
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	session := middleware.CurrentSession(c)

	count, err := h.notifications.UnreadCount(c.Request().Context(), session.UserID)
	if err != nil {
		return serviceError(c, err, "Failed to fetch notifications")
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// MarkAsRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	session := middleware.CurrentSession(c)

	if err := h.notifications.MarkRead(c.Request().Context(), c.Param("id"), session.UserID); err != nil {
		return serviceError(c, err, "Failed to mark notification as read")
	}
	return success(c, http.StatusOK)
}

// MarkAllAsRead marks every notification of the caller as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	session := middleware.CurrentSession(c)

	if _, err := h.notifications.MarkAllRead(c.Request().Context(), session.UserID); err != nil {
		return serviceError(c, err, "Failed to mark notifications as read")
	}
	return success(c, http.StatusOK)
}
