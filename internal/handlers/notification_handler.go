package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ntalk/chatterline/backend/internal/repositories"
)

// NotificationHandler handles HTTP requests for the two unread queues
type NotificationHandler struct {
	notifications repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/users/:id/notifications", h.GetUnread)
	g.PUT("/users/:id/notifications/read", h.MarkAllRead)
}

func (h *NotificationHandler) GetUnread(c echo.Context) error {
	userID, err := pathID(c.Param("id"))
	if err != nil {
		return err
	}
	category, err := categoryParam(c.QueryParam("category"))
	if err != nil {
		return err
	}
	entries, err := h.notifications.Unread(userID, category)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID, err := pathID(c.Param("id"))
	if err != nil {
		return err
	}
	category, err := categoryParam(c.QueryParam("category"))
	if err != nil {
		return err
	}
	if err := h.notifications.MarkAllRead(userID, category); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func categoryParam(value string) (repositories.NotificationCategory, error) {
	switch repositories.NotificationCategory(value) {
	case repositories.CategoryGeneric, repositories.CategoryMessage:
		return repositories.NotificationCategory(value), nil
	case "":
		return repositories.CategoryGeneric, nil
	default:
		return "", echo.NewHTTPError(http.StatusBadRequest, "unknown notification category")
	}
}
