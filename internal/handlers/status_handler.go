package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ntalk/chatterline/backend/internal/models"
	"github.com/ntalk/chatterline/backend/internal/repositories"
)

// StatusHandler handles HTTP requests for ephemeral status posts
type StatusHandler struct {
	statuses repositories.StatusRepository
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(statuses repositories.StatusRepository) *StatusHandler {
	return &StatusHandler{statuses: statuses}
}

// RegisterStatusRoutes registers status-related routes
func (h *StatusHandler) RegisterStatusRoutes(g *echo.Group) {
	g.POST("/statuses", h.PostStatus)
	g.GET("/users/:id/statuses/feed", h.GetFeed)
	g.POST("/statuses/:id/likes", h.LikeStatus)
	g.POST("/statuses/:id/views", h.TrackView)
	g.GET("/statuses/:id/likes", h.GetLikers)
	g.GET("/statuses/:id/views", h.GetViewers)
	g.DELETE("/statuses/:id", h.DeleteStatus)
}

func (h *StatusHandler) PostStatus(c echo.Context) error {
	var req models.PostStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	status, err := h.statuses.Post(req.UserID, req.Content)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, status)
}

// GetFeed returns unexpired statuses posted by the user or their friends
func (h *StatusHandler) GetFeed(c echo.Context) error {
	userID, err := pathID(c.Param("id"))
	if err != nil {
		return err
	}
	feed, err := h.statuses.VisibleStatuses(userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, feed)
}

func (h *StatusHandler) LikeStatus(c echo.Context) error {
	statusID, err := pathID(c.Param("id"))
	if err != nil {
		return err
	}
	var req models.StatusReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.statuses.Like(statusID, req.UserID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Status liked!"})
}

func (h *StatusHandler) TrackView(c echo.Context) error {
	statusID, err := pathID(c.Param("id"))
	if err != nil {
		return err
	}
	var req models.StatusReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.statuses.TrackView(statusID, req.UserID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *StatusHandler) GetLikers(c echo.Context) error {
	statusID, err := pathID(c.Param("id"))
	if err != nil {
		return err
	}
	names, err := h.statuses.Likers(statusID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, names)
}

func (h *StatusHandler) GetViewers(c echo.Context) error {
	statusID, err := pathID(c.Param("id"))
	if err != nil {
		return err
	}
	names, err := h.statuses.Viewers(statusID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, names)
}

// DeleteStatus removes the caller's own status. Deleting someone else's
// status is a silent no-op, so this always reports success.
func (h *StatusHandler) DeleteStatus(c echo.Context) error {
	statusID, err := pathID(c.Param("id"))
	if err != nil {
		return err
	}
	ownerID, err := pathID(c.QueryParam("owner_id"))
	if err != nil {
		return err
	}
	if err := h.statuses.Delete(ownerID, statusID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
