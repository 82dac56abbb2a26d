package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ntalk/chatterline/backend/internal/models"
	"github.com/ntalk/chatterline/backend/internal/repositories"
)

// FriendshipHandler handles HTTP requests related to friendships
type FriendshipHandler struct {
	friendships repositories.FriendshipRepository
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(friendships repositories.FriendshipRepository) *FriendshipHandler {
	return &FriendshipHandler{friendships: friendships}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/users/:id/friend-requests", h.SendFriendRequest)
	g.GET("/users/:id/friend-requests/pending", h.GetPendingFriendRequests)
	g.PUT("/friend-requests/:id", h.RespondToFriendRequest)
	g.GET("/users/:id/friends", h.GetFriends)
}

// SendFriendRequest handles sending a friend request by receiver name
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	senderID, err := pathID(c.Param("id"))
	if err != nil {
		return err
	}
	var req models.SendFriendRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	request, err := h.friendships.RequestFriendship(senderID, req.FriendName)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, request)
}

// GetPendingFriendRequests lists pending requests addressed to the user
func (h *FriendshipHandler) GetPendingFriendRequests(c echo.Context) error {
	userID, err := pathID(c.Param("id"))
	if err != nil {
		return err
	}
	requests, err := h.friendships.PendingRequests(userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, requests)
}

// RespondToFriendRequest accepts or rejects a pending friend request
func (h *FriendshipHandler) RespondToFriendRequest(c echo.Context) error {
	requestID, err := pathID(c.Param("id"))
	if err != nil {
		return err
	}
	var req models.RespondFriendRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.friendships.Respond(requestID, *req.Accept); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Friend request updated"})
}

// GetFriends lists the user's friends via the friendship edges
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	userID, err := pathID(c.Param("id"))
	if err != nil {
		return err
	}
	friends, err := h.friendships.Friends(userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, friends)
}
