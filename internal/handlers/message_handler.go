package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ntalk/chatterline/backend/internal/models"
	"github.com/ntalk/chatterline/backend/internal/repositories"
)

// MessageHandler handles HTTP requests for direct and group messaging
type MessageHandler struct {
	messages    repositories.MessageRepository
	friendships repositories.FriendshipRepository
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messages repositories.MessageRepository, friendships repositories.FriendshipRepository) *MessageHandler {
	return &MessageHandler{messages: messages, friendships: friendships}
}

// requireFriendship gates direct messaging on an existing friendship edge,
// matching the client where a chat only opens from the friends list.
func (h *MessageHandler) requireFriendship(senderID, receiverID uint) error {
	ok, err := h.friendships.AreFriends(senderID, receiverID)
	if err != nil {
		return httpError(err)
	}
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "users are not friends")
	}
	return nil
}

// RegisterMessageRoutes registers messaging routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendDirect)
	g.POST("/messages/file", h.SendFile)
	g.POST("/groups/:id/messages", h.SendGroupMessage)
	g.GET("/messages/history", h.GetHistory)
	g.GET("/groups/:id/messages", h.GetGroupHistory)
	g.GET("/messages/latest", h.PollLatest)
}

func (h *MessageHandler) SendDirect(c echo.Context) error {
	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.requireFriendship(req.SenderID, req.ReceiverID); err != nil {
		return err
	}

	message, err := h.messages.SendDirect(req.SenderID, req.ReceiverID, req.Content)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, message)
}

func (h *MessageHandler) SendFile(c echo.Context) error {
	var req models.SendFileMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.requireFriendship(req.SenderID, req.ReceiverID); err != nil {
		return err
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "File data is not valid base64")
	}

	message, err := h.messages.SendFile(req.SenderID, req.ReceiverID, data, req.Kind, req.FileName)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, message)
}

func (h *MessageHandler) SendGroupMessage(c echo.Context) error {
	groupID, err := pathID(c.Param("id"))
	if err != nil {
		return err
	}
	var req models.SendGroupMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message, err := h.messages.SendGroupMessage(req.SenderID, groupID, req.Content)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, message)
}

func (h *MessageHandler) GetHistory(c echo.Context) error {
	userA, err := pathID(c.QueryParam("user_a"))
	if err != nil {
		return err
	}
	userB, err := pathID(c.QueryParam("user_b"))
	if err != nil {
		return err
	}
	history, err := h.messages.History(userA, userB)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, history)
}

func (h *MessageHandler) GetGroupHistory(c echo.Context) error {
	groupID, err := pathID(c.Param("id"))
	if err != nil {
		return err
	}
	history, err := h.messages.GroupHistory(groupID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, history)
}

func (h *MessageHandler) PollLatest(c echo.Context) error {
	userID, err := pathID(c.QueryParam("user_id"))
	if err != nil {
		return err
	}
	peerID, err := pathID(c.QueryParam("peer_id"))
	if err != nil {
		return err
	}
	latest, err := h.messages.PollLatest(userID, peerID)
	if err != nil {
		return httpError(err)
	}
	if latest == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, latest)
}
