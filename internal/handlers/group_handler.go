package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ntalk/chatterline/backend/internal/models"
	"github.com/ntalk/chatterline/backend/internal/repositories"
)

// GroupHandler handles HTTP requests related to chat groups
type GroupHandler struct {
	groups repositories.GroupRepository
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groups repositories.GroupRepository) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// RegisterGroupRoutes registers group-related routes
func (h *GroupHandler) RegisterGroupRoutes(g *echo.Group) {
	g.POST("/groups", h.CreateGroup)
	g.POST("/groups/:id/members", h.AddMember)
	g.GET("/users/:id/groups", h.GetGroupsForUser)
	g.GET("/groups/:id/members", h.GetMembers)
	g.GET("/groups/:id/creator", h.GetCreator)
}

func (h *GroupHandler) CreateGroup(c echo.Context) error {
	var req models.CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	group, err := h.groups.CreateGroup(req.CreatorID, req.Name, req.MemberIDs)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, group)
}

func (h *GroupHandler) AddMember(c echo.Context) error {
	groupID, err := pathID(c.Param("id"))
	if err != nil {
		return err
	}
	var req models.AddMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.groups.AddMember(groupID, req.RequesterID, req.FriendID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Member added"})
}

func (h *GroupHandler) GetGroupsForUser(c echo.Context) error {
	userID, err := pathID(c.Param("id"))
	if err != nil {
		return err
	}
	groups, err := h.groups.GroupsForUser(userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, groups)
}

func (h *GroupHandler) GetMembers(c echo.Context) error {
	groupID, err := pathID(c.Param("id"))
	if err != nil {
		return err
	}
	members, err := h.groups.Members(groupID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, members)
}

func (h *GroupHandler) GetCreator(c echo.Context) error {
	groupID, err := pathID(c.Param("id"))
	if err != nil {
		return err
	}
	creator, err := h.groups.Creator(groupID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, creator)
}
