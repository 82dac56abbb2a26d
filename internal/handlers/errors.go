package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/ntalk/chatterline/backend/internal/repositories"
)

// httpError translates a repository outcome into an echo HTTP error. Soft
// no-ops (already friends/requested/liked/member) come back as 409 with the
// informational message; the presentation layer shows them as dialogs.
func httpError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, repositories.ErrInvalidInput),
		errors.Is(err, repositories.ErrEmptyContent),
		errors.Is(err, repositories.ErrFileTooLarge):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, repositories.ErrAlreadyFriends),
		errors.Is(err, repositories.ErrAlreadyRequested),
		errors.Is(err, repositories.ErrAlreadyLiked),
		errors.Is(err, repositories.ErrAlreadyMember),
		errors.Is(err, repositories.ErrAlreadyExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, repositories.ErrPermissionDenied):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// pathID parses a numeric path or query parameter.
func pathID(value string) (uint, error) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
