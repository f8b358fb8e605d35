package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/staffroom/attendance-system/internal/core/domain"
)

// failResponse is the canonical failure envelope: {"status":"fail","message":...}.
type failResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the consistent JSON envelope shared with success responses.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, failResponse{Status: "fail", Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	// Auth failures.
	case errors.Is(err, domain.ErrMissingToken),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken),
		errors.Is(err, domain.ErrStalePassword),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, err.Error()
	// A valid token whose identity has been deleted reads as a missing user.
	case errors.Is(err, domain.ErrIdentityGone):
		return http.StatusNotFound, err.Error()

	// Role-gate rejections.
	case errors.Is(err, domain.ErrNotStaff),
		errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, err.Error()

	// Absent entities.
	case errors.Is(err, domain.ErrEmployeeNotFound),
		errors.Is(err, domain.ErrTeamNotFound),
		errors.Is(err, domain.ErrNoTeams),
		errors.Is(err, domain.ErrAttendanceNotFound),
		errors.Is(err, domain.ErrNoAttendanceRecords),
		errors.Is(err, domain.ErrEmployeeNotInTeams):
		return http.StatusNotFound, err.Error()

	// Conflicts.
	case errors.Is(err, domain.ErrDuplicateAttendance),
		errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, err.Error()

	// Malformed or rejected input.
	case errors.Is(err, domain.ErrDuplicateTeam),
		errors.Is(err, domain.ErrPasswordMismatch),
		errors.Is(err, domain.ErrInvalidDesignation),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidType),
		errors.Is(err, domain.ErrInvalidMember),
		errors.Is(err, domain.ErrInvalidManager),
		errors.Is(err, domain.ErrManagerAssigned):
		return http.StatusBadRequest, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
