package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"taskboard/internal/service"
)

// respondError maps service errors to HTTP statuses. Anything unexpected is
// logged with full detail and answered with an opaque body so database and
// driver messages never reach the client.
func respondError(c echo.Context, log zerolog.Logger, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, service.ErrEmailTaken):
		return c.JSON(http.StatusBadRequest, errorBody("Email already registered"))
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, errorBody("Invalid credentials"))
	case errors.Is(err, service.ErrTaskNotFound):
		return c.JSON(http.StatusNotFound, errorBody("Task not found"))
	case errors.Is(err, service.ErrBoardNotFound):
		return c.JSON(http.StatusNotFound, errorBody("Board not found"))
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return c.JSON(http.StatusInternalServerError, errorBody("Internal server error"))
	}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}
