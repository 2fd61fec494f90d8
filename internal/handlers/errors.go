package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/nano-link/backend/internal/middleware"
	"github.com/anonto42/nano-link/backend/internal/services"
	"github.com/anonto42/nano-link/backend/pkg/logger"
	"github.com/anonto42/nano-link/backend/validators"
	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler writes every error as {"error": message}. Errors that are
// not *echo.HTTPError are logged and reported as a bare 500.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	} else {
		logRequestError(c, err, "unhandled error")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, echo.Map{"error": message})
	}
	if err != nil {
		logRequestError(c, err, "write error response")
	}
}

// serviceError maps a service failure onto an HTTP error. Unexpected errors
// are logged and replaced by fallback so internals never reach the client.
func serviceError(c echo.Context, err error, fallback string) error {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		logRequestError(c, err, fallback)
		return echo.NewHTTPError(http.StatusInternalServerError, fallback)
	}
	switch svcErr.Kind {
	case services.KindValidation, services.KindConflict:
		return echo.NewHTTPError(http.StatusBadRequest, svcErr.Message)
	case services.KindNotFound:
		return echo.NewHTTPError(http.StatusNotFound, svcErr.Message)
	case services.KindForbidden:
		return echo.NewHTTPError(http.StatusForbidden, svcErr.Message)
	case services.KindUnauthenticated:
		return echo.NewHTTPError(http.StatusUnauthorized, svcErr.Message)
	default:
		logRequestError(c, err, fallback)
		return echo.NewHTTPError(http.StatusInternalServerError, fallback)
	}
}

// bindAndValidate decodes the body into req and runs the echo validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		var vErr *validators.ValidationError
		if errors.As(err, &vErr) {
			return echo.NewHTTPError(http.StatusBadRequest, vErr.Message)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func logRequestError(c echo.Context, err error, msg string) {
	log := logger.WithComponent("http")
	if session, ok := middleware.LookupSession(c); ok {
		log = logger.WithUserID(session.UserID).With().Str("component", "http").Logger()
	}
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("route", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg(msg)
}

func success(c echo.Context, code int) error {
	return c.JSON(code, echo.Map{"success": true})
}
