package service

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/nedaZarei/WeddingSite/pkg/logger"
)

// ValidationError is a missing or invalid RSVP field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthError is a wrong or missing admin key.
type AuthError struct{}

func (e *AuthError) Error() string { return "Unauthorized" }

type MethodNotAllowedError struct {
	Method string
}

func (e *MethodNotAllowedError) Error() string { return "Method not allowed" }

// UpstreamFailure wraps a failed download or upload. Its message reaches the caller unchanged.
type UpstreamFailure struct {
	Err error
}

func (e *UpstreamFailure) Error() string { return e.Err.Error() }

func (e *UpstreamFailure) Unwrap() error { return e.Err }

// ConfigurationError is required configuration missing from the environment.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

type errorBody struct {
	Error string `json:"error"`
}

func statusAndMessage(err error) (int, string) {
	var (
		validationErr *ValidationError
		authErr       *AuthError
		methodErr     *MethodNotAllowedError
		upstreamErr   *UpstreamFailure
		configErr     *ConfigurationError
		httpErr       *echo.HTTPError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error()
	case errors.As(err, &authErr):
		return http.StatusUnauthorized, authErr.Error()
	case errors.As(err, &methodErr):
		return http.StatusMethodNotAllowed, methodErr.Error()
	case errors.As(err, &upstreamErr):
		return http.StatusInternalServerError, upstreamErr.Error()
	case errors.As(err, &configErr):
		return http.StatusInternalServerError, configErr.Error()
	case errors.As(err, &httpErr):
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// errorHandler renders every handler error as a JSON error envelope.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, msg := statusAndMessage(err)
	if code >= http.StatusInternalServerError {
		logger.Log.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			zap.Error(err))
	}
	c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, "*")
	if err := c.JSON(code, errorBody{Error: msg}); err != nil {
		logger.Log.Error("failed to write error response", zap.Error(err))
	}
}
