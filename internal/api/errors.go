package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"footfall/internal/engine"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"-"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// ValidationError represents one failed query field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   *APIError `json:"error"`
}

func newAPIError(status int, code, message string) *APIError {
	return &APIError{StatusCode: status, ErrorCode: code, Message: message}
}

var errDatasetLoading = newAPIError(http.StatusServiceUnavailable, "LOADING", engine.ErrLoading.Error())

var errShuttingDown = newAPIError(http.StatusServiceUnavailable, "SHUTTING_DOWN", "server is shutting down")

// dataError maps a store error to the response the dashboard shows.
func dataError(err error) *APIError {
	if errors.Is(err, engine.ErrLoading) {
		return errDatasetLoading
	}
	var le *engine.LoadError
	if errors.As(err, &le) {
		// The message is shown to the user as is.
		return &APIError{
			StatusCode: http.StatusBadGateway,
			ErrorCode:  "LOAD_FAILED",
			Message:    le.Error(),
			Details:    map[string]string{"source": le.Source},
		}
	}
	return newAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", err.Error())
}

func validationFailed(err error) *APIError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return newAPIError(http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	}
	details := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed on '%s' (%s)", fe.Tag(), fe.Param()),
		})
	}
	return &APIError{
		StatusCode: http.StatusBadRequest,
		ErrorCode:  "VALIDATION_FAILED",
		Message:    "Request validation failed",
		Details:    details,
	}
}

// ErrorHandler renders every error as an ErrorResponse.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apiErr *APIError
	var he *echo.HTTPError
	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &he):
		apiErr = newAPIError(he.Code, fmt.Sprintf("HTTP_%d", he.Code), fmt.Sprint(he.Message))
	default:
		apiErr = newAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request().Context(), "request failed",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()))
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(apiErr.StatusCode)
	} else {
		writeErr = c.JSON(apiErr.StatusCode, ErrorResponse{Success: false, Error: apiErr})
	}
	if writeErr != nil {
		slog.Warn("failed to write error response", slog.String("error", writeErr.Error()))
	}
}
