package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse represents a standardized error response. Detail repeats the
// message at the top level for clients that only read {"detail": ...}.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Error  struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Detail = message
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// ValidationError rejects a request parameter with 422
func ValidationError(field, message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnprocessableEntity,
		CreateErrorResponse("VALIDATION_ERROR", fmt.Sprintf("Invalid %s: %s", field, message), map[string]string{field: message}))
}

// ServerError reports a failed operation as "<op> failed: <err>"
func ServerError(op string, err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("%s failed: %v", op, err)).SetInternal(err)
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "CLIENT_ERROR"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	}
	if status >= http.StatusInternalServerError {
		return "SERVER_ERROR"
	}
	return "HTTP_ERROR"
}

// HTTPErrorHandler renders every error as an ErrorResponse. Server errors are
// logged with their cause.
func HTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		var body *ErrorResponse

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			switch msg := he.Message.(type) {
			case *ErrorResponse:
				body = msg
			case string:
				body = CreateErrorResponse(errorCode(status), msg, nil)
			default:
				body = CreateErrorResponse(errorCode(status), fmt.Sprint(msg), nil)
			}
		} else {
			body = CreateErrorResponse(errorCode(status), err.Error(), nil)
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", status),
				zap.Error(err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Warn("write error response", zap.Error(err))
		}
	}
}
