package apperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Status maps a Kind to its HTTP status code.
func Status(kind Kind) int {
	switch kind {
	case Validation:
		return http.StatusBadRequest
	case InvalidCredentials:
		return http.StatusUnauthorized
	case DuplicateEmail:
		return http.StatusConflict
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case CapacityExceeded:
		return http.StatusBadRequest
	case Configuration:
		return http.StatusInternalServerError
	case Storage:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// publicMessage is what the caller sees. Storage and configuration faults never leak their cause.
func publicMessage(kind Kind, err error) string {
	switch kind {
	case Validation:
		var ae *Error
		if errors.As(err, &ae) && ae.Err != nil {
			return ae.Err.Error()
		}
		return "invalid request"
	case InvalidCredentials:
		return "invalid email or password"
	case DuplicateEmail:
		return "user already exists with this email"
	case Unauthorized:
		return "authentication required"
	case Forbidden:
		return "access denied"
	case NotFound:
		return "not found"
	case CapacityExceeded:
		return "event is full"
	case Configuration, Storage:
		return "internal server error"
	}
	return "internal server error"
}

// Respond writes err as a JSON error response and aborts the gin chain.
func Respond(c *gin.Context, err error) {
	kind := KindOf(err)
	status := Status(kind)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "kind", kind.String(), "error", err,
			"method", c.Request.Method, "path", c.FullPath())
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: publicMessage(kind, err)})
}

// RespondMessage writes err's status with a caller-chosen message.
func RespondMessage(c *gin.Context, err error, message string) {
	kind := KindOf(err)
	status := Status(kind)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "kind", kind.String(), "error", err,
			"method", c.Request.Method, "path", c.FullPath())
		message = "internal server error"
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}
