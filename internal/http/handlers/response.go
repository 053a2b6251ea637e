// Package handlers provides the HTTP handler implementations for the relay.
//
// Two surfaces exist: the Telegram webhook (which deliberately breaks the
// usual error conventions, see webhook_handler.go) and everything else
// (health, fallbacks), which uses the structured error envelope below.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "resource not found"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-telegram-relay/internal/http/middleware"
)

// ErrorResponse is the standard error envelope for non-webhook endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code"`
	// Human-readable message (safe to show to users)
	Message string `json:"message"`
}

// fail aborts the request with a structured error and logs server-side errors.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// NotFound is the fallback handler for unmatched routes.
func NotFound(c *gin.Context) {
	fail(c, http.StatusNotFound, ErrCodeNotFound, "resource not found")
}

// MethodNotAllowed is the fallback handler for known routes with a wrong verb.
func MethodNotAllowed(c *gin.Context) {
	fail(c, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
}
