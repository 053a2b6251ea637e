package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports process liveness as plain text. Uptime monitors and load
// balancers only look at the status code.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK - Telegram relay running")
}
