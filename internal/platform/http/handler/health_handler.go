// Package handler provides HTTP handlers for platform-level endpoints
// that sit outside any feature, such as the health probe.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health serves the /healthz liveness probe. The response is never
// cacheable so load balancers always see the current state.
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
