// Package handlers implements the HTTP endpoint handlers.
package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// Build information - can be set at build time using ldflags
var (
	Version   = "dev"
	GoVersion = runtime.Version()
)

// HealthHandler handles health check requests.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HealthCheck handles GET /health - basic liveness check.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "kinship",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
		"go":        GoVersion,
	})
}
