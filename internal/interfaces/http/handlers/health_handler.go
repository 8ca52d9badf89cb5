package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves liveness checks
type HealthHandler struct{}

// NewHealthHandler creates a health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check handles GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "auto-diag-api",
	})
}
