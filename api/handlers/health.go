package handlers

import (
	"net/http"

	"github.com/2Lynk/DeathLogger-server/internal/service"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness plus the store's record count, which
// doubles as a cheap check that the backing file is readable.
type HealthHandler struct {
	service service.Service
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(svc service.Service) *HealthHandler {
	return &HealthHandler{service: svc}
}

// Health handles health check requests
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "deathlog",
		"deaths":  len(h.service.ListDeaths(0)),
	})
}
