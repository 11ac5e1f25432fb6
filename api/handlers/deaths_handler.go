package handlers

import (
	"net/http"

	"github.com/2Lynk/DeathLogger-server/api/apierr"
	"github.com/2Lynk/DeathLogger-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DeathsHandler serves the raw JSON API over the store
type DeathsHandler struct {
	service service.Service
	log     *logrus.Logger
}

// NewDeathsHandler creates a new DeathsHandler instance
func NewDeathsHandler(svc service.Service, log *logrus.Logger) *DeathsHandler {
	return &DeathsHandler{
		service: svc,
		log:     log,
	}
}

// ListDeaths returns all records, newest first
func (h *DeathsHandler) ListDeaths(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ListDeaths(0))
}

// GetDeath returns one record by id
func (h *DeathsHandler) GetDeath(c *gin.Context) {
	record, err := h.service.GetDeath(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierr.Respond(c, h.log, apierr.ErrNotFound)
			return
		}
		h.log.WithError(err).Error("Failed to load death record")
		apierr.Respond(c, h.log, apierr.ErrInternalServer)
		return
	}
	c.JSON(http.StatusOK, record)
}
