// Package handler exposes the service's operational HTTP surface. Navigation
// itself is driven over the event bus; HTTP carries only health and
// diagnostics.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sage-glasses/service-navigation/internal/application"
)

// StatusHandler serves health checks and the session diagnostic snapshot.
type StatusHandler struct {
	service *application.NavigationService
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(service *application.NavigationService) *StatusHandler {
	return &StatusHandler{service: service}
}

// RegisterRoutes registers the ops routes on the given router group.
func (h *StatusHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/healthz", h.Health)
	r.GET("/api/v1/navigation/status", h.SessionStatus)
}

// Health handles GET /healthz.
func (h *StatusHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "service-navigation",
	})
}

// SessionStatus handles GET /api/v1/navigation/status.
func (h *StatusHandler) SessionStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.GetSessionStatus())
}
