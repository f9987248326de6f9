package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ieve-api/internal/service"
	"github.com/noah-isme/ieve-api/pkg/response"
)

// HealthBody is the liveness payload.
type HealthBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(metrics *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health godoc
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} handler.HealthBody
// @Router /health [get]
func (h *MetricsHandler) Health(c *gin.Context) {
	response.OK(c, HealthBody{Status: "OK", Message: "IEVE Backend API is running"})
}
