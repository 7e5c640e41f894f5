package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imagerelay/api/internal/imagegen"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	registry *imagegen.Registry
	version  string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(registry *imagegen.Registry, version string) *HealthHandler {
	return &HealthHandler{registry: registry, version: version}
}

// HealthResponse represents the readiness response
type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Providers map[string]string `json:"providers"`
}

// Health returns basic health status
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "imagerelay",
		"version": h.version,
	})
}

// Ready reports which providers can be used. At least one provider with a
// credential is required to serve traffic.
func (h *HealthHandler) Ready(c *gin.Context) {
	providers := make(map[string]string)
	enabled := 0

	for _, p := range h.registry.Providers() {
		if p.Enabled() {
			providers[p.Name] = "configured"
			enabled++
		} else {
			providers[p.Name] = "not configured"
		}
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if enabled == 0 {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, HealthResponse{
		Status:    status,
		Service:   "imagerelay",
		Version:   h.version,
		Providers: providers,
	})
}
