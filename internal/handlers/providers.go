package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imagerelay/api/internal/imagegen"
)

// ProviderHandler exposes the configured provider table
type ProviderHandler struct {
	registry *imagegen.Registry
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(registry *imagegen.Registry) *ProviderHandler {
	return &ProviderHandler{registry: registry}
}

// ProviderInfo describes one provider without its credential
type ProviderInfo struct {
	Name    string   `json:"name"`
	Models  []string `json:"models"`
	Enabled bool     `json:"enabled"`
	Default bool     `json:"default"`
}

// ListProviders returns providers in fallback order
// @Summary List image providers
// @Tags images
// @Produce json
// @Success 200 {array} ProviderInfo
// @Security Bearer
// @Router /providers [get]
func (h *ProviderHandler) ListProviders(c *gin.Context) {
	c.JSON(http.StatusOK, describeProviders(h.registry))
}

func describeProviders(registry *imagegen.Registry) []ProviderInfo {
	def := registry.Default()
	providers := registry.Providers()
	infos := make([]ProviderInfo, 0, len(providers))
	for _, p := range providers {
		infos = append(infos, ProviderInfo{
			Name:    p.Name,
			Models:  p.Models,
			Enabled: p.Enabled(),
			Default: p == def,
		})
	}
	return infos
}
