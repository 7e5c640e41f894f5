package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imagerelay/api/internal/eventbus"
	"github.com/imagerelay/api/internal/imagegen"
	"github.com/imagerelay/api/internal/middleware"
	"go.uber.org/zap"
)

// GenerationHandler handles image generation endpoints
type GenerationHandler struct {
	relay  *imagegen.Relay
	events eventbus.Publisher
	logger *zap.Logger
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(relay *imagegen.Relay, events eventbus.Publisher, logger *zap.Logger) *GenerationHandler {
	if events == nil {
		events = eventbus.NopPublisher{}
	}
	return &GenerationHandler{relay: relay, events: events, logger: logger}
}

// GenerateImageRequest is the request body for image generation
type GenerateImageRequest = imagegen.Request

// GenerateImageResponse is the response for a successful generation
type GenerateImageResponse = imagegen.Result

// GenerateImage relays a prompt to the first provider able to serve it
// @Summary Generate images from a prompt
// @Description Tries providers in priority order and returns image URLs or data URIs from the first that succeeds.
// @Tags images
// @Accept json
// @Produce json
// @Param request body GenerateImageRequest true "Generation request"
// @Success 200 {object} GenerateImageResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Security Bearer
// @Router /images/generate [post]
func (h *GenerationHandler) GenerateImage(c *gin.Context) {
	var req GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		middleware.InternalError(c, err.Error())
		return
	}

	// The fallback chain runs to completion even if the client goes away.
	ctx := context.WithoutCancel(c.Request.Context())

	start := time.Now()
	result, err := h.relay.Generate(ctx, req)
	h.publish(ctx, middleware.GetRequestID(c), result, err, time.Since(start))

	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case imagegen.IsValidation(err):
		middleware.BadRequest(c, err.Error())
	case imagegen.IsExhausted(err):
		c.Error(err)
		middleware.ProvidersExhausted(c)
	default:
		c.Error(err)
		middleware.InternalError(c, err.Error())
	}
}

// Preflight answers CORS preflight requests with an empty 200; headers are
// set by middleware.CORS
func (h *GenerationHandler) Preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (h *GenerationHandler) publish(ctx context.Context, requestID string, result *imagegen.Result, err error, latency time.Duration) {
	event := eventbus.NewGenerationEvent(requestID, result, err, latency)
	if perr := h.events.Publish(ctx, event); perr != nil {
		h.logger.Warn("failed to publish generation event", zap.String("event_id", event.ID), zap.Error(perr))
	}
}
