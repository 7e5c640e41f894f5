package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/imagerelay/api/internal/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/imagerelay/api/internal/imagegen")

const (
	// maxResponseBytes bounds a provider response; base64 payloads are large.
	maxResponseBytes = 64 << 20
	// maxErrorBody bounds the provider error text kept on ProviderRequestError.
	maxErrorBody = 2048
)

// Relay runs the provider fallback chain. It holds no per-request state and
// is safe for concurrent use.
type Relay struct {
	registry *Registry
	client   *http.Client
	logger   *zap.Logger
}

// Option configures a Relay.
type Option func(*Relay)

// WithHTTPClient sets the client used for provider calls.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Relay) {
		r.client = client
	}
}

// NewRelay creates a relay over registry.
func NewRelay(registry *Registry, logger *zap.Logger, opts ...Option) *Relay {
	r := &Relay{
		registry: registry,
		client:   http.DefaultClient,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the relay's provider table.
func (r *Relay) Registry() *Registry {
	return r.registry
}

// Generate validates req and tries each candidate provider in order until one
// returns at least one image. Provider failures are recorded and the next
// candidate is tried; only a ValidationError or an ExhaustionError is
// returned.
func (r *Relay) Generate(ctx context.Context, req Request) (*Result, error) {
	ctx, span := tracer.Start(ctx, "imagegen.Generate")
	defer span.End()

	if err := req.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	size := SizeFor(req.AspectRatio)
	numImages := req.ImageCount()

	r.logger.Info("generating images",
		zap.Int("prompt_length", len(req.Prompt)),
		zap.String("model", req.Model),
		zap.Int("num_images", numImages),
		zap.String("size", size.String()),
		zap.Bool("source_image", req.Image != ""),
	)

	selected, model := r.registry.Select(req.Model)
	if model != req.Model {
		r.logger.Info("model not served by any provider, using default",
			zap.String("requested_model", req.Model),
			zap.String("provider", selected.Name),
			zap.String("model", model),
		)
	}

	var attempts []Attempt
	for _, p := range r.registry.Candidates(req.Model) {
		model := p.ResolveModel(req.Model)

		if !p.Enabled() {
			r.logger.Info("skipping provider", zap.String("provider", p.Name), zap.String("reason", "API key not configured"))
			metrics.ProviderAttempts.WithLabelValues(p.Name, metrics.OutcomeSkipped).Inc()
			attempts = append(attempts, Attempt{
				Provider: p.Name,
				Model:    model,
				Skipped:  true,
				Err:      &ProviderConfigurationError{Provider: p.Name, Err: ErrMissingCredential},
			})
			continue
		}

		images, err := r.invoke(ctx, p, Call{
			Prompt:    req.Prompt,
			Model:     model,
			NumImages: numImages,
			Size:      size,
			Image:     req.Image,
		})
		if err != nil {
			r.logger.Warn("provider failed", zap.String("provider", p.Name), zap.String("model", model), zap.Error(err))
			metrics.ProviderAttempts.WithLabelValues(p.Name, metrics.OutcomeFailure).Inc()
			attempts = append(attempts, Attempt{Provider: p.Name, Model: model, Err: err})
			continue
		}

		metrics.ProviderAttempts.WithLabelValues(p.Name, metrics.OutcomeSuccess).Inc()
		metrics.ImagesGenerated.WithLabelValues(p.Name).Add(float64(len(images)))
		span.SetAttributes(attribute.String("provider", p.Name), attribute.String("model", model))

		r.logger.Info("images generated",
			zap.String("provider", p.Name),
			zap.String("model", model),
			zap.Int("count", len(images)),
		)
		return &Result{Images: images, Provider: p.Name, Model: model}, nil
	}

	err := &ExhaustionError{Attempts: attempts}
	span.SetStatus(codes.Error, "all providers failed")
	r.logger.Error("all image generation providers failed", zap.Int("attempts", len(attempts)), zap.Error(err))
	return nil, err
}

// invoke performs one provider call and parses its response.
func (r *Relay) invoke(ctx context.Context, p *Descriptor, call Call) ([]string, error) {
	ctx, span := tracer.Start(ctx, "imagegen.provider",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("provider", p.Name),
			attribute.String("model", call.Model),
			attribute.Int("num_images", call.NumImages),
		),
	)
	defer span.End()

	images, err := r.doInvoke(ctx, p, call)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("images", len(images)))
	return images, nil
}

func (r *Relay) doInvoke(ctx context.Context, p *Descriptor, call Call) ([]string, error) {
	body, err := json.Marshal(p.Codec.FormatRequest(call))
	if err != nil {
		return nil, &ProviderRequestError{Provider: p.Name, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &ProviderRequestError{Provider: p.Name, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.Credential)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	r.logger.Debug("calling provider", zap.String("provider", p.Name), zap.String("model", call.Model), zap.String("endpoint", p.Endpoint))

	start := time.Now()
	resp, err := r.client.Do(httpReq)
	metrics.ProviderLatency.WithLabelValues(p.Name).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, &ProviderRequestError{Provider: p.Name, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &ProviderRequestError{Provider: p.Name, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderRequestError{Provider: p.Name, StatusCode: resp.StatusCode, Body: truncate(string(data), maxErrorBody)}
	}

	images, err := p.Codec.ParseResponse(data)
	if err != nil {
		return nil, &ProviderRequestError{Provider: p.Name, StatusCode: resp.StatusCode, Err: err}
	}
	if len(images) == 0 {
		return nil, &ProviderRequestError{Provider: p.Name, StatusCode: resp.StatusCode, Err: ErrNoImages}
	}
	return images, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// IsValidation reports whether err rejected the request before any provider
// was contacted.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsExhausted reports whether every provider was skipped or failed.
func IsExhausted(err error) bool {
	var ee *ExhaustionError
	return errors.As(err, &ee)
}
