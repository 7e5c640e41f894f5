package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/imagerelay/api/internal/imagegen"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Generation outcomes carried on events and used as subject suffixes.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusRejected  = "rejected"
)

// Publisher emits one event per handled generation request.
type Publisher interface {
	Publish(ctx context.Context, event GenerationEvent) error
	Close()
}

// AttemptSummary is one provider attempt without request payloads.
type AttemptSummary struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Skipped  bool   `json:"skipped"`
	Error    string `json:"error"`
}

// GenerationEvent describes the outcome of a generation request. It never
// carries the prompt, the source image or the generated images.
type GenerationEvent struct {
	ID         string           `json:"id"`
	RequestID  string           `json:"request_id,omitempty"`
	Status     string           `json:"status"`
	Provider   string           `json:"provider,omitempty"`
	Model      string           `json:"model,omitempty"`
	ImageCount int              `json:"image_count"`
	Attempts   []AttemptSummary `json:"attempts,omitempty"`
	LatencyMS  int64            `json:"latency_ms"`
	Timestamp  time.Time        `json:"timestamp"`
}

// NewGenerationEvent builds the event for a finished Generate call.
func NewGenerationEvent(requestID string, result *imagegen.Result, err error, latency time.Duration) GenerationEvent {
	event := GenerationEvent{
		ID:        uuid.NewString(),
		RequestID: requestID,
		LatencyMS: latency.Milliseconds(),
		Timestamp: time.Now().UTC(),
	}

	switch {
	case err == nil && result != nil:
		event.Status = StatusSucceeded
		event.Provider = result.Provider
		event.Model = result.Model
		event.ImageCount = len(result.Images)
	case imagegen.IsValidation(err):
		event.Status = StatusRejected
	default:
		event.Status = StatusFailed
		var ee *imagegen.ExhaustionError
		if errors.As(err, &ee) {
			for _, a := range ee.Attempts {
				event.Attempts = append(event.Attempts, AttemptSummary{
					Provider: a.Provider,
					Model:    a.Model,
					Skipped:  a.Skipped,
					Error:    a.Err.Error(),
				})
			}
		}
	}
	return event
}

// NATSPublisher publishes events on "<subject>.<status>".
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// Connect dials NATS at url.
func Connect(url, subject string, logger *zap.Logger) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("imagerelay"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(3),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("disconnected from NATS", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{conn: nc, subject: subject}, nil
}

// Publish sends event. It does not wait for any subscriber.
func (p *NATSPublisher) Publish(ctx context.Context, event GenerationEvent) error {
	if p.conn == nil || p.conn.IsClosed() {
		return nats.ErrConnectionClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := nats.NewMsg(p.subject + "." + event.Status)
	msg.Header.Set(nats.MsgIdHdr, event.ID)
	msg.Data = data
	return p.conn.PublishMsg(msg)
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}

// NopPublisher discards events. It is used when NATS is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, GenerationEvent) error { return nil }

func (NopPublisher) Close() {}
