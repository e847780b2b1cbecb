// Package intake appends interaction events arriving on the message bus to
// the event log. The log's primary key makes redelivery harmless, so the
// handler can run under at-least-once semantics without its own dedupe.
package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"jobpulse/internal/interaction"
	"jobpulse/internal/platform/kafka/consumer"
	"jobpulse/internal/platform/metrics"
)

type EventStore interface {
	Append(ctx context.Context, event interaction.Event) error
}

type envelope struct {
	ID        string            `json:"id"`
	ActorID   string            `json:"actor_id"`
	Type      string            `json:"type"`
	TargetID  string            `json:"target_id"`
	Metadata  map[string]string `json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
}

// Handler decodes bus messages into events and appends them.
type Handler struct {
	events  EventStore
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Handler)

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

func New(events EventStore, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{events: events, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle appends one message's event. Malformed payloads are logged and
// dropped rather than returned as errors, since redelivery cannot fix them.
func (h *Handler) Handle(ctx context.Context, msg *consumer.Message) error {
	var env envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		h.logger.WarnContext(ctx, "dropping malformed intake message",
			"topic", msg.Topic,
			"error", err.Error(),
		)
		return nil
	}
	if env.ActorID == "" || env.Type == "" {
		h.logger.WarnContext(ctx, "dropping intake message without actor or type",
			"topic", msg.Topic,
		)
		return nil
	}

	event := interaction.Event{
		ActorID:   env.ActorID,
		Type:      interaction.EventType(env.Type),
		TargetID:  env.TargetID,
		Metadata:  env.Metadata,
		CreatedAt: env.CreatedAt,
	}

	// Producers that send an id get idempotent appends across redelivery;
	// the rest get a fresh one.
	if env.ID != "" {
		id, err := uuid.Parse(env.ID)
		if err != nil {
			h.logger.WarnContext(ctx, "dropping intake message with invalid id",
				"topic", msg.Topic,
				"error", err.Error(),
			)
			return nil
		}
		event.ID = id
	} else {
		event.ID = uuid.New()
	}

	if event.CreatedAt.IsZero() {
		event.CreatedAt = msg.Timestamp
	}

	if err := h.events.Append(ctx, event); err != nil {
		return fmt.Errorf("append intake event: %w", err)
	}
	if h.metrics != nil {
		h.metrics.IntakeEventsAppended.Inc()
	}
	return nil
}
