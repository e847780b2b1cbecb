// Package consumer wraps the franz-go client in the small surface the intake
// worker needs: poll, hand each record to a handler, commit what succeeded.
package consumer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Message is a single consumed record, decoupled from the client library so
// handlers stay testable.
type Message struct {
	Topic     string
	Key       []byte
	Value     []byte
	Timestamp time.Time
}

// Handler processes one message. Returning an error leaves the record
// uncommitted so it is redelivered (at-least-once).
type Handler interface {
	Handle(ctx context.Context, msg *Message) error
}

// Consumer is a committing group consumer over one or more topics.
type Consumer struct {
	client *kgo.Client
	logger *slog.Logger
}

// New connects a group consumer to the given brokers and topics.
func New(brokers []string, group string, topics []string, logger *slog.Logger) (*Consumer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumerGroup(group),
		kgo.ConsumeTopics(topics...),
		kgo.DisableAutoCommit(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Consumer{client: client, logger: logger}, nil
}

// Run polls until the context is canceled, dispatching each record to the
// handler and committing the records that were handled successfully.
func (c *Consumer) Run(ctx context.Context, handler Handler) error {
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, fetchErr := range fetches.Errors() {
			c.logger.ErrorContext(ctx, "kafka fetch error",
				"topic", fetchErr.Topic,
				"partition", fetchErr.Partition,
				"error", fetchErr.Err,
			)
		}

		var handled []*kgo.Record
		fetches.EachRecord(func(record *kgo.Record) {
			msg := &Message{
				Topic:     record.Topic,
				Key:       record.Key,
				Value:     record.Value,
				Timestamp: record.Timestamp,
			}
			if err := handler.Handle(ctx, msg); err != nil {
				c.logger.ErrorContext(ctx, "message handling failed, leaving uncommitted",
					"topic", record.Topic,
					"partition", record.Partition,
					"offset", record.Offset,
					"error", err,
				)
				return
			}
			handled = append(handled, record)
		})

		if len(handled) > 0 {
			if err := c.client.CommitRecords(ctx, handled...); err != nil {
				c.logger.ErrorContext(ctx, "commit failed", "error", err)
			}
		}
	}
}

// Close shuts the underlying client down.
func (c *Consumer) Close() {
	c.client.Close()
}
