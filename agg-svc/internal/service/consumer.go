package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ginraidee/agg-svc/internal/domain"
	"ginraidee/logging"
	"ginraidee/metrics"

	"github.com/segmentio/kafka-go"
)

var ErrUnknownEvent = errors.New("unknown event type")

const readRetryDelay = time.Second

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
}

func NewConsumer(reader MessageReader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
	}
}

// Start reads until ctx is cancelled. A message that fails to decode or
// apply is logged and skipped; the reader's offset still advances.
func (c *Consumer) Start(ctx context.Context) {
	logging.Info().Msg("starting aggregation consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logging.Info().Msg("aggregation consumer stopped")
				return
			}
			logging.Error().Err(err).Msg("error reading message")
			select {
			case <-ctx.Done():
				return
			case <-time.After(readRetryDelay):
			}
			continue
		}

		if err := c.HandleMessage(ctx, message); err != nil && !errors.Is(err, ErrUnknownEvent) {
			logging.Warn().Err(err).Int64("offset", message.Offset).Int("partition", message.Partition).Msg("event not applied")
		}
	}
}

func (c *Consumer) HandleMessage(ctx context.Context, message kafka.Message) error {
	var event domain.Event
	if err := json.Unmarshal(message.Value, &event); err != nil {
		metrics.EventsConsumed.WithLabelValues("invalid", "error").Inc()
		return fmt.Errorf("decode event: %w", err)
	}
	return c.ProcessEvent(ctx, event)
}

// ProcessEvent folds one event into the leaderboards. Unknown types are
// counted and ignored.
func (c *Consumer) ProcessEvent(ctx context.Context, event domain.Event) error {
	var err error
	switch event.Type {
	case domain.EventSelection:
		err = c.Store.RecordSelection(ctx, event)
	case domain.EventFeedback:
		if event.Action == "" {
			err = fmt.Errorf("feedback event for food %d has no action", event.FoodID)
			break
		}
		err = c.Store.RecordFeedback(ctx, event)
	default:
		metrics.EventsConsumed.WithLabelValues("unknown", "ignored").Inc()
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event.Type)
	}

	if err != nil {
		metrics.EventsConsumed.WithLabelValues(event.Type, "error").Inc()
		return err
	}
	metrics.EventsConsumed.WithLabelValues(event.Type, "ok").Inc()
	logging.Debug().Str("type", event.Type).Int("food_id", event.FoodID).Str("user_id", event.UserID).Msg("event applied")
	return nil
}
