package storage

import (
	"context"
	"encoding/json"
	"strconv"

	"ginraidee/food-svc/internal/domain"
	"ginraidee/logging"
	"ginraidee/metrics"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	Writer MessageWriter
}

// NewKafkaPublisher switches the writer to async mode so a slow broker never
// holds up a request; delivery results are only logged and counted.
func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	writer.Async = true
	writer.Completion = func(messages []kafka.Message, err error) {
		result := "ok"
		if err != nil {
			result = "error"
			logging.Warn().Err(err).Int("messages", len(messages)).Msg("kafka delivery failed")
		}
		for _, m := range messages {
			metrics.EventsPublished.WithLabelValues(eventType(m), result).Inc()
		}
	}
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(strconv.Itoa(event.FoodID)),
		Value:   payload,
		Headers: []kafka.Header{{Key: "type", Value: []byte(event.Type)}},
	})
}

func eventType(m kafka.Message) string {
	for _, h := range m.Headers {
		if h.Key == "type" {
			return string(h.Value)
		}
	}
	return "unknown"
}
