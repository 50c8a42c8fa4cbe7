package service

import (
	"context"

	"ginraidee/agg-svc/internal/domain"
	"ginraidee/agg-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	RecordSelection(ctx context.Context, event domain.Event) error
	RecordFeedback(ctx context.Context, event domain.Event) error
}

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	HandleMessage(ctx context.Context, message kafka.Message) error
	ProcessEvent(ctx context.Context, event domain.Event) error
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
