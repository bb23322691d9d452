package kafka

import (
	"context"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=deps.go -destination=./mocks/mock_kafka.go -package=mocks

// reader — минимальный контракт над источником (kafka.Reader),
// чтобы легко подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// entryAcceptor — сторона Swarm, принимающая записи пиров.
type entryAcceptor interface {
	Accept(ctx context.Context, entry domain.CacheEntry) error
}

// writer — минимальный контракт над kafka.Writer.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
