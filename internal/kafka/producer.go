package kafka

import (
	"context"
	"time"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/ports"
	"github.com/Gunvolt24/partswarm/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

var _ ports.PeerPublisher = (*Producer)(nil)

// Producer — рассылка локальных записей Swarm в общий топик.
type Producer struct {
	writer writer
	topic  string
	nodeID string
}

func NewProducer(cfg *ProducerConfig) *Producer {
	bt := cfg.BatchTimeout
	if bt <= 0 {
		bt = 10 * time.Millisecond
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           bt,
	}
	return &Producer{writer: w, topic: cfg.Topic, nodeID: cfg.NodeID}
}

// Publish — одна запись, ключ - fingerprint (записи одного ключа попадают в одну партицию).
func (p *Producer) Publish(ctx context.Context, e domain.CacheEntry) error {
	msg, err := encodeEntryMessage(p.nodeID, e)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.KafkaMessagesPublished.WithLabelValues(p.topic, "error").Inc()
		return err
	}
	metrics.KafkaMessagesPublished.WithLabelValues(p.topic, "ok").Inc()
	return nil
}

func (p *Producer) Close() error { return p.writer.Close() }
