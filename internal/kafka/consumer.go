package kafka

import (
	"context"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/partswarm/internal/policy"
	"github.com/Gunvolt24/partswarm/internal/ports"
	"github.com/Gunvolt24/partswarm/pkg/metrics"
)

var _ ports.PeerFeed = (*Consumer)(nil)

// Consumer читает общий топик записей Swarm в собственной группе узла,
// поэтому каждый узел получает все записи пиров.
type Consumer struct {
	reader         reader
	service        entryAcceptor
	log            ports.Logger
	nodeID         string
	processTimeout time.Duration
	backoff        *policy.Backoff
	closeOnce      sync.Once
}

func NewConsumer(cfg *ConsumerConfig, service entryAcceptor, log ports.Logger) *Consumer {
	cfg = cfg.withDefaults()
	return &Consumer{
		reader:         kafka.NewReader(cfg.ReaderConfig()),
		service:        service,
		log:            log,
		nodeID:         cfg.NodeID,
		processTimeout: cfg.ProcessTimeout,
		backoff:        policy.NewBackoff(cfg.RetryInitial, cfg.RetryMax),
	}
}

// Run читает записи до отмены ctx. Оффсет коммитится после приёма записи,
// после пропуска своей или негодной записи; временная ошибка оставляет
// сообщение некоммиченным (at-least-once, повтор после паузы).
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "swarm feed started topic=%s group=%s node=%s", rc.Topic, rc.GroupID, c.nodeID)

	for {
		msg, err := c.next(ctx)
		if err != nil {
			return err
		}
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		switch v := c.process(ctx, &msg); v {
		case verdictRetry:
			metrics.KafkaMessagesFailed.WithLabelValues(rc.Topic).Inc()
			if !sleepCtx(ctx, c.backoff.Delay(1)) {
				return ctx.Err()
			}
		default:
			v.observe(rc.Topic)
			c.commit(ctx, &msg)
		}
	}
}

// next - FetchMessage с экспоненциальной паузой на ошибках брокера.
func (c *Consumer) next(ctx context.Context) (kafka.Message, error) {
	for attempt := 1; ; attempt++ {
		msg, err := c.reader.FetchMessage(ctx)
		if err == nil {
			return msg, nil
		}
		if ctx.Err() != nil {
			return kafka.Message{}, ctx.Err()
		}
		d := c.backoff.Delay(attempt)
		c.log.Warnf(ctx, "swarm feed fetch failed: %v (retry in %s)", err, d)
		if !sleepCtx(ctx, d) {
			return kafka.Message{}, ctx.Err()
		}
	}
}

func (c *Consumer) Close() (err error) {
	c.closeOnce.Do(func() { err = c.reader.Close() })
	return err
}
