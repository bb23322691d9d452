package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/pkg/ctxmeta"
	"github.com/Gunvolt24/partswarm/pkg/metrics"
)

// verdict - судьба прочитанного сообщения.
type verdict int

const (
	verdictAccepted verdict = iota
	verdictOwn
	verdictRejected
	verdictRetry
)

func (v verdict) observe(topic string) {
	switch v {
	case verdictAccepted:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
	case verdictRejected:
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
	}
}

func (c *Consumer) process(ctx context.Context, msg *kafka.Message) verdict {
	// своя рассылка отсекается по заголовку, тело не разбираем
	if sender := senderOf(msg); c.nodeID != "" && sender == c.nodeID {
		return verdictOwn
	}

	em, err := decodeEntryMessage(msg)
	if err != nil {
		c.log.Warnf(ctx, "swarm feed: skip offset=%d: %v", msg.Offset, err)
		return verdictRejected
	}
	if c.nodeID != "" && em.NodeID == c.nodeID {
		return verdictOwn
	}

	ctx = ctxmeta.WithPeerNode(ctx, em.NodeID)
	ctx = ctxmeta.WithFingerprint(ctx, string(em.Entry.Fingerprint))

	pctx, cancel := context.WithTimeout(ctx, c.processTimeout)
	err = c.service.Accept(pctx, em.Entry)
	cancel()

	switch {
	case err == nil:
		return verdictAccepted
	case errors.Is(err, domain.ErrInvalidEntry):
		c.log.Warnf(ctx, "swarm feed: rejected offset=%d: %v", msg.Offset, err)
		return verdictRejected
	default:
		c.log.Warnf(ctx, "swarm feed: accept failed offset=%d: %v (no commit)", msg.Offset, err)
		return verdictRetry
	}
}

func (c *Consumer) commit(ctx context.Context, msg *kafka.Message) {
	if err := c.reader.CommitMessages(ctx, *msg); err != nil {
		c.log.Warnf(ctx, "swarm feed: commit offset=%d: %v", msg.Offset, err)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
