package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// ConsumerConfig — параметры приёма записей от пиров.
type ConsumerConfig struct {
	Brokers     []string
	Topic       string
	GroupID     string
	StartOffset string
	NodeID      string

	ProcessTimeout time.Duration
	RetryInitial   time.Duration
	RetryMax       time.Duration
}

// withDefaults - копия с заполненными таймаутами обработки и паузами.
func (c *ConsumerConfig) withDefaults() *ConsumerConfig {
	out := *c
	if out.ProcessTimeout <= 0 {
		out.ProcessTimeout = 5 * time.Second
	}
	if out.RetryInitial <= 0 {
		out.RetryInitial = time.Second
	}
	if out.RetryMax <= 0 {
		out.RetryMax = 30 * time.Second
	}
	if out.GroupID == "" && out.NodeID != "" {
		out.GroupID = "swarm-" + out.NodeID
	}
	return &out
}

// ReaderConfig — kafka.Reader с ручным коммитом. Без явной группы узел читает
// в своей группе swarm-<node>.
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	d := c.withDefaults()
	rc := kafka.ReaderConfig{
		Brokers:        d.Brokers,
		GroupID:        d.GroupID,
		Topic:          d.Topic,
		MaxWait:        500 * time.Millisecond,
		CommitInterval: 0,
		StartOffset:    kafka.LastOffset,
	}
	if strings.EqualFold(strings.TrimSpace(d.StartOffset), "first") {
		rc.StartOffset = kafka.FirstOffset
	}
	return rc
}

// ProducerConfig — параметры рассылки записей.
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	NodeID       string
	BatchTimeout time.Duration
}
