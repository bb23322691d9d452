package kafka_test

import (
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"

	mykafka "github.com/Gunvolt24/partswarm/internal/kafka"
)

func TestConsumerConfig_StartOffset(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]int64{
		"first":       kafkago.FirstOffset,
		" FiRsT \n":   kafkago.FirstOffset,
		"":            kafkago.LastOffset,
		"LAST":        kafkago.LastOffset,
		"from-origin": kafkago.LastOffset,
	} {
		cfg := mykafka.ConsumerConfig{Brokers: []string{"k1:9092"}, Topic: "swarm.entries", NodeID: "node-a", StartOffset: in}
		assert.Equal(t, want, cfg.ReaderConfig().StartOffset, "start offset %q", in)
	}
}

func TestConsumerConfig_GroupPerNode(t *testing.T) {
	t.Parallel()

	a := mykafka.ConsumerConfig{Brokers: []string{"k1:9092", "k2:9092"}, Topic: "swarm.entries", NodeID: "node-a"}
	b := mykafka.ConsumerConfig{Brokers: []string{"k1:9092", "k2:9092"}, Topic: "swarm.entries", NodeID: "node-b"}

	ra, rb := a.ReaderConfig(), b.ReaderConfig()
	assert.Equal(t, "swarm-node-a", ra.GroupID)
	assert.NotEqual(t, ra.GroupID, rb.GroupID, "узлы не должны делить группу")
	assert.Equal(t, a.Brokers, ra.Brokers)
	assert.Equal(t, "swarm.entries", ra.Topic)
	assert.Zero(t, ra.CommitInterval, "коммит только вручную")
	assert.Equal(t, 500*time.Millisecond, ra.MaxWait)

	explicit := mykafka.ConsumerConfig{Topic: "swarm.entries", NodeID: "node-a", GroupID: "ops-replay"}
	assert.Equal(t, "ops-replay", explicit.ReaderConfig().GroupID)
}
