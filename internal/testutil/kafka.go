//go:build integration

package testutil

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// UniqueTopic — уникальный топик записей Swarm для одного теста.
func UniqueTopic(base string) string {
	return fmt.Sprintf("%s-%s", base, UniqSuffix())
}

// NodeGroup — consumer group узла: каждый узел читает все записи топика.
func NodeGroup(topic, nodeID string) string {
	return "swarm-" + nodeID + "-" + topic
}

// EnsureTopic создаёт топик с partitions партициями и ждёт, пока у всех появится лидер.
// broker принимает "host:port", "PLAINTEXT://host:port" или список через запятую.
func EnsureTopic(ctx context.Context, broker, topic string, partitions int) error {
	if partitions < 1 {
		partitions = 1
	}
	addr := firstBootstrap(broker)

	conn, err := kafka.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctrl, err := conn.Controller()
	if err != nil {
		return err
	}
	admin, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return err
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     partitions,
		ReplicationFactor: 1,
	})
	if err != nil && !strings.Contains(strings.ToLower(err.Error()), "already exists") {
		return fmt.Errorf("create topic %q: %w", topic, err)
	}

	return waitPartitions(ctx, addr, topic, partitions)
}

func firstBootstrap(raw string) string {
	first := strings.TrimSpace(strings.Split(raw, ",")[0])
	if strings.Contains(first, "://") {
		if u, err := url.Parse(first); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return first
}

func waitPartitions(ctx context.Context, broker, topic string, want int) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	var lastErr error
	for {
		ready, err := partitionsWithLeader(ctx, broker, topic)
		if err == nil && ready >= want {
			return nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("topic %q not ready: %w", topic, lastErr)
			}
			return fmt.Errorf("topic %q not ready: %d/%d partitions", topic, ready, want)
		case <-tick.C:
		}
	}
}

func partitionsWithLeader(ctx context.Context, broker, topic string) (int, error) {
	c, err := kafka.DialContext(ctx, "tcp", broker)
	if err != nil {
		return 0, err
	}
	defer c.Close()

	parts, err := c.ReadPartitions(topic)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range parts {
		if p.Leader.Host != "" {
			n++
		}
	}
	return n, nil
}
