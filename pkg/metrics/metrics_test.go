package metrics_test

import (
	"testing"

	"github.com/Gunvolt24/partswarm/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMustRegister_IsIdempotent(t *testing.T) {
	// Должно выполняться без паники даже при повторном вызове.
	metrics.MustRegister()
	metrics.MustRegister()
}

func TestKafkaCounters_Inc(t *testing.T) {
	metrics.MustRegister()

	beforeConsumed := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues("swarm.entries"))
	beforeFailed := testutil.ToFloat64(metrics.KafkaMessagesFailed.WithLabelValues("swarm.entries"))

	metrics.KafkaMessagesConsumed.WithLabelValues("swarm.entries").Inc()
	metrics.KafkaMessagesFailed.WithLabelValues("swarm.entries").Inc()

	if got := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues("swarm.entries")); got != beforeConsumed+1 {
		t.Fatalf("KafkaMessagesConsumed: got=%v want=%v", got, beforeConsumed+1)
	}
	if got := testutil.ToFloat64(metrics.KafkaMessagesFailed.WithLabelValues("swarm.entries")); got != beforeFailed+1 {
		t.Fatalf("KafkaMessagesFailed: got=%v want=%v", got, beforeFailed+1)
	}
}

func TestCacheOps_CountersByLabel(t *testing.T) {
	metrics.MustRegister()

	hitBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("hit", "local"))
	peerBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("hit", "peer"))

	metrics.CacheOps.WithLabelValues("hit", "local").Inc()
	metrics.CacheOps.WithLabelValues("hit", "local").Inc()

	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("hit", "local")); got != hitBefore+2 {
		t.Fatalf("CacheOps(hit,local): got=%v want=%v", got, hitBefore+2)
	}
	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("hit", "peer")); got != peerBefore {
		t.Fatalf("CacheOps(hit,peer): got=%v want=%v", got, peerBefore)
	}
}

func TestBreakerState_Gauge(t *testing.T) {
	metrics.MustRegister()

	metrics.BreakerState.WithLabelValues("mouser").Set(1)
	if got := testutil.ToFloat64(metrics.BreakerState.WithLabelValues("mouser")); got != 1 {
		t.Fatalf("BreakerState: got=%v want=1", got)
	}
	metrics.BreakerState.WithLabelValues("mouser").Set(0)
}
