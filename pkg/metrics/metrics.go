package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
	KafkaMessagesPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_published_total",
			Help: "Number of swarm entries written to Kafka",
		},
		[]string{"topic", "outcome"}, // ok|error
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swarm_cache_operations_total",
			Help: "Swarm cache operations",
		},
		[]string{"op", "source"}, // op: hit|miss|evicted|expired|insert|stale; source: local|peer|store
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "swarm_cache_size",
			Help: "Number of entries currently in the local cache",
		},
	)
	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swarm_store_errors_total",
			Help: "Persistent entry store failures (swallowed)",
		},
		[]string{"op"}, // get|put|sweep
	)
	PeerQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swarm_peer_queries_total",
			Help: "Peer lookups by outcome",
		},
		[]string{"outcome"}, // hit|miss|error|timeout
	)
	PeerBroadcasts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swarm_peer_broadcasts_total",
			Help: "Entries pushed to peers",
		},
		[]string{"outcome"}, // ok|error
	)
)

var (
	VendorCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendor_calls_total",
			Help: "Vendor API calls by outcome",
		},
		[]string{"vendor", "outcome"}, // ok|empty|unavailable|rate_limited|auth|malformed|normalization|circuit_open
	)
	VendorLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vendor_call_duration_seconds",
			Help:    "Vendor call duration including retries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"vendor"},
	)
	BreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vendor_breaker_state",
			Help: "Circuit breaker state per vendor (0=closed, 1=open, 2=half_open)",
		},
		[]string{"vendor"},
	)
	LookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookups_total",
			Help: "Lookups by query type and outcome",
		},
		[]string{"type", "outcome"}, // outcome: cache|fetched|failed|invalid
	)
	CoalescedWaiters = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lookup_coalesced_waiters_total",
			Help: "Callers that joined an in-flight fetch instead of starting one",
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрация в глобальном реестре; повторные вызовы безопасны.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed, KafkaMessagesPublished,
			CacheOps, CacheSize, StoreErrors, PeerQueries, PeerBroadcasts,
			VendorCalls, VendorLatency, BreakerState, LookupsTotal, CoalescedWaiters,
		)
	})
}
