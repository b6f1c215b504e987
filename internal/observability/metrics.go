package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmgraph_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FeedEventsTotal counts activity feed events by type and operation.
	FeedEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmgraph_feed_events_total",
		Help: "Total number of activity feed events recorded",
	}, []string{"event_type", "operation"})

	// RecommendationLatency records recommendation computation latency.
	RecommendationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "filmgraph_recommendation_latency_seconds",
		Help:    "Recommendation computation latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// CacheHits counts cache hits and misses by key prefix.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmgraph_cache_requests_total",
		Help: "Total cache lookups by key prefix and outcome",
	}, []string{"prefix", "outcome"})

	// WebSocketConnectionsTotal is the gauge of active feed websocket connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "filmgraph_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})
)

// ObserveRecommendation records the latency of one recommendation call.
func ObserveRecommendation(start time.Time) {
	RecommendationLatency.Observe(time.Since(start).Seconds())
}
