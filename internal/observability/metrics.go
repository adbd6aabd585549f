// Package observability exposes prometheus metrics for the engine.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TicksTotal counts scheduler tick invocations.
	TicksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postpilot_scheduler_ticks_total",
		Help: "Total number of scheduler tick invocations",
	})

	// TickDuration records how long each tick took.
	TickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "postpilot_scheduler_tick_duration_seconds",
		Help:    "Scheduler tick duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// PostsPromoted counts posts promoted from scheduled to posted.
	PostsPromoted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postpilot_posts_promoted_total",
		Help: "Total number of posts promoted by the scheduler",
	})

	// ScheduledPosts is the gauge of posts currently waiting for promotion.
	ScheduledPosts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "postpilot_scheduled_posts",
		Help: "Number of posts currently in the scheduled collection",
	})

	// Engagement tracks simulated engagement totals by metric name.
	Engagement = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "postpilot_engagement_total",
		Help: "Simulated engagement totals across all posted posts",
	}, []string{"metric"})

	// WebSocketConnections is the gauge of active event stream connections.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "postpilot_websocket_connections",
		Help: "Number of active WebSocket event stream connections",
	})

	// WebSocketEventsTotal counts events broadcast to the stream by type.
	WebSocketEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postpilot_websocket_events_total",
		Help: "Total WebSocket events broadcast by type",
	}, []string{"event_type"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postpilot_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)

// ObserveTick records the duration of a completed tick.
func ObserveTick(start time.Time) {
	TicksTotal.Inc()
	TickDuration.Observe(time.Since(start).Seconds())
}
