package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

var (
	// tickDurationHistogram tracks per-tick game-loop execution duration.
	tickDurationHistogram prometheus.Histogram

	// botUnbindCounter tracks how many bots the ControllerRouter has
	// unbound, labeled by the reason (transport_error, misbehaviour,
	// ship_destroyed, game_over).
	botUnbindCounter *prometheus.CounterVec

	// activeBotsGauge tracks how many bots are currently bound.
	activeBotsGauge prometheus.Gauge

	// stepWriteDurationHistogram tracks steplog.Writer.WriteStep latency.
	stepWriteDurationHistogram prometheus.Histogram

	// gcPauseHistogram tracks GC pause durations.
	gcPauseHistogram prometheus.Histogram

	metricsInitialized bool
	gameStartTime       time.Time
)

// InitMetrics registers the Prometheus metrics this module reports. Call
// once per process; calling again resets the registry (used by tests).
func InitMetrics() {
	if metricsInitialized {
		for _, c := range []prometheus.Collector{tickDurationHistogram, botUnbindCounter, activeBotsGauge, stepWriteDurationHistogram, gcPauseHistogram} {
			if c != nil {
				prometheus.Unregister(c)
			}
		}
	}

	tickDurationHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tick_duration_seconds",
			Help:    "Game-loop tick execution duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	botUnbindCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_unbind_total",
			Help: "Total number of bots unbound from the controller router, by reason",
		},
		[]string{"reason"}, // reason: transport_error, misbehaviour, ship_destroyed, game_over
	)

	activeBotsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_bots",
			Help: "Current number of bots bound to a ship",
		},
	)

	stepWriteDurationHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "step_write_duration_seconds",
			Help:    "steplog.Writer.WriteStep call duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	gcPauseHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gc_pause_seconds",
			Help:    "GC pause duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.002, 0.005},
		},
	)

	prometheus.MustRegister(tickDurationHistogram)
	prometheus.MustRegister(botUnbindCounter)
	prometheus.MustRegister(activeBotsGauge)
	prometheus.MustRegister(stepWriteDurationHistogram)
	prometheus.MustRegister(gcPauseHistogram)

	gameStartTime = time.Now()
	metricsInitialized = true
}

// GetTickDurationHistogram returns the tick duration histogram metric.
func GetTickDurationHistogram() prometheus.Histogram {
	return tickDurationHistogram
}

// GetBotUnbindCounter returns the bot-unbind counter metric.
func GetBotUnbindCounter() *prometheus.CounterVec {
	return botUnbindCounter
}

// GetActiveBotsGauge returns the active-bots gauge metric.
func GetActiveBotsGauge() prometheus.Gauge {
	return activeBotsGauge
}

// GetStepWriteDurationHistogram returns the step-log write duration
// histogram metric.
func GetStepWriteDurationHistogram() prometheus.Histogram {
	return stepWriteDurationHistogram
}

// GetGCPauseHistogram returns the GC pause histogram metric.
func GetGCPauseHistogram() prometheus.Histogram {
	return gcPauseHistogram
}

// MetricsHandler serves Prometheus-formatted metrics. Wiring it behind an
// HTTP mux, if one exists, is the caller's responsibility — this package
// carries no server of its own.
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// HealthMetrics is a summary snapshot suitable for a JSON health endpoint.
type HealthMetrics struct {
	ActiveBots    float64
	TickTime      DurationStats
	GCPause       DurationStats
	UptimeSeconds float64
}

// DurationStats summarizes a duration histogram.
type DurationStats struct {
	AverageMs float64
	Count     uint64
}

// GetHealthMetrics extracts summary statistics from the registered
// metrics. Returns zero values if InitMetrics has not run yet.
func GetHealthMetrics() HealthMetrics {
	metrics := HealthMetrics{}

	if !gameStartTime.IsZero() {
		metrics.UptimeSeconds = time.Since(gameStartTime).Seconds()
	}

	if activeBotsGauge != nil {
		var metric dto.Metric
		if err := activeBotsGauge.Write(&metric); err == nil && metric.Gauge != nil {
			metrics.ActiveBots = metric.Gauge.GetValue()
		}
	}

	metrics.TickTime = durationStatsOf(tickDurationHistogram)
	metrics.GCPause = durationStatsOf(gcPauseHistogram)

	return metrics
}

func durationStatsOf(h prometheus.Histogram) DurationStats {
	if h == nil {
		return DurationStats{}
	}
	var metric dto.Metric
	if err := h.Write(&metric); err != nil || metric.Histogram == nil {
		return DurationStats{}
	}
	count := metric.Histogram.GetSampleCount()
	stats := DurationStats{Count: count}
	if count > 0 {
		stats.AverageMs = (metric.Histogram.GetSampleSum() / float64(count)) * 1000.0
	}
	return stats
}
