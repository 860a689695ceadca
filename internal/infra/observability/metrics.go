package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/adpulse/adpulse-api/internal/domain"
)

// Metrics holds all Prometheus metrics for the API.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	externalErrors  *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec

	feedPolls     *prometheus.CounterVec
	bidsGenerated prometheus.Counter
	feedWindow    prometheus.Gauge
	depositsTotal prometheus.Counter
	depositValue  prometheus.Counter
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "adpulse_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adpulse_requests_total",
				Help: "Total requests processed.",
			},
			[]string{"status"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adpulse_external_errors_total",
				Help: "Total errors from external services.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adpulse_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adpulse_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),

		feedPolls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adpulse_feed_polls_total",
				Help: "Auction feed polls by outcome (ok, error, skipped).",
			},
			[]string{"outcome"},
		),
		bidsGenerated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "adpulse_auction_bids_generated_total",
				Help: "Total simulated winning bids generated.",
			},
		),
		feedWindow: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "adpulse_feed_window_entries",
				Help: "Current number of entries in the live feed window.",
			},
		),
		depositsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "adpulse_wallet_deposits_total",
				Help: "Total wallet deposits accepted.",
			},
		),
		depositValue: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "adpulse_wallet_deposit_value_total",
				Help: "Cumulative value of accepted wallet deposits.",
			},
		),
	}
}

// RecordRequestDuration records the duration of one named operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrRequest increments the request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// RecordFeedPoll counts one feed poll with its outcome.
func (m *Metrics) RecordFeedPoll(outcome string) {
	m.feedPolls.WithLabelValues(outcome).Inc()
}

// RecordBids counts n freshly generated winning bids.
func (m *Metrics) RecordBids(n int) {
	m.bidsGenerated.Add(float64(n))
}

// SetFeedWindow reports the current feed window occupancy.
func (m *Metrics) SetFeedWindow(n int) {
	m.feedWindow.Set(float64(n))
}

// RecordDeposit counts an accepted deposit and its value.
func (m *Metrics) RecordDeposit(amount float64) {
	m.depositsTotal.Inc()
	m.depositValue.Add(amount)
}

// AuctionSnapshot returns cumulative auction counters for the
// GET /v1/auction/stats endpoint.
func (m *Metrics) AuctionSnapshot() *domain.AuctionStats {
	polls := getCounterValue(m.feedPolls, "ok") +
		getCounterValue(m.feedPolls, "error") +
		getCounterValue(m.feedPolls, "skipped")

	return &domain.AuctionStats{
		Polls:         int64(polls),
		FailedPolls:   int64(getCounterValue(m.feedPolls, "error")),
		BidsGenerated: int64(counterValue(m.bidsGenerated)),
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	return counterValue(cv.WithLabelValues(label))
}

func counterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	if err := c.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
