package panel

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the collector set for one process
type Metrics struct {
	registry     *prometheus.Registry
	ticks        prometheus.Counter
	frameSeconds prometheus.Histogram
	picks        *prometheus.CounterVec
	records      *prometheus.CounterVec
	clients      prometheus.Gauge
}

// NewMetrics creates collectors on a private registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "orrery_ticks_total",
				Help: "Simulation ticks advanced",
			},
		),
		frameSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "orrery_frame_render_seconds",
				Help:    "Time spent rendering a frame",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
		),
		picks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_picks_total",
				Help: "Pointer picks by kind and result",
			},
			[]string{"kind", "result"},
		),
		records: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_feed_records_total",
				Help: "Display records published to the feed",
			},
			[]string{"type"},
		),
		clients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "orrery_feed_clients",
				Help: "Connected feed clients",
			},
		),
	}

	m.registry.MustRegister(m.ticks)
	m.registry.MustRegister(m.frameSeconds)
	m.registry.MustRegister(m.picks)
	m.registry.MustRegister(m.records)
	m.registry.MustRegister(m.clients)

	return m
}

// RecordTick counts one simulation tick
func (m *Metrics) RecordTick() {
	m.ticks.Inc()
}

// ObserveFrame records render time of one frame
func (m *Metrics) ObserveFrame(d time.Duration) {
	m.frameSeconds.Observe(d.Seconds())
}

// ObservePick has the pick.Observer signature
func (m *Metrics) ObservePick(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.picks.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) recordPublished(recordType string) {
	m.records.WithLabelValues(recordType).Inc()
}

func (m *Metrics) setClients(n int) {
	m.clients.Set(float64(n))
}

// Handler serves the registry in the exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
