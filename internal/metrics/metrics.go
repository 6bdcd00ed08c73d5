package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	submissions  *prometheus.CounterVec
	hashFetch    *prometheus.HistogramVec
	sessions     prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_submissions_total",
			Help: "Checkout submit attempts by outcome",
		}, []string{"outcome"}),
		hashFetch: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "checkout_hash_fetch_duration_seconds",
			Help:    "Latency of hash backend calls",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"result"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "checkout_sessions_active",
			Help: "Checkout sessions currently held in memory",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, path and status",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),
	}
	reg.MustRegister(m.submissions, m.hashFetch, m.sessions, m.httpRequests, m.httpDuration)
	return m
}

func (m *Metrics) Submission(outcome string) {
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) HashFetch(ok bool, d time.Duration) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.hashFetch.WithLabelValues(result).Observe(d.Seconds())
}

func (m *Metrics) SessionsActive(n int) {
	m.sessions.Set(float64(n))
}

func (m *Metrics) Request(method, path string, status int, d time.Duration) {
	class := strconv.Itoa(status/100) + "xx"
	m.httpRequests.WithLabelValues(method, path, class).Inc()
	m.httpDuration.WithLabelValues(method, path, class).Observe(d.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
