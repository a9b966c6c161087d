package app

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/molpadia/ytmusic-gateway/internal/domain/entity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "ytmusic_gateway"

// Metrics collects request and catalog metrics of the API.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	UpstreamTotal    *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates the metrics and registers them to the registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		UpstreamTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "catalog",
				Name:      "calls_total",
				Help:      "Total number of catalog calls by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		UpstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "catalog",
				Name:      "call_duration_seconds",
				Help:      "Catalog call duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		gatherer: reg,
	}
	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.UpstreamTotal, m.UpstreamDuration)
	return m
}

// Handler serves the registered metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unknown"
		if cr := mux.CurrentRoute(r); cr != nil {
			if tpl, err := cr.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.RequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Outcome is "success" or the fault kind of the error.
func (m *Metrics) observeUpstream(op string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := statusSuccess
	if err != nil {
		outcome = string(entity.KindOf(err))
	}
	m.UpstreamTotal.WithLabelValues(op, outcome).Inc()
	m.UpstreamDuration.WithLabelValues(op).Observe(d.Seconds())
}
