// Package observability exposes Prometheus metrics for the scoring daemon.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	scoresComputed    *prometheus.CounterVec
	scoringDuration   prometheus.Histogram
	collectorFailures prometheus.Counter
	persistWarnings   *prometheus.CounterVec
	lastOverall       *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		scoresComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scores_computed_total",
			Help: "Total compliance scores computed, by resulting status band.",
		}, []string{"status"}),
		scoringDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scoring_duration_seconds",
			Help:    "Histogram of end-to-end scoring run durations.",
			Buckets: prometheus.DefBuckets,
		}),
		collectorFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "collector_failures_total",
			Help: "Total signal collection runs that aborted with an error.",
		}),
		persistWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "persist_warnings_total",
			Help: "Total non-fatal persistence failures, by sink.",
		}, []string{"sink"}),
		lastOverall: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "last_overall_score",
			Help: "Most recently computed overall score per organization.",
		}, []string{"org"}),
	}

	prometheus.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.scoresComputed,
		m.scoringDuration,
		m.collectorFailures,
		m.persistWarnings,
		m.lastOverall,
	)

	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// WrapHandler records request counts and latency for one route.
func (m *Metrics) WrapHandler(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		duration := time.Since(start).Seconds()
		if m != nil {
			m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
			m.httpDuration.WithLabelValues(route).Observe(duration)
		}
	})
}

// Handler serves the Prometheus exposition endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

// ScoreComputed records one completed scoring run.
func (m *Metrics) ScoreComputed(orgID, status string, overall int, duration time.Duration) {
	if m == nil {
		return
	}
	m.scoresComputed.WithLabelValues(status).Inc()
	m.scoringDuration.Observe(duration.Seconds())
	m.lastOverall.WithLabelValues(orgID).Set(float64(overall))
}

// CollectorFailure records an aborted signal collection run.
func (m *Metrics) CollectorFailure() {
	if m == nil {
		return
	}
	m.collectorFailures.Inc()
}

// PersistWarning records a non-fatal persistence failure in the named sink.
func (m *Metrics) PersistWarning(sink string) {
	if m == nil {
		return
	}
	m.persistWarnings.WithLabelValues(sink).Inc()
}
