// Package metrics holds Prometheus instruments that are used across the
// service.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Submit attempts by outcome (accepted or rejected).",
		}, []string{"outcome"})

	ValidationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_validation_errors_total",
			Help: "Field errors reported on rejected submit attempts.",
		}, []string{"field"})

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "contact_active_sessions",
			Help: "Number of form sessions currently held in memory.",
		})

	SessionEvictTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_session_evict_total",
			Help: "Sessions dropped from memory, by reason (idle or lru).",
		}, []string{"reason"})

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route pattern, and status code.",
		}, []string{"method", "route", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"})
)

func init() {
	prometheus.MustRegister(
		SubmissionsTotal,
		ValidationErrorsTotal,
		ActiveSessions,
		SessionEvictTotal,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}
