// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launchpos_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "launchpos_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	GateRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launchpos_gate_rejections_total",
		Help: "Authentication gate rejections by failure code.",
	}, []string{"code"})

	EmailJobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launchpos_email_jobs_total",
		Help: "Async email jobs by kind and outcome.",
	}, []string{"kind", "outcome"})
)
