/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// DispatchTotal counts dispatch calls by outcome (scheduled, infeasible,
	// invalid_input, error).
	DispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracksmith_dispatch_total",
		Help: "Dispatch calls by outcome.",
	}, []string{"outcome"})

	// DispatchDuration observes wall time of dispatch calls.
	DispatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tracksmith_dispatch_duration_seconds",
		Help:    "Wall time of dispatch calls.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	})

	// DispatchActivities observes input sizes, the driver of search cost.
	DispatchActivities = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tracksmith_dispatch_activities",
		Help:    "Number of activities per dispatch call.",
		Buckets: prometheus.LinearBuckets(1, 4, 10),
	})

	// APIRequestsTotal counts HTTP requests.
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracksmith_api_requests_total",
		Help: "HTTP requests by method, endpoint and status.",
	}, []string{"method", "endpoint", "status"})

	// APIRequestDuration observes HTTP request latency.
	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tracksmith_api_request_duration_seconds",
		Help:    "HTTP request latency by method, endpoint and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})

	// APIActiveConnections gauges in-flight HTTP requests.
	APIActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tracksmith_api_active_connections",
		Help: "In-flight HTTP requests.",
	})
)

// Handler exposes the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
