// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SimulationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payoff_simulations_total",
			Help: "Total number of payoff simulations run",
		},
		[]string{"strategy"},
	)

	SimulationsCapped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payoff_simulations_capped_total",
			Help: "Simulations that stopped at the period cap with balance left",
		},
		[]string{"strategy"},
	)

	SimulationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payoff_simulation_duration_seconds",
			Help:    "Duration of payoff simulations in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
		[]string{"strategy"},
	)

	HealthScoresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "health_scores_total",
			Help: "Financial health scores computed, by resulting level",
		},
		[]string{"level"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payoff_cache_lookups_total",
			Help: "Simulation cache lookups by result",
		},
		[]string{"result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP request latency in seconds",
		},
		[]string{"route"},
	)
)
