package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	// HTTPRequestsTotal tracks total HTTP requests by method, path and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks HTTP request duration
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "path"},
	)
)

// Ingest metrics
var (
	// CandidatesIngestedTotal tracks ingested discovery candidates by outcome
	CandidatesIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candidates_ingested_total",
			Help: "Total number of ingested discovery candidates by outcome",
		},
		[]string{"source", "outcome"}, // outcome: "accepted", "skipped", "rejected"
	)

	// CandidatesRecommendedTotal tracks candidates annotated by attribution rules
	CandidatesRecommendedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "candidates_recommended_total",
			Help: "Total number of candidates matched by an attribution rule",
		},
	)
)

// Confirmation workflow metrics
var (
	// ConfirmationsTotal tracks confirmation decisions by result
	ConfirmationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "confirmations_total",
			Help: "Total number of confirmation decisions",
		},
		[]string{"decision", "result"}, // decision: "confirm", "ignore"; result: "ok", "error"
	)

	// ConfirmationDuration tracks time to process a confirmation
	ConfirmationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "confirmation_duration_seconds",
			Help:    "Confirmation processing duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)
)

// Dependency graph metrics
var (
	// DependencyEdgesTotal tracks dependency edge mutations by operation
	DependencyEdgesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dependency_edges_total",
			Help: "Total number of dependency edge mutations",
		},
		[]string{"operation", "result"}, // operation: "add", "remove", "cascade"
	)
)

// Inventory gauges, refreshed by the background stats refresher
var (
	// AssetsByLayer tracks confirmed assets per architectural layer
	AssetsByLayer = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "assets_by_layer",
			Help: "Number of confirmed assets per architectural layer",
		},
		[]string{"layer"},
	)

	// AssetsByType tracks confirmed assets per asset type
	AssetsByType = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "assets_by_type",
			Help: "Number of confirmed assets per asset type",
		},
		[]string{"type"},
	)

	// PendingAssets tracks candidates awaiting confirmation
	PendingAssets = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pending_assets",
			Help: "Number of candidate assets awaiting confirmation",
		},
	)

	// StatsRefreshLag tracks time since the last stats refresh cycle
	StatsRefreshLag = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stats_refresh_lag_seconds",
			Help: "Time since last inventory stats refresh in seconds",
		},
	)
)
