// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

// Package metrics provides Prometheus instrumentation for the ranking
// pipeline, the chart ranker and the HTTP surface.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ranking pipeline metrics.

	RankingRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"status"}, // "ok", "error"
	)

	RankingRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ranking_request_duration_seconds",
			Help:    "End-to-end personalization pipeline duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	DiversityShortfallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_diversity_shortfalls_total",
			Help: "Total number of informational diversity shortfalls",
		},
		[]string{"check"}, // "min_genres", "low_intensity"
	)

	// Chart metrics.

	ChartBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chart_build_duration_seconds",
			Help:    "Chart computation duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"kind"},
	)

	ChartBuildErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chart_build_errors_total",
			Help: "Total number of failed chart computations",
		},
		[]string{"kind"},
	)

	ChartRefreshLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chart_refresh_last_success_timestamp",
			Help: "Unix timestamp of the last fully successful chart refresh",
		},
	)

	// API metrics.

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)
)

// ObserveAPIRequest records one completed API request.
func ObserveAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// ObserveChartBuild records one chart computation.
func ObserveChartBuild(kind string, duration time.Duration, err error) {
	if err != nil {
		ChartBuildErrorsTotal.WithLabelValues(kind).Inc()
		return
	}
	ChartBuildDuration.WithLabelValues(kind).Observe(duration.Seconds())
}
