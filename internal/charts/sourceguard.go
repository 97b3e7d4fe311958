// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package charts

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/playforge/gamerank/internal/ranking"
)

// BreakerSettings configures the circuit breaker around a metrics source.
type BreakerSettings struct {
	// Name labels the breaker in logs and errors.
	Name string

	// MaxFailures is the consecutive failure count that opens the breaker.
	MaxFailures uint32

	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// BreakerSource wraps a MetricsSource with a circuit breaker. When the
// upstream fails repeatedly the breaker opens and calls fail fast; either way
// the failure surfaces to the caller as a wrapped error, never as a
// fabricated partial result.
type BreakerSource struct {
	next    MetricsSource
	items   *gobreaker.CircuitBreaker[[]string]
	metrics *gobreaker.CircuitBreaker[Metrics]
}

// NewBreakerSource wraps next with a circuit breaker.
func NewBreakerSource(next MetricsSource, settings BreakerSettings) *BreakerSource {
	if settings.Name == "" {
		settings.Name = "chart-metrics"
	}
	if settings.MaxFailures == 0 {
		settings.MaxFailures = 5
	}
	if settings.OpenTimeout == 0 {
		settings.OpenTimeout = 30 * time.Second
	}

	trip := func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= settings.MaxFailures
	}

	return &BreakerSource{
		next: next,
		items: gobreaker.NewCircuitBreaker[[]string](gobreaker.Settings{
			Name:        settings.Name + "-items",
			Timeout:     settings.OpenTimeout,
			ReadyToTrip: trip,
		}),
		metrics: gobreaker.NewCircuitBreaker[Metrics](gobreaker.Settings{
			Name:        settings.Name + "-metrics",
			Timeout:     settings.OpenTimeout,
			ReadyToTrip: trip,
		}),
	}
}

// ItemsFor implements MetricsSource.
func (s *BreakerSource) ItemsFor(ctx context.Context, band ranking.AgeBand, platform string) ([]string, error) {
	ids, err := s.items.Execute(func() ([]string, error) {
		return s.next.ItemsFor(ctx, band, platform)
	})
	if err != nil {
		return nil, fmt.Errorf("chart items fetch: %w", err)
	}
	return ids, nil
}

// MetricsFor implements MetricsSource.
func (s *BreakerSource) MetricsFor(ctx context.Context, itemID string, band ranking.AgeBand, platform string) (Metrics, error) {
	m, err := s.metrics.Execute(func() (Metrics, error) {
		return s.next.MetricsFor(ctx, itemID, band, platform)
	})
	if err != nil {
		return Metrics{}, fmt.Errorf("chart metrics fetch: %w", err)
	}
	return m, nil
}

// ThrottledSource wraps a MetricsSource with a token-bucket rate limiter so
// chart recomputation cannot overwhelm the upstream metrics API. Waiting
// respects context cancellation.
type ThrottledSource struct {
	next    MetricsSource
	limiter *rate.Limiter
}

// NewThrottledSource wraps next, allowing perSecond fetches with the given
// burst.
func NewThrottledSource(next MetricsSource, perSecond float64, burst int) *ThrottledSource {
	return &ThrottledSource{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// ItemsFor implements MetricsSource.
func (s *ThrottledSource) ItemsFor(ctx context.Context, band ranking.AgeBand, platform string) ([]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("throttle wait: %w", err)
	}
	return s.next.ItemsFor(ctx, band, platform)
}

// MetricsFor implements MetricsSource.
func (s *ThrottledSource) MetricsFor(ctx context.Context, itemID string, band ranking.AgeBand, platform string) (Metrics, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return Metrics{}, fmt.Errorf("throttle wait: %w", err)
	}
	return s.next.MetricsFor(ctx, itemID, band, platform)
}

// Interface checks.
var (
	_ MetricsSource = (*BreakerSource)(nil)
	_ MetricsSource = (*ThrottledSource)(nil)
)
