// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package charts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/playforge/gamerank/internal/ranking"
)

// flakySource fails every call until healed.
type flakySource struct {
	healthy bool
	calls   int
}

func (f *flakySource) ItemsFor(_ context.Context, _ ranking.AgeBand, _ string) ([]string, error) {
	f.calls++
	if !f.healthy {
		return nil, errors.New("upstream down")
	}
	return []string{"a"}, nil
}

func (f *flakySource) MetricsFor(_ context.Context, _ string, _ ranking.AgeBand, _ string) (Metrics, error) {
	f.calls++
	if !f.healthy {
		return Metrics{}, errors.New("upstream down")
	}
	return Metrics{Plays7D: 1}, nil
}

func TestBreakerSourcePassthrough(t *testing.T) {
	t.Parallel()

	source := NewBreakerSource(&flakySource{healthy: true}, BreakerSettings{})

	ids, err := source.ItemsFor(context.Background(), ranking.AgeBand13Plus, "web")
	if err != nil {
		t.Fatalf("ItemsFor: %v", err)
	}
	if len(ids) != 1 || ids[0] != "a" {
		t.Errorf("ids = %v, want [a]", ids)
	}

	m, err := source.MetricsFor(context.Background(), "a", ranking.AgeBand13Plus, "web")
	if err != nil {
		t.Fatalf("MetricsFor: %v", err)
	}
	if m.Plays7D != 1 {
		t.Errorf("Plays7D = %d, want 1", m.Plays7D)
	}
}

func TestBreakerSourceOpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	upstream := &flakySource{}
	source := NewBreakerSource(upstream, BreakerSettings{MaxFailures: 3, OpenTimeout: time.Minute})

	for i := 0; i < 3; i++ {
		if _, err := source.ItemsFor(context.Background(), ranking.AgeBand13Plus, "web"); err == nil {
			t.Fatal("expected failure")
		}
	}

	callsBefore := upstream.calls
	_, err := source.ItemsFor(context.Background(), ranking.AgeBand13Plus, "web")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("got %v, want ErrOpenState", err)
	}
	if upstream.calls != callsBefore {
		t.Error("open breaker still reached the upstream")
	}
}

func TestBreakerSourceIndependentPerCall(t *testing.T) {
	t.Parallel()

	// Tripping the items breaker must not open the metrics breaker.
	upstream := &flakySource{}
	source := NewBreakerSource(upstream, BreakerSettings{MaxFailures: 2, OpenTimeout: time.Minute})

	for i := 0; i < 3; i++ {
		source.ItemsFor(context.Background(), ranking.AgeBand13Plus, "web") //nolint:errcheck
	}

	upstream.healthy = true
	if _, err := source.MetricsFor(context.Background(), "a", ranking.AgeBand13Plus, "web"); err != nil {
		t.Errorf("metrics breaker tripped by items failures: %v", err)
	}
}

func TestThrottledSourcePassthrough(t *testing.T) {
	t.Parallel()

	source := NewThrottledSource(&flakySource{healthy: true}, 1000, 10)

	ids, err := source.ItemsFor(context.Background(), ranking.AgeBandUnder9, "web")
	if err != nil {
		t.Fatalf("ItemsFor: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("got %d ids, want 1", len(ids))
	}
}

func TestThrottledSourceRespectsCancellation(t *testing.T) {
	t.Parallel()

	// Rate so low the second call would wait far beyond the deadline.
	source := NewThrottledSource(&flakySource{healthy: true}, 0.001, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := source.ItemsFor(ctx, ranking.AgeBandUnder9, "web"); err != nil {
		t.Fatalf("first call should use the burst token: %v", err)
	}
	if _, err := source.MetricsFor(ctx, "a", ranking.AgeBandUnder9, "web"); err == nil {
		t.Error("expected context error while throttled")
	}
}
