// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/playforge/gamerank/internal/charts"
	"github.com/playforge/gamerank/internal/metrics"
	"github.com/playforge/gamerank/internal/ranking"
)

// Refresher recomputes the configured chart grid on an interval. It
// implements suture.Service via Serve.
type Refresher struct {
	ranker    *charts.Ranker
	store     *Store
	interval  time.Duration
	limit     int
	platforms []string
	logger    zerolog.Logger
}

// NewRefresher creates a refresher covering every non-genre chart kind for
// every age band and the given platforms.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefresher(ranker *charts.Ranker, store *Store, interval time.Duration, limit int, platforms []string, logger zerolog.Logger) *Refresher {
	return &Refresher{
		ranker:    ranker,
		store:     store,
		interval:  interval,
		limit:     limit,
		platforms: platforms,
		logger:    logger.With().Str("component", "chart-refresher").Logger(),
	}
}

// Serve refreshes immediately, then on every tick until the context ends.
func (r *Refresher) Serve(ctx context.Context) error {
	r.refreshAll(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.refreshAll(ctx)
		}
	}
}

// refreshAll recomputes every chart in the grid. A failed chart is logged and
// skipped; the rest of the grid still refreshes.
func (r *Refresher) refreshAll(ctx context.Context) {
	start := time.Now()
	var failed int

	for _, band := range ranking.AgeBands() {
		for _, platform := range r.platforms {
			for _, kind := range charts.Kinds() {
				if kind == charts.KindTrendingInGenre {
					// Genre-scoped charts are computed on demand; the genre
					// space is unbounded.
					continue
				}
				if err := r.refreshOne(ctx, kind, band, platform); err != nil {
					failed++
					r.logger.Warn().
						Err(err).
						Str("kind", kind.String()).
						Str("age_band", band.String()).
						Str("platform", platform).
						Msg("chart refresh failed")
				}
				if ctx.Err() != nil {
					return
				}
			}
		}
	}

	if failed == 0 {
		metrics.ChartRefreshLastSuccess.SetToCurrentTime()
	}
	r.logger.Info().
		Int("charts", r.store.Len()).
		Int("failed", failed).
		Dur("elapsed", time.Since(start)).
		Msg("chart refresh complete")
}

func (r *Refresher) refreshOne(ctx context.Context, kind charts.Kind, band ranking.AgeBand, platform string) error {
	start := time.Now()
	entries, err := r.ranker.Generate(ctx, kind, band, platform, r.limit)
	metrics.ObserveChartBuild(kind.String(), time.Since(start), err)
	if err != nil {
		return err
	}

	r.store.Put(ChartKey{Kind: kind, AgeBand: band, Platform: platform}, entries, time.Now())
	return nil
}
