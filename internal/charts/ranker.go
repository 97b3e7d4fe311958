// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package charts

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/playforge/gamerank/internal/ranking"
)

// Caller errors. Both fail fast with no partial computation.
var (
	// ErrUnknownKind is returned for an unrecognized chart kind.
	ErrUnknownKind = errors.New("unknown chart kind")

	// ErrMissingGenre is returned when the genre-scoped chart is requested
	// without a genre id.
	ErrMissingGenre = errors.New("genre id required for genre-scoped chart")
)

// defaultConcurrency bounds metric fetch fan-out when the caller does not
// choose a limit.
const defaultConcurrency = 8

// Ranker computes algorithmic charts from aggregated metrics. It is
// independent of the personalization pipeline: scores come purely from the
// MetricsSource, scoped by age band and platform.
//
// Metric fetches fan out concurrently up to the configured limit; fetch
// completion order never affects the final ranking because results are sorted
// by score with a deterministic tie-break on item id.
type Ranker struct {
	source      MetricsSource
	concurrency int
	logger      zerolog.Logger

	// clock is injected for deterministic tests.
	clock func() time.Time
}

// NewRanker creates a ranker over the given metrics source. concurrency <= 0
// selects the default fan-out limit.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRanker(source MetricsSource, concurrency int, logger zerolog.Logger) *Ranker {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Ranker{
		source:      source,
		concurrency: concurrency,
		logger:      logger.With().Str("component", "charts").Logger(),
		clock:       time.Now,
	}
}

// WithClock returns a copy of the ranker using the given clock.
func (r *Ranker) WithClock(clock func() time.Time) *Ranker {
	out := *r
	out.clock = clock
	return &out
}

// Generate computes the chart of the given kind for an age band and platform,
// sliced to limit. KindTrendingInGenre requires GenerateInGenre and returns
// ErrMissingGenre here.
func (r *Ranker) Generate(ctx context.Context, kind Kind, band ranking.AgeBand, platform string, limit int) ([]Entry, error) {
	if kind == KindTrendingInGenre {
		return nil, ErrMissingGenre
	}
	return r.generate(ctx, kind, band, platform, "", limit)
}

// GenerateInGenre computes the genre-scoped trending chart.
func (r *Ranker) GenerateInGenre(ctx context.Context, band ranking.AgeBand, platform, genre string, limit int) ([]Entry, error) {
	if genre == "" {
		return nil, ErrMissingGenre
	}
	return r.generate(ctx, KindTrendingInGenre, band, platform, genre, limit)
}

func (r *Ranker) generate(ctx context.Context, kind Kind, band ranking.AgeBand, platform, genre string, limit int) ([]Entry, error) {
	if kind < KindTopTrending || kind > KindTrendingInGenre {
		return nil, ErrUnknownKind
	}
	if limit < 1 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	start := r.clock()
	ids, err := r.source.ItemsFor(ctx, band, platform)
	if err != nil {
		return nil, fmt.Errorf("items for %s/%s: %w", band, platform, err)
	}

	scored, err := r.scoreAll(ctx, kind, band, platform, genre, ids)
	if err != nil {
		return nil, err
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].ItemID < scored[j].ItemID
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	for i := range scored {
		scored[i].Rank = i + 1
	}

	r.logger.Debug().
		Str("kind", kind.String()).
		Str("age_band", band.String()).
		Str("platform", platform).
		Int("candidates", len(ids)).
		Int("entries", len(scored)).
		Dur("elapsed", r.clock().Sub(start)).
		Msg("chart generated")

	return scored, nil
}

// scoreAll fetches metrics for every candidate with bounded concurrency and
// applies the kind's formula. A single failed fetch fails the whole chart:
// partial results are never fabricated.
func (r *Ranker) scoreAll(ctx context.Context, kind Kind, band ranking.AgeBand, platform, genre string, ids []string) ([]Entry, error) {
	now := r.clock()

	type slot struct {
		entry Entry
		ok    bool
	}
	slots := make([]slot, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			m, err := r.source.MetricsFor(gctx, id, band, platform)
			if err != nil {
				return fmt.Errorf("metrics for %s: %w", id, err)
			}
			s, ok := score(kind, m, genre, now)
			slots[i] = slot{entry: Entry{ItemID: id, Score: s}, ok: ok}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Collapse in candidate order; ordering is settled by the sort anyway.
	entries := make([]Entry, 0, len(ids))
	for i := range slots {
		if slots[i].ok {
			entries = append(entries, slots[i].entry)
		}
	}
	return entries, nil
}
