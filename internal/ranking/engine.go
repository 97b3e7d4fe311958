// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package ranking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CandidateSource supplies candidate pools. It is consumed, not implemented,
// by the core; calls may fail transiently and such failures are propagated to
// the caller unretried.
type CandidateSource interface {
	// TopByGenres returns items matching the given genre affinity vector.
	TopByGenres(ctx context.Context, genres GenreVector, limit int) ([]Item, error)

	// PopularByAgeBand returns items popular with the given age band.
	PopularByAgeBand(ctx context.Context, band AgeBand, limit int) ([]Item, error)

	// Trending returns items currently trending platform-wide.
	Trending(ctx context.Context, limit int) ([]Item, error)

	// EditorialPicks returns editorially curated items.
	EditorialPicks(ctx context.Context, limit int) ([]Item, error)

	// Sponsored returns sponsored candidates, score-relevant order.
	Sponsored(ctx context.Context, limit int) ([]Item, error)
}

// Result is the output of one personalization run.
type Result struct {
	// Buckets is the ordered list of output sections.
	Buckets []Bucket `json:"buckets"`

	// Diversity is the informational diagnostic from the diversity pass.
	Diversity DiversityReport `json:"diversity"`

	// Metadata carries timing and audit information.
	Metadata ResultMetadata `json:"metadata"`
}

// ResultMetadata carries timing and audit information for a run.
type ResultMetadata struct {
	// RequestID is the unique identifier for tracing.
	RequestID string `json:"request_id"`

	// UserID is the user the result is for.
	UserID string `json:"user_id"`

	// Candidates is the number of deduplicated candidates considered.
	Candidates int `json:"candidates"`

	// Eligible is the number of candidates that passed the safety gate.
	Eligible int `json:"eligible"`

	// LatencyMS is the total pipeline latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// Timestamp is when the result was generated.
	Timestamp time.Time `json:"timestamp"`
}

// Engine runs the personalization pipeline: candidate merge, eligibility
// filtering, scoring, diversity, sponsored allocation and bucket assembly.
//
// An Engine is immutable after construction and holds no per-call state, so
// it is safe for concurrent use. Reconfigure returns a new Engine rather than
// mutating a live one.
type Engine struct {
	cfg       Config
	source    CandidateSource
	lookup    ItemLookup
	filter    *EligibilityFilter
	scorer    *Scorer
	diversity *DiversityPass
	allocator *SponsoredAllocator
	logger    zerolog.Logger
}

// NewEngine creates an engine from the given config and collaborators.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg Config, source CandidateSource, lookup ItemLookup, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if source == nil {
		return nil, fmt.Errorf("candidate source not set")
	}

	engineLogger := logger.With().Str("component", "ranking").Logger()
	return &Engine{
		cfg:       cfg,
		source:    source,
		lookup:    lookup,
		filter:    NewEligibilityFilter(cfg.ModerationThreshold),
		scorer:    NewScorer(cfg, lookup, logger),
		diversity: NewDiversityPass(cfg.Diversity, cfg.MaxResults),
		allocator: NewSponsoredAllocator(cfg.MaxSponsoredPerList),
		logger:    engineLogger,
	}, nil
}

// Config returns a copy of the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Reconfigure returns a new engine running the current config with the
// overlay applied. The receiver is unchanged, so in-flight calls keep their
// config snapshot.
func (e *Engine) Reconfigure(overlay ConfigOverlay) (*Engine, error) {
	return NewEngine(e.cfg.Overlay(overlay), e.source, e.lookup, e.logger)
}

// WithClock returns a copy of the engine whose scorer uses the given clock.
func (e *Engine) WithClock(clock func() time.Time) *Engine {
	out := *e
	out.scorer = e.scorer.WithClock(clock)
	return &out
}

// Recommend runs the full pipeline for one user and returns the output
// buckets. Source failures are propagated unretried; partial results are
// never fabricated.
func (e *Engine) Recommend(ctx context.Context, user UserContext, history UserHistory) (*Result, error) {
	start := time.Now()
	requestID := uuid.NewString()
	logger := e.logger.With().
		Str("request_id", requestID).
		Str("user_id", user.UserID).
		Str("age_band", user.AgeBand.String()).
		Logger()

	if !user.AgeBand.Valid() {
		return nil, fmt.Errorf("invalid age band %d", user.AgeBand)
	}

	pools, err := e.gatherCandidates(ctx, &user)
	if err != nil {
		return nil, err
	}

	eligible := e.filterPools(pools, &user)

	personalized := e.scorer.ScoreItems(eligible.personalized, &user, &history)
	popular := e.scorer.ScoreItems(eligible.popular, &user, &history)
	trending := e.scorer.ScoreItems(eligible.trending, &user, &history)
	sponsored := e.scorer.ScoreItems(eligible.sponsored, &user, &history)

	diversified, report := e.diversity.Diversify(personalized)
	if report.Shortfall() {
		// Informational only; the output is served as-is.
		logger.Warn().
			Int("distinct_genres", report.DistinctGenres).
			Bool("min_genres_met", report.MinGenresMet).
			Bool("low_intensity_met", report.LowIntensityMet).
			Msg("diversity shortfall")
	}

	withSponsored := e.allocator.InjectSponsored(diversified, sponsored)

	buckets := OrganizeBuckets(
		withSponsored,
		capItems(popular, e.cfg.MaxResults),
		capItems(trending, e.cfg.MaxResults),
		capItems(sponsored, e.cfg.MaxSponsoredPerList),
	)

	result := &Result{
		Buckets:   buckets,
		Diversity: report,
		Metadata: ResultMetadata{
			RequestID:  requestID,
			UserID:     user.UserID,
			Candidates: pools.total,
			Eligible:   eligible.total(),
			LatencyMS:  time.Since(start).Milliseconds(),
			Timestamp:  time.Now(),
		},
	}

	logger.Debug().
		Int("candidates", pools.total).
		Int("eligible", eligible.total()).
		Int("buckets", len(buckets)).
		Int64("latency_ms", result.Metadata.LatencyMS).
		Msg("recommendation complete")

	return result, nil
}

// candidatePools holds the per-section candidate lists after the
// merge-with-dedup step.
type candidatePools struct {
	personalized []Item
	popular      []Item
	trending     []Item
	sponsored    []Item
	total        int
}

func (p *candidatePools) count() int {
	return len(p.personalized) + len(p.popular) + len(p.trending) + len(p.sponsored)
}

// gatherCandidates pulls every source and deduplicates by id, first-seen
// wins. Personalized candidates merge the genre-matched and editorial pools;
// the popular, trending and sponsored pools stay section-local but still
// drop internal duplicates.
func (e *Engine) gatherCandidates(ctx context.Context, user *UserContext) (*candidatePools, error) {
	limit := e.cfg.SourceLimit

	byGenre, err := e.source.TopByGenres(ctx, user.Genres, limit)
	if err != nil {
		return nil, fmt.Errorf("top by genres: %w", err)
	}
	editorial, err := e.source.EditorialPicks(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("editorial picks: %w", err)
	}
	popular, err := e.source.PopularByAgeBand(ctx, user.AgeBand, limit)
	if err != nil {
		return nil, fmt.Errorf("popular by age band: %w", err)
	}
	trending, err := e.source.Trending(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("trending: %w", err)
	}
	sponsored, err := e.source.Sponsored(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("sponsored: %w", err)
	}

	pools := &candidatePools{
		personalized: dedupeItems(byGenre, editorial),
		popular:      dedupeItems(popular),
		trending:     dedupeItems(trending),
		sponsored:    dedupeItems(sponsored),
	}
	pools.total = pools.count()
	return pools, nil
}

// eligiblePools holds the candidate pools after the safety gate.
type eligiblePools struct {
	personalized []Item
	popular      []Item
	trending     []Item
	sponsored    []Item
}

func (p *eligiblePools) total() int {
	return len(p.personalized) + len(p.popular) + len(p.trending) + len(p.sponsored)
}

// filterPools applies the eligibility gate to every pool. Sponsored items go
// through the same filter as organic ones.
func (e *Engine) filterPools(pools *candidatePools, user *UserContext) *eligiblePools {
	return &eligiblePools{
		personalized: e.filter.FilterEligible(pools.personalized, user),
		popular:      e.filter.FilterEligible(pools.popular, user),
		trending:     e.filter.FilterEligible(pools.trending, user),
		sponsored:    e.filter.FilterEligible(pools.sponsored, user),
	}
}

// dedupeItems concatenates the given lists dropping duplicate ids,
// first-seen wins.
func dedupeItems(lists ...[]Item) []Item {
	seen := make(map[string]struct{})
	var out []Item
	for _, list := range lists {
		for i := range list {
			if _, dup := seen[list[i].ID]; dup {
				continue
			}
			seen[list[i].ID] = struct{}{}
			out = append(out, list[i])
		}
	}
	return out
}

func capItems(items []ScoredItem, n int) []ScoredItem {
	if len(items) > n {
		return items[:n]
	}
	return items
}
