// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package ranking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// mockSource is a test double for CandidateSource.
type mockSource struct {
	byGenre   []Item
	popular   []Item
	trending  []Item
	editorial []Item
	sponsored []Item
	err       error
	errOn     string
}

func (m *mockSource) TopByGenres(_ context.Context, _ GenreVector, _ int) ([]Item, error) {
	if m.errOn == "top_by_genres" {
		return nil, m.err
	}
	return m.byGenre, nil
}

func (m *mockSource) PopularByAgeBand(_ context.Context, _ AgeBand, _ int) ([]Item, error) {
	if m.errOn == "popular" {
		return nil, m.err
	}
	return m.popular, nil
}

func (m *mockSource) Trending(_ context.Context, _ int) ([]Item, error) {
	if m.errOn == "trending" {
		return nil, m.err
	}
	return m.trending, nil
}

func (m *mockSource) EditorialPicks(_ context.Context, _ int) ([]Item, error) {
	if m.errOn == "editorial" {
		return nil, m.err
	}
	return m.editorial, nil
}

func (m *mockSource) Sponsored(_ context.Context, _ int) ([]Item, error) {
	if m.errOn == "sponsored" {
		return nil, m.err
	}
	return m.sponsored, nil
}

func cleanItem(id string, band AgeBand, genres GenreVector) Item {
	return Item{
		ID:              id,
		MinAgeBand:      band,
		ModerationScore: 0.95,
		Genres:          genres,
		ReleasedAt:      testNow.AddDate(-1, 0, 0),
		CreatedAt:       testNow.AddDate(-1, 0, 0),
	}
}

func newTestEngine(t *testing.T, cfg Config, source CandidateSource, lookup ItemLookup) *Engine {
	t.Helper()
	engine, err := NewEngine(cfg, source, lookup, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine.WithClock(func() time.Time { return testNow })
}

func TestRecommendEndToEnd(t *testing.T) {
	t.Parallel()

	sponsoredItem := cleanItem("spon-1", AgeBandUnder9, GenreVector{"party": 1})
	sponsoredItem.Sponsored = true
	sponsoredItem.SponsoredSpend = 500

	unsafe := cleanItem("unsafe", AgeBandUnder9, GenreVector{"puzzle": 1})
	unsafe.ModerationScore = 0.2

	voiceChat := cleanItem("voice", AgeBandUnder9, GenreVector{"social": 1})
	voiceChat.Features = []Feature{FeatureVoiceChat}

	source := &mockSource{
		byGenre: []Item{
			cleanItem("puzzle-1", AgeBandUnder9, GenreVector{"puzzle": 1}),
			cleanItem("puzzle-2", AgeBandUnder9, GenreVector{"puzzle": 0.8}),
			unsafe,
			voiceChat,
		},
		editorial: []Item{
			// Duplicate of a genre-matched candidate; first seen wins.
			cleanItem("puzzle-1", AgeBandUnder9, GenreVector{"puzzle": 1}),
			cleanItem("edit-1", AgeBandUnder9, GenreVector{"adventure": 1}),
		},
		popular:   []Item{cleanItem("pop-1", AgeBandUnder9, GenreVector{"racing": 1})},
		trending:  []Item{cleanItem("trend-1", AgeBandUnder9, GenreVector{"sports": 1})},
		sponsored: []Item{sponsoredItem},
	}

	engine := newTestEngine(t, DefaultConfig(), source, mapLookup{})
	user := UserContext{UserID: "user-1", AgeBand: AgeBand9To12, Genres: GenreVector{"puzzle": 1}}

	result, err := engine.Recommend(context.Background(), user, UserHistory{})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if result.Metadata.RequestID == "" {
		t.Error("missing request id")
	}
	if result.Metadata.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", result.Metadata.UserID)
	}

	// 8 distinct candidates arrive (puzzle-1 deduplicated); unsafe and voice
	// fail the gate.
	if result.Metadata.Candidates != 8 {
		t.Errorf("Candidates = %d, want 8", result.Metadata.Candidates)
	}
	if result.Metadata.Eligible != 6 {
		t.Errorf("Eligible = %d, want 6", result.Metadata.Eligible)
	}

	// All four buckets are populated and in fixed order.
	if len(result.Buckets) != 4 {
		t.Fatalf("got %d buckets, want 4", len(result.Buckets))
	}
	wantOrder := []BucketID{BucketRecommended, BucketPopularByAge, BucketNewAndTrending, BucketSponsored}
	for i, want := range wantOrder {
		if result.Buckets[i].ID != want {
			t.Errorf("bucket %d: got %q, want %q", i, result.Buckets[i].ID, want)
		}
	}

	// Rejected items never surface anywhere, sponsored included.
	for _, b := range result.Buckets {
		for _, id := range b.Games {
			if id == "unsafe" || id == "voice" {
				t.Errorf("ineligible item %q surfaced in bucket %q", id, b.ID)
			}
		}
	}

	// The sponsored candidate is interleaved into the recommended bucket.
	var found bool
	for _, id := range result.Buckets[0].Games {
		if id == "spon-1" {
			found = true
		}
	}
	if !found {
		t.Errorf("sponsored item not interleaved: %v", result.Buckets[0].Games)
	}
}

func TestRecommendSourceErrorPropagates(t *testing.T) {
	t.Parallel()

	sourceErr := errors.New("backend down")
	for _, errOn := range []string{"top_by_genres", "editorial", "popular", "trending", "sponsored"} {
		t.Run(errOn, func(t *testing.T) {
			t.Parallel()

			engine := newTestEngine(t, DefaultConfig(), &mockSource{err: sourceErr, errOn: errOn}, mapLookup{})
			user := UserContext{UserID: "u", AgeBand: AgeBand13Plus}

			_, err := engine.Recommend(context.Background(), user, UserHistory{})
			if !errors.Is(err, sourceErr) {
				t.Errorf("error not propagated, got %v", err)
			}
		})
	}
}

func TestRecommendInvalidAgeBand(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, DefaultConfig(), &mockSource{}, mapLookup{})
	user := UserContext{UserID: "u", AgeBand: AgeBand(42)}

	if _, err := engine.Recommend(context.Background(), user, UserHistory{}); err == nil {
		t.Fatal("expected error for invalid age band")
	}
}

func TestRecommendAgeGateStrict(t *testing.T) {
	t.Parallel()

	source := &mockSource{
		byGenre: []Item{
			cleanItem("kids", AgeBandUnder9, GenreVector{"puzzle": 1}),
			cleanItem("teens", AgeBand13Plus, GenreVector{"puzzle": 1}),
		},
	}
	engine := newTestEngine(t, DefaultConfig(), source, mapLookup{})
	user := UserContext{UserID: "u", AgeBand: AgeBandUnder9, Genres: GenreVector{"puzzle": 1}}

	result, err := engine.Recommend(context.Background(), user, UserHistory{})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	for _, b := range result.Buckets {
		for _, id := range b.Games {
			if id == "teens" {
				t.Error("13_plus item shown to under_9 user")
			}
		}
	}
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.MaxResults = 0

	if _, err := NewEngine(cfg, &mockSource{}, mapLookup{}, zerolog.Nop()); err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestNewEngineRequiresSource(t *testing.T) {
	t.Parallel()

	if _, err := NewEngine(DefaultConfig(), nil, mapLookup{}, zerolog.Nop()); err == nil {
		t.Fatal("expected error for nil source")
	}
}

func TestReconfigureReturnsNewEngine(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, DefaultConfig(), &mockSource{}, mapLookup{})

	threshold := 0.99
	updated, err := engine.Reconfigure(ConfigOverlay{ModerationThreshold: &threshold})
	if err != nil {
		t.Fatalf("Reconfigure: %v", err)
	}

	if updated == engine {
		t.Fatal("Reconfigure returned the same engine")
	}
	if updated.Config().ModerationThreshold != 0.99 {
		t.Errorf("new threshold = %f, want 0.99", updated.Config().ModerationThreshold)
	}
	if engine.Config().ModerationThreshold != 0.8 {
		t.Errorf("original engine mutated: threshold = %f", engine.Config().ModerationThreshold)
	}
}

func TestReconfigureRejectsInvalidOverlay(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, DefaultConfig(), &mockSource{}, mapLookup{})

	bad := -1.0
	if _, err := engine.Reconfigure(ConfigOverlay{ModerationThreshold: &bad}); err == nil {
		t.Fatal("expected error for invalid overlay")
	}

	if engine.Config().ModerationThreshold != 0.8 {
		t.Error("failed reconfigure mutated the engine")
	}
}

func TestRecommendDeterministicOrder(t *testing.T) {
	t.Parallel()

	// Equal-scoring items must come back in id order, run after run.
	source := &mockSource{
		byGenre: []Item{
			cleanItem("zebra", AgeBandUnder9, GenreVector{"puzzle": 1}),
			cleanItem("apple", AgeBandUnder9, GenreVector{"puzzle": 1}),
			cleanItem("mango", AgeBandUnder9, GenreVector{"puzzle": 1}),
		},
	}
	engine := newTestEngine(t, DefaultConfig(), source, mapLookup{})
	user := UserContext{UserID: "u", AgeBand: AgeBand13Plus, Genres: GenreVector{"puzzle": 1}}

	first, err := engine.Recommend(context.Background(), user, UserHistory{})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	second, err := engine.Recommend(context.Background(), user, UserHistory{})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	got := strings.Join(first.Buckets[0].Games, ",")
	want := "apple,mango,zebra"
	if got != want {
		t.Errorf("order = %q, want %q", got, want)
	}
	if again := strings.Join(second.Buckets[0].Games, ","); again != got {
		t.Errorf("second run order %q differs from first %q", again, got)
	}
}
