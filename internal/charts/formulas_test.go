// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package charts

import (
	"math"
	"testing"
	"time"

	"github.com/playforge/gamerank/internal/ranking"
)

var chartNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func TestTrendingScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    Metrics
		want float64
	}{
		{"growth", Metrics{Plays7D: 150, PrevPlays7D: 100}, 0.5},
		{"decline", Metrics{Plays7D: 50, PrevPlays7D: 100}, -0.5},
		{"flat", Metrics{Plays7D: 100, PrevPlays7D: 100}, 0},
		{"no previous week uses raw count", Metrics{Plays7D: 42, PrevPlays7D: 0}, 42},
		{"dead item", Metrics{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := trendingScore(tt.m); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("trendingScore() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestScoreUpAndComing(t *testing.T) {
	t.Parallel()

	t.Run("fresh release", func(t *testing.T) {
		t.Parallel()

		m := Metrics{ReleasedAt: chartNow.AddDate(0, 0, -15), Plays30D: 100}
		got, ok := score(KindUpAndComing, m, "", chartNow)
		if !ok {
			t.Fatal("fresh release skipped")
		}
		want := 0.4*0.5 + 0.6*math.Log1p(100)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("score = %f, want %f", got, want)
		}
	})

	t.Run("release outside window skipped", func(t *testing.T) {
		t.Parallel()

		m := Metrics{ReleasedAt: chartNow.AddDate(0, 0, -31), Plays30D: 1000}
		if _, ok := score(KindUpAndComing, m, "", chartNow); ok {
			t.Error("item older than the window must be skipped")
		}
	})

	t.Run("future release clamps to day zero", func(t *testing.T) {
		t.Parallel()

		m := Metrics{ReleasedAt: chartNow.AddDate(0, 0, 2), Plays30D: 0}
		got, ok := score(KindUpAndComing, m, "", chartNow)
		if !ok {
			t.Fatal("future release skipped")
		}
		if math.Abs(got-0.4) > 1e-12 {
			t.Errorf("score = %f, want 0.4", got)
		}
	})
}

func TestScoreSkipSemantics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		kind   Kind
		m      Metrics
		genre  string
		wantOK bool
	}{
		{"replayed with players", KindTopReplayed, Metrics{TotalSessions: 30, UniquePlayers: 10}, "", true},
		{"replayed with no players skipped", KindTopReplayed, Metrics{TotalSessions: 30}, "", false},
		{"rated with reactions", KindTopRated, Metrics{Likes: 10, Dislikes: 2}, "", true},
		{"rated with no reactions skipped", KindTopRated, Metrics{}, "", false},
		{"in genre match", KindTrendingInGenre, Metrics{Plays7D: 5, Genres: ranking.GenreVector{"puzzle": 1}}, "puzzle", true},
		{"in genre miss skipped", KindTrendingInGenre, Metrics{Plays7D: 5, Genres: ranking.GenreVector{"racing": 1}}, "puzzle", false},
		{"playing now never skips", KindTopPlayingNow, Metrics{}, "", true},
		{"earning never skips", KindTopEarning, Metrics{}, "", true},
		{"trending never skips", KindTopTrending, Metrics{}, "", true},
		{"unknown kind", Kind(99), Metrics{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, ok := score(tt.kind, tt.m, tt.genre, chartNow); ok != tt.wantOK {
				t.Errorf("score(%v) qualified = %v, want %v", tt.kind, ok, tt.wantOK)
			}
		})
	}
}

func TestScoreValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		kind Kind
		m    Metrics
		want float64
	}{
		{"playing now is raw sessions", KindTopPlayingNow, Metrics{CurrentSessions: 123}, 123},
		{"earning is raw revenue", KindTopEarning, Metrics{TotalRevenue: 9999.5}, 9999.5},
		{"replay ratio", KindTopReplayed, Metrics{TotalSessions: 50, UniquePlayers: 10}, 5},
		{
			name: "rated balance with confidence",
			kind: KindTopRated,
			m:    Metrics{Likes: 90, Dislikes: 10},
			want: 0.8 * (math.Log1p(100) / math.Log(1000)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := score(tt.kind, tt.m, "", chartNow)
			if !ok {
				t.Fatal("item unexpectedly skipped")
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("score = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds() {
		parsed, err := ParseKind(kind.String())
		if err != nil {
			t.Errorf("ParseKind(%q): %v", kind.String(), err)
			continue
		}
		if parsed != kind {
			t.Errorf("ParseKind(%q) = %v, want %v", kind.String(), parsed, kind)
		}
	}

	if _, err := ParseKind("top_nonsense"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
