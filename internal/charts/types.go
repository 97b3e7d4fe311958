// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package charts

import (
	"context"
	"time"

	"github.com/playforge/gamerank/internal/ranking"
)

// Kind identifies one of the seven chart formulas.
type Kind int

const (
	// KindTopTrending ranks by week-over-week play growth.
	KindTopTrending Kind = iota
	// KindUpAndComing ranks recently released games by freshness and plays.
	KindUpAndComing
	// KindTopPlayingNow ranks by current session count.
	KindTopPlayingNow
	// KindTopReplayed ranks by sessions per unique player.
	KindTopReplayed
	// KindTopEarning ranks by total revenue.
	KindTopEarning
	// KindTopRated ranks by confidence-damped like/dislike balance.
	KindTopRated
	// KindTrendingInGenre is KindTopTrending restricted to one genre.
	KindTrendingInGenre
)

// String returns the wire identifier for the chart kind.
func (k Kind) String() string {
	switch k {
	case KindTopTrending:
		return "top_trending"
	case KindUpAndComing:
		return "up_and_coming"
	case KindTopPlayingNow:
		return "top_playing_now"
	case KindTopReplayed:
		return "top_replayed"
	case KindTopEarning:
		return "top_earning"
	case KindTopRated:
		return "top_rated"
	case KindTrendingInGenre:
		return "trending_in_genre"
	default:
		return "unknown"
	}
}

// ParseKind parses a wire identifier into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "top_trending":
		return KindTopTrending, nil
	case "up_and_coming":
		return KindUpAndComing, nil
	case "top_playing_now":
		return KindTopPlayingNow, nil
	case "top_replayed":
		return KindTopReplayed, nil
	case "top_earning":
		return KindTopEarning, nil
	case "top_rated":
		return KindTopRated, nil
	case "trending_in_genre":
		return KindTrendingInGenre, nil
	default:
		return 0, ErrUnknownKind
	}
}

// Kinds lists every chart kind.
func Kinds() []Kind {
	return []Kind{
		KindTopTrending,
		KindUpAndComing,
		KindTopPlayingNow,
		KindTopReplayed,
		KindTopEarning,
		KindTopRated,
		KindTrendingInGenre,
	}
}

// Metrics holds the aggregated, privacy-safe counters a chart formula needs
// for one item. Zero values are meaningful (the formulas guard the divisions
// that need it), so all fields are explicit.
type Metrics struct {
	// Plays7D and PrevPlays7D are plays in the current and previous 7-day
	// windows.
	Plays7D     int64 `json:"plays_7d"`
	PrevPlays7D int64 `json:"prev_plays_7d"`

	// Plays30D is plays in the trailing 30-day window.
	Plays30D int64 `json:"plays_30d"`

	// CurrentSessions is the number of sessions active right now.
	CurrentSessions int64 `json:"current_sessions"`

	// TotalSessions and UniquePlayers feed the replay ratio.
	TotalSessions int64 `json:"total_sessions"`
	UniquePlayers int64 `json:"unique_players"`

	// TotalRevenue is the revenue attributed to the item.
	TotalRevenue float64 `json:"total_revenue"`

	// Likes and Dislikes are aggregate reaction counts.
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`

	// ReleasedAt is the item's release date.
	ReleasedAt time.Time `json:"released_at"`

	// Genres is the item's genre vector, used by the genre-scoped chart.
	Genres ranking.GenreVector `json:"genres"`
}

// Entry is one row of a computed chart.
type Entry struct {
	// ItemID is the game identifier.
	ItemID string `json:"item_id"`

	// Score is the kind-specific scalar score.
	Score float64 `json:"score"`

	// Rank is the 1-based contiguous position after sorting.
	Rank int `json:"rank"`
}

// MetricsSource supplies the age/platform-scoped candidate set and per-item
// metrics. Both calls may fail transiently; failures propagate to the caller,
// who owns retry policy.
type MetricsSource interface {
	// ItemsFor returns the candidate item ids for the given scope.
	ItemsFor(ctx context.Context, band ranking.AgeBand, platform string) ([]string, error)

	// MetricsFor returns the metrics for one item in the given scope.
	MetricsFor(ctx context.Context, itemID string, band ranking.AgeBand, platform string) (Metrics, error)
}
