// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package charts

import (
	"math"
	"time"
)

// upAndComingWindowDays bounds how old a release may be for the up-and-coming
// chart.
const upAndComingWindowDays = 30.0

// ratedConfidenceScale is the reaction count at which rating confidence
// saturates at 1.0.
const ratedConfidenceScale = 1000

// score computes the kind-specific scalar for one item. The second return is
// false when the item does not qualify for the chart and must be skipped.
//
//nolint:gocritic // Metrics passed by value, formulas are pure
func score(kind Kind, m Metrics, genre string, now time.Time) (float64, bool) {
	switch kind {
	case KindTopTrending:
		return trendingScore(m), true

	case KindUpAndComing:
		days := now.Sub(m.ReleasedAt).Hours() / 24
		if days < 0 {
			days = 0
		}
		if days > upAndComingWindowDays {
			return 0, false
		}
		return 0.4*(1-days/upAndComingWindowDays) + 0.6*math.Log1p(float64(m.Plays30D)), true

	case KindTopPlayingNow:
		return float64(m.CurrentSessions), true

	case KindTopReplayed:
		if m.UniquePlayers == 0 {
			return 0, false
		}
		return float64(m.TotalSessions) / float64(m.UniquePlayers), true

	case KindTopEarning:
		return m.TotalRevenue, true

	case KindTopRated:
		reactions := m.Likes + m.Dislikes
		if reactions == 0 {
			return 0, false
		}
		balance := float64(m.Likes-m.Dislikes) / float64(reactions)
		confidence := math.Log1p(float64(reactions)) / math.Log(ratedConfidenceScale)
		if confidence > 1 {
			confidence = 1
		}
		return balance * confidence, true

	case KindTrendingInGenre:
		if _, ok := m.Genres[genre]; !ok {
			return 0, false
		}
		return trendingScore(m), true

	default:
		return 0, false
	}
}

// trendingScore is week-over-week growth; with no previous-week plays the raw
// current-week count stands in.
//
//nolint:gocritic // Metrics passed by value, formulas are pure
func trendingScore(m Metrics) float64 {
	if m.PrevPlays7D == 0 {
		return float64(m.Plays7D)
	}
	return float64(m.Plays7D-m.PrevPlays7D) / float64(m.PrevPlays7D)
}
