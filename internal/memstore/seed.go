// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package memstore

import (
	"time"

	"github.com/playforge/gamerank/internal/charts"
	"github.com/playforge/gamerank/internal/ranking"
)

// Seed loads a small demo catalog so the server is usable out of the box.
func Seed(s *Store, now time.Time) {
	games := []ranking.Item{
		{
			ID:              "game-blockcraft",
			Title:           "Blockcraft Builders",
			MinAgeBand:      ranking.AgeBandUnder9,
			ModerationScore: 0.97,
			ReleasedAt:      now.AddDate(-2, 0, 0),
			CreatedAt:       now.AddDate(-2, -1, 0),
			Genres:          ranking.GenreVector{"sandbox": 1, "creative": 0.8},
			Features:        []ranking.Feature{ranking.FeatureSinglePlayer, ranking.FeatureMultiplayer, ranking.FeatureLowIntensity},
			PlaysByAgeBand:  map[ranking.AgeBand]int64{ranking.AgeBandUnder9: 52000, ranking.AgeBand9To12: 44000, ranking.AgeBand13Plus: 9000},
			Engagement:      ranking.Engagement{Sessions: 410000, UniquePlayers: 96000, CurrentSessions: 3100, Revenue: 82000, Likes: 41000, Dislikes: 2100, TotalPlays: 505000},
		},
		{
			ID:              "game-kartdash",
			Title:           "Kart Dash Grand Prix",
			MinAgeBand:      ranking.AgeBandUnder9,
			ModerationScore: 0.94,
			ReleasedAt:      now.AddDate(0, -3, 0),
			CreatedAt:       now.AddDate(0, -4, 0),
			Genres:          ranking.GenreVector{"racing": 1, "arcade": 0.6},
			Features:        []ranking.Feature{ranking.FeatureMultiplayer},
			PlaysByAgeBand:  map[ranking.AgeBand]int64{ranking.AgeBandUnder9: 33000, ranking.AgeBand9To12: 51000, ranking.AgeBand13Plus: 20000},
			Engagement:      ranking.Engagement{Sessions: 280000, UniquePlayers: 70000, CurrentSessions: 5200, Revenue: 140000, Likes: 30000, Dislikes: 4100, TotalPlays: 390000},
		},
		{
			ID:              "game-puzzlegrove",
			Title:           "Puzzle Grove",
			MinAgeBand:      ranking.AgeBand9To12,
			ModerationScore: 0.99,
			ReleasedAt:      now.AddDate(0, 0, -12),
			CreatedAt:       now.AddDate(0, 0, -20),
			Genres:          ranking.GenreVector{"puzzle": 1, "creative": 0.4},
			Features:        []ranking.Feature{ranking.FeatureSinglePlayer, ranking.FeatureLowIntensity},
			PlaysByAgeBand:  map[ranking.AgeBand]int64{ranking.AgeBand9To12: 18000, ranking.AgeBand13Plus: 6000},
			Engagement:      ranking.Engagement{Sessions: 52000, UniquePlayers: 23000, CurrentSessions: 800, Revenue: 9000, Likes: 6100, Dislikes: 300, TotalPlays: 64000},
		},
		{
			ID:              "game-squadarena",
			Title:           "Squad Arena",
			MinAgeBand:      ranking.AgeBand13Plus,
			ModerationScore: 0.9,
			ReleasedAt:      now.AddDate(-1, 0, 0),
			CreatedAt:       now.AddDate(-1, -2, 0),
			Genres:          ranking.GenreVector{"shooter": 1, "arcade": 0.5},
			Features:        []ranking.Feature{ranking.FeatureMultiplayer, ranking.FeatureVoiceChat, ranking.FeatureTextChat},
			PlaysByAgeBand:  map[ranking.AgeBand]int64{ranking.AgeBand13Plus: 88000},
			Engagement:      ranking.Engagement{Sessions: 610000, UniquePlayers: 120000, CurrentSessions: 9400, Revenue: 510000, Likes: 72000, Dislikes: 11000, TotalPlays: 730000},
		},
		{
			ID:              "game-petparade",
			Title:           "Pet Parade",
			MinAgeBand:      ranking.AgeBandUnder9,
			ModerationScore: 0.98,
			ReleasedAt:      now.AddDate(0, 0, -6),
			CreatedAt:       now.AddDate(0, 0, -9),
			Sponsored:       true,
			SponsoredSpend:  2500,
			Genres:          ranking.GenreVector{"simulation": 1, "creative": 0.3},
			Features:        []ranking.Feature{ranking.FeatureSinglePlayer, ranking.FeatureLowIntensity},
			PlaysByAgeBand:  map[ranking.AgeBand]int64{ranking.AgeBandUnder9: 12000, ranking.AgeBand9To12: 8000},
			Engagement:      ranking.Engagement{Sessions: 30000, UniquePlayers: 16000, CurrentSessions: 600, Revenue: 4000, Likes: 3600, Dislikes: 250, TotalPlays: 36000},
		},
		{
			ID:              "game-dungeondepths",
			Title:           "Dungeon Depths",
			MinAgeBand:      ranking.AgeBand9To12,
			ModerationScore: 0.92,
			ReleasedAt:      now.AddDate(0, -1, 0),
			CreatedAt:       now.AddDate(0, -1, -10),
			Genres:          ranking.GenreVector{"adventure": 1, "rpg": 0.9},
			Features:        []ranking.Feature{ranking.FeatureMultiplayer, ranking.FeatureTextChat},
			PlaysByAgeBand:  map[ranking.AgeBand]int64{ranking.AgeBand9To12: 27000, ranking.AgeBand13Plus: 31000},
			Engagement:      ranking.Engagement{Sessions: 150000, UniquePlayers: 41000, CurrentSessions: 2500, Revenue: 65000, Likes: 19000, Dislikes: 2400, TotalPlays: 195000},
		},
	}

	for _, g := range games {
		s.Put(g)
	}
	s.SetEditorial([]string{"game-puzzlegrove", "game-blockcraft"})

	s.PutMetrics("game-kartdash", charts.Metrics{
		Plays7D: 24000, PrevPlays7D: 15000, Plays30D: 82000,
		CurrentSessions: 5200, TotalSessions: 280000, UniquePlayers: 70000,
		TotalRevenue: 140000, Likes: 30000, Dislikes: 4100,
		ReleasedAt: now.AddDate(0, -3, 0),
		Genres:     ranking.GenreVector{"racing": 1, "arcade": 0.6},
	})
	s.PutMetrics("game-puzzlegrove", charts.Metrics{
		Plays7D: 9000, PrevPlays7D: 0, Plays30D: 14000,
		CurrentSessions: 800, TotalSessions: 52000, UniquePlayers: 23000,
		TotalRevenue: 9000, Likes: 6100, Dislikes: 300,
		ReleasedAt: now.AddDate(0, 0, -12),
		Genres:     ranking.GenreVector{"puzzle": 1, "creative": 0.4},
	})
}
