// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package ranking

import "fmt"

// Config contains all weights and thresholds for the ranking pipeline.
// A Config is never mutated in place: reconfiguring an engine produces a new
// engine instance so in-flight computations observe a single snapshot.
type Config struct {
	// Weights defines the multiplier applied to each scoring signal.
	Weights SignalWeights `json:"weights" koanf:"weights"`

	// ModerationThreshold is the minimum moderation score in [0, 1] an item
	// must carry to be eligible.
	ModerationThreshold float64 `json:"moderation_threshold" koanf:"moderation_threshold"`

	// RecencyDecayDays is the e-folding time of the release recency boost.
	RecencyDecayDays float64 `json:"recency_decay_days" koanf:"recency_decay_days"`

	// CreationGracePeriodDays is the window after creation during which the
	// creation recency penalty is at full strength.
	CreationGracePeriodDays float64 `json:"creation_grace_period_days" koanf:"creation_grace_period_days"`

	// CreationPenaltyMaxDays is the age at which the creation recency penalty
	// decays to zero. Must exceed CreationGracePeriodDays.
	CreationPenaltyMaxDays float64 `json:"creation_penalty_max_days" koanf:"creation_penalty_max_days"`

	// SponsoredAmountMultiplier converts sponsored spend into score boost.
	SponsoredAmountMultiplier float64 `json:"sponsored_amount_multiplier" koanf:"sponsored_amount_multiplier"`

	// MaxSponsoredBoost caps the sponsored boost signal.
	MaxSponsoredBoost float64 `json:"max_sponsored_boost" koanf:"max_sponsored_boost"`

	// MaxResults is the maximum length of the diversified list.
	MaxResults int `json:"max_results" koanf:"max_results"`

	// MaxSponsoredPerList bounds how many sponsored items are interleaved.
	MaxSponsoredPerList int `json:"max_sponsored_per_list" koanf:"max_sponsored_per_list"`

	// Diversity contains the fairness constraints enforced after scoring.
	Diversity DiversityRules `json:"diversity" koanf:"diversity"`

	// SourceLimit is how many candidates are requested from each source.
	SourceLimit int `json:"source_limit" koanf:"source_limit"`
}

// SignalWeights defines the multiplier for each named scoring signal.
// Penalty weights are subtracted, all others added.
type SignalWeights struct {
	GenreAffinity          float64 `json:"genre_affinity" koanf:"genre_affinity"`
	AgeBandPopularity      float64 `json:"age_band_popularity" koanf:"age_band_popularity"`
	EngagementSimilarity   float64 `json:"engagement_similarity" koanf:"engagement_similarity"`
	FavouriteAffinity      float64 `json:"favourite_affinity" koanf:"favourite_affinity"`
	CommunityRating        float64 `json:"community_rating" koanf:"community_rating"`
	RecencyBoost           float64 `json:"recency_boost" koanf:"recency_boost"`
	SponsoredBoost         float64 `json:"sponsored_boost" koanf:"sponsored_boost"`
	RepetitionPenalty      float64 `json:"repetition_penalty" koanf:"repetition_penalty"`
	CreationRecencyPenalty float64 `json:"creation_recency_penalty" koanf:"creation_recency_penalty"`
}

// ToMap returns the weights as a string-keyed map for logging and auditing.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w SignalWeights) ToMap() map[string]float64 {
	return map[string]float64{
		"genre_affinity":           w.GenreAffinity,
		"age_band_popularity":      w.AgeBandPopularity,
		"engagement_similarity":    w.EngagementSimilarity,
		"favourite_affinity":       w.FavouriteAffinity,
		"community_rating":         w.CommunityRating,
		"recency_boost":            w.RecencyBoost,
		"sponsored_boost":          w.SponsoredBoost,
		"repetition_penalty":       w.RepetitionPenalty,
		"creation_recency_penalty": w.CreationRecencyPenalty,
	}
}

// DiversityRules contains the fairness constraints applied by the diversity
// pass. MinGenres and RequireLowIntensity are informational checks; MaxPerGenre
// and AvoidAllMultiplayer are hard admission rules.
type DiversityRules struct {
	// MinGenres is the minimum number of distinct genres the diversified
	// list should span. A shortfall is reported, never enforced.
	MinGenres int `json:"min_genres" koanf:"min_genres"`

	// MaxPerGenre caps how many admitted items may declare any one genre.
	MaxPerGenre int `json:"max_per_genre" koanf:"max_per_genre"`

	// RequireLowIntensity asks for at least one low-intensity item.
	// A shortfall is reported, never enforced.
	RequireLowIntensity bool `json:"require_low_intensity" koanf:"require_low_intensity"`

	// AvoidAllMultiplayer prevents the list from being entirely multiplayer.
	AvoidAllMultiplayer bool `json:"avoid_all_multiplayer" koanf:"avoid_all_multiplayer"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() Config {
	return Config{
		Weights: SignalWeights{
			GenreAffinity:          0.25,
			AgeBandPopularity:      0.15,
			EngagementSimilarity:   0.15,
			FavouriteAffinity:      0.10,
			CommunityRating:        0.15,
			RecencyBoost:           0.10,
			SponsoredBoost:         0.10,
			RepetitionPenalty:      0.20,
			CreationRecencyPenalty: 0.15,
		},
		ModerationThreshold:       0.8,
		RecencyDecayDays:          30,
		CreationGracePeriodDays:   7,
		CreationPenaltyMaxDays:    60,
		SponsoredAmountMultiplier: 0.001,
		MaxSponsoredBoost:         2.0,
		MaxResults:                20,
		MaxSponsoredPerList:       3,
		Diversity: DiversityRules{
			MinGenres:           3,
			MaxPerGenre:         5,
			RequireLowIntensity: true,
			AvoidAllMultiplayer: true,
		},
		SourceLimit: 100,
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c Config) Validate() error {
	if c.ModerationThreshold < 0 || c.ModerationThreshold > 1 {
		return fmt.Errorf("moderation_threshold must be in [0, 1], got %f", c.ModerationThreshold)
	}
	if c.RecencyDecayDays <= 0 {
		return fmt.Errorf("recency_decay_days must be positive, got %f", c.RecencyDecayDays)
	}
	if c.CreationGracePeriodDays < 0 {
		return fmt.Errorf("creation_grace_period_days must be non-negative, got %f", c.CreationGracePeriodDays)
	}
	if c.CreationPenaltyMaxDays <= c.CreationGracePeriodDays {
		return fmt.Errorf("creation_penalty_max_days must exceed creation_grace_period_days, got %f <= %f",
			c.CreationPenaltyMaxDays, c.CreationGracePeriodDays)
	}
	if c.SponsoredAmountMultiplier < 0 {
		return fmt.Errorf("sponsored_amount_multiplier must be non-negative, got %f", c.SponsoredAmountMultiplier)
	}
	if c.MaxSponsoredBoost < 0 {
		return fmt.Errorf("max_sponsored_boost must be non-negative, got %f", c.MaxSponsoredBoost)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be positive, got %d", c.MaxResults)
	}
	if c.MaxSponsoredPerList < 0 {
		return fmt.Errorf("max_sponsored_per_list must be non-negative, got %d", c.MaxSponsoredPerList)
	}
	if c.Diversity.MinGenres < 0 {
		return fmt.Errorf("diversity.min_genres must be non-negative, got %d", c.Diversity.MinGenres)
	}
	if c.Diversity.MaxPerGenre < 1 {
		return fmt.Errorf("diversity.max_per_genre must be positive, got %d", c.Diversity.MaxPerGenre)
	}
	if c.SourceLimit < 1 {
		return fmt.Errorf("source_limit must be positive, got %d", c.SourceLimit)
	}
	return nil
}

// Overlay returns a copy of the config with the non-zero fields of the given
// overlay applied. The receiver is unchanged.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (c Config) Overlay(o ConfigOverlay) Config {
	out := c
	if o.Weights != nil {
		out.Weights = *o.Weights
	}
	if o.ModerationThreshold != nil {
		out.ModerationThreshold = *o.ModerationThreshold
	}
	if o.MaxResults != nil {
		out.MaxResults = *o.MaxResults
	}
	if o.MaxSponsoredPerList != nil {
		out.MaxSponsoredPerList = *o.MaxSponsoredPerList
	}
	if o.Diversity != nil {
		out.Diversity = *o.Diversity
	}
	return out
}

// ConfigOverlay carries optional replacements for reconfiguration. Nil fields
// keep the current value.
type ConfigOverlay struct {
	Weights             *SignalWeights  `json:"weights,omitempty"`
	ModerationThreshold *float64        `json:"moderation_threshold,omitempty"`
	MaxResults          *int            `json:"max_results,omitempty"`
	MaxSponsoredPerList *int            `json:"max_sponsored_per_list,omitempty"`
	Diversity           *DiversityRules `json:"diversity,omitempty"`
}
