// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package ranking

import (
	"fmt"
	"math"
	"time"
)

// AgeBand is a coarse, totally ordered age classification for users and items.
// Bands are compared by ordinal position, never by raw age or string identity.
type AgeBand int

const (
	// AgeBandUnder9 covers users under 9 years old.
	AgeBandUnder9 AgeBand = iota
	// AgeBand9To12 covers users aged 9 to 12.
	AgeBand9To12
	// AgeBand13Plus covers users aged 13 and above.
	AgeBand13Plus
)

// String returns the wire identifier for the age band.
func (b AgeBand) String() string {
	switch b {
	case AgeBandUnder9:
		return "under_9"
	case AgeBand9To12:
		return "9_12"
	case AgeBand13Plus:
		return "13_plus"
	default:
		return "unknown"
	}
}

// Valid reports whether the band is one of the three known bands.
func (b AgeBand) Valid() bool {
	return b >= AgeBandUnder9 && b <= AgeBand13Plus
}

// AtLeast reports whether this band is ordered at or above other.
// All age gating goes through this comparison.
func (b AgeBand) AtLeast(other AgeBand) bool {
	return b >= other
}

// ParseAgeBand parses a wire identifier into an AgeBand.
func ParseAgeBand(s string) (AgeBand, error) {
	switch s {
	case "under_9":
		return AgeBandUnder9, nil
	case "9_12":
		return AgeBand9To12, nil
	case "13_plus":
		return AgeBand13Plus, nil
	default:
		return 0, fmt.Errorf("unknown age band %q", s)
	}
}

// AgeBands lists all bands in ascending order.
func AgeBands() []AgeBand {
	return []AgeBand{AgeBandUnder9, AgeBand9To12, AgeBand13Plus}
}

// GenreVector is a sparse mapping from genre identifier to a non-negative
// weight. An absent key means weight zero.
type GenreVector map[string]float64

// Magnitude returns the Euclidean norm of the vector.
func (v GenreVector) Magnitude() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity between two genre vectors over the
// union of their keys. Returns 0 if either vector has zero magnitude.
func (v GenreVector) Cosine(other GenreVector) float64 {
	magA := v.Magnitude()
	magB := other.Magnitude()
	if magA == 0 || magB == 0 {
		return 0
	}

	var dot float64
	for genre, w := range v {
		dot += w * other[genre]
	}
	return dot / (magA * magB)
}

// Clone returns a deep copy of the vector.
func (v GenreVector) Clone() GenreVector {
	if v == nil {
		return nil
	}
	out := make(GenreVector, len(v))
	for genre, w := range v {
		out[genre] = w
	}
	return out
}

// Feature identifies a gameplay capability from the fixed platform vocabulary.
type Feature string

const (
	// FeatureVoiceChat marks games with live voice communication.
	FeatureVoiceChat Feature = "voice_chat"
	// FeatureTextChat marks games with live text communication.
	FeatureTextChat Feature = "text_chat"
	// FeatureMultiplayer marks games playable with other users.
	FeatureMultiplayer Feature = "multiplayer"
	// FeatureSinglePlayer marks games playable alone.
	FeatureSinglePlayer Feature = "single_player"
	// FeatureLowIntensity marks calm, low-stimulation games.
	FeatureLowIntensity Feature = "low_intensity"
)

// Engagement holds pre-aggregated, privacy-safe engagement counters for a game.
type Engagement struct {
	// Sessions is the all-time session count.
	Sessions int64 `json:"sessions"`

	// UniquePlayers is the all-time distinct player count.
	UniquePlayers int64 `json:"unique_players"`

	// CurrentSessions is the number of sessions active right now.
	CurrentSessions int64 `json:"current_sessions"`

	// Revenue is the total revenue attributed to the game.
	Revenue float64 `json:"revenue"`

	// Likes and Dislikes are aggregate reaction counts.
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`

	// TotalPlays is the all-time play count.
	TotalPlays int64 `json:"total_plays"`
}

// Item is a game in the catalog together with the metadata the ranking
// pipeline needs. All fields are pre-aggregated; no per-event data.
type Item struct {
	// ID is the opaque game identifier.
	ID string `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// MinAgeBand is the minimum age band required to view the game.
	MinAgeBand AgeBand `json:"min_age_band"`

	// ModerationScore is the moderation confidence in [0, 1].
	// Higher means safer.
	ModerationScore float64 `json:"moderation_score"`

	// ReleasedAt is the public release date.
	ReleasedAt time.Time `json:"released_at"`

	// CreatedAt is when the game record was created on the platform.
	CreatedAt time.Time `json:"created_at"`

	// Sponsored marks paid placements.
	Sponsored bool `json:"sponsored"`

	// SponsoredSpend is the sponsorship spend amount (>= 0).
	SponsoredSpend float64 `json:"sponsored_spend"`

	// Genres maps genre identifiers to relevance weights.
	Genres GenreVector `json:"genres"`

	// Features is the declared gameplay feature set.
	Features []Feature `json:"features"`

	// PlaysByAgeBand counts plays per age band.
	PlaysByAgeBand map[AgeBand]int64 `json:"plays_by_age_band"`

	// Engagement holds aggregate engagement counters.
	Engagement Engagement `json:"engagement"`
}

// HasFeature reports whether the item declares the given feature.
func (i *Item) HasFeature(f Feature) bool {
	for _, have := range i.Features {
		if have == f {
			return true
		}
	}
	return false
}

// UserContext carries the non-PII request context for personalization.
// It holds no timestamps and no identity-linked history.
type UserContext struct {
	// UserID is an opaque, non-PII identifier.
	UserID string `json:"user_id"`

	// AgeBand is the user's coarse age classification.
	AgeBand AgeBand `json:"age_band"`

	// Platform is the client platform (web, mobile, console).
	Platform string `json:"platform"`

	// Genres is the user's genre affinity vector.
	Genres GenreVector `json:"genres"`
}

// UserHistory holds aggregated item-id lists describing past engagement.
type UserHistory struct {
	// LongPlayed lists item ids the user played for extended sessions.
	LongPlayed []string `json:"long_played"`

	// Liked lists item ids the user reacted positively to.
	Liked []string `json:"liked"`

	// Favourited lists item ids the user explicitly favourited.
	Favourited []string `json:"favourited"`

	// HeavilyPlayed is the set of item ids played past the repetition
	// threshold; scoring penalizes these to encourage variety.
	HeavilyPlayed map[string]struct{} `json:"-"`

	// HeavilyPlayedIDs is the JSON-serializable form of HeavilyPlayed.
	HeavilyPlayedIDs []string `json:"heavily_played,omitempty"`
}

// HeavilyPlayedSet returns the heavily-played set, building it from
// HeavilyPlayedIDs when the map form is absent.
func (h *UserHistory) HeavilyPlayedSet() map[string]struct{} {
	if h.HeavilyPlayed != nil {
		return h.HeavilyPlayed
	}
	if len(h.HeavilyPlayedIDs) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(h.HeavilyPlayedIDs))
	for _, id := range h.HeavilyPlayedIDs {
		set[id] = struct{}{}
	}
	return set
}

// Breakdown records every signal's raw contribution to a composite score.
// Positive signals and penalties are stored unweighted so that a score is
// always reproducible as the weighted sum of its own breakdown under the
// active config.
type Breakdown struct {
	GenreAffinity          float64 `json:"genre_affinity"`
	AgeBandPopularity      float64 `json:"age_band_popularity"`
	EngagementSimilarity   float64 `json:"engagement_similarity"`
	FavouriteAffinity      float64 `json:"favourite_affinity"`
	CommunityRating        float64 `json:"community_rating"`
	RecencyBoost           float64 `json:"recency_boost"`
	SponsoredBoost         float64 `json:"sponsored_boost"`
	RepetitionPenalty      float64 `json:"repetition_penalty"`
	CreationRecencyPenalty float64 `json:"creation_recency_penalty"`
}

// WeightedTotal recomputes the composite score from the breakdown under the
// given weights. ScoredItem.Score always equals this value.
func (b Breakdown) WeightedTotal(w SignalWeights) float64 {
	positive := w.GenreAffinity*b.GenreAffinity +
		w.AgeBandPopularity*b.AgeBandPopularity +
		w.EngagementSimilarity*b.EngagementSimilarity +
		w.FavouriteAffinity*b.FavouriteAffinity +
		w.CommunityRating*b.CommunityRating +
		w.RecencyBoost*b.RecencyBoost +
		w.SponsoredBoost*b.SponsoredBoost

	penalty := w.RepetitionPenalty*b.RepetitionPenalty +
		w.CreationRecencyPenalty*b.CreationRecencyPenalty

	return positive - penalty
}

// ScoredItem pairs an item with its composite score and signal breakdown.
type ScoredItem struct {
	// Item is the scored game.
	Item Item `json:"item"`

	// Score is the composite relevance score.
	Score float64 `json:"score"`

	// Breakdown is the per-signal decomposition of Score.
	Breakdown Breakdown `json:"breakdown"`
}

// BucketID identifies an output section.
type BucketID string

const (
	// BucketRecommended is the personalized section.
	BucketRecommended BucketID = "recommended_for_you"
	// BucketPopularByAge is the popular-with-age-peers section.
	BucketPopularByAge BucketID = "popular_by_age"
	// BucketNewAndTrending is the discovery section.
	BucketNewAndTrending BucketID = "new_and_trending"
	// BucketSponsored is the paid placements section.
	BucketSponsored BucketID = "sponsored_events"
)

// Bucket is a named, ordered output section of game identifiers. Buckets are
// a display contract: score and ordering metadata are intentionally dropped.
type Bucket struct {
	// ID is the stable bucket identifier.
	ID BucketID `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// Games is the ordered list of game identifiers.
	Games []string `json:"games"`
}
