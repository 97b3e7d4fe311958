// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package ranking

import (
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// ratingConfidenceScale is the reaction count at which community rating
// confidence saturates at 1.0.
const ratingConfidenceScale = 1000

// favouriteAffinityFactor strengthens favourite-based similarity relative to
// the generic liked/long-played signal.
const favouriteAffinityFactor = 1.5

// ItemLookup resolves an item identifier from a history list to the full item
// record. History lists carry ids only, so similarity signals need this
// capability injected.
type ItemLookup interface {
	// Lookup returns the item for the given id, and whether it exists.
	Lookup(id string) (Item, bool)
}

// Scorer computes composite relevance scores from independent signals.
// Every signal is a pure function of item, context, history and config, so
// identical inputs always produce identical scores and order.
type Scorer struct {
	cfg    Config
	lookup ItemLookup
	logger zerolog.Logger

	// clock is injected for deterministic tests.
	clock func() time.Time
}

// NewScorer creates a scorer for the given config.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewScorer(cfg Config, lookup ItemLookup, logger zerolog.Logger) *Scorer {
	return &Scorer{
		cfg:    cfg,
		lookup: lookup,
		logger: logger.With().Str("component", "scorer").Logger(),
		clock:  time.Now,
	}
}

// WithClock returns a copy of the scorer using the given clock.
func (s *Scorer) WithClock(clock func() time.Time) *Scorer {
	out := *s
	out.clock = clock
	return &out
}

// ScoreItems scores every item and returns the result sorted by score
// descending, ties broken by item id ascending. The tie-break is required for
// auditability, not optional.
func (s *Scorer) ScoreItems(items []Item, user *UserContext, history *UserHistory) []ScoredItem {
	now := s.clock()
	heavilyPlayed := history.HeavilyPlayedSet()

	scored := make([]ScoredItem, 0, len(items))
	for i := range items {
		scored = append(scored, s.scoreItem(&items[i], user, history, heavilyPlayed, now))
	}

	SortScored(scored)
	return scored
}

// SortScored orders scored items by score descending with a deterministic
// tie-break on item id ascending.
func SortScored(items []ScoredItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].Item.ID < items[j].Item.ID
	})
}

func (s *Scorer) scoreItem(item *Item, user *UserContext, history *UserHistory, heavilyPlayed map[string]struct{}, now time.Time) ScoredItem {
	b := Breakdown{
		GenreAffinity:          user.Genres.Cosine(item.Genres),
		AgeBandPopularity:      ageBandPopularity(item, user.AgeBand),
		EngagementSimilarity:   s.engagementSimilarity(item, history),
		FavouriteAffinity:      favouriteAffinityFactor * s.historySimilarity(item, history.Favourited),
		CommunityRating:        communityRating(item.Engagement.Likes, item.Engagement.Dislikes),
		RecencyBoost:           recencyBoost(daysBetween(item.ReleasedAt, now), s.cfg.RecencyDecayDays),
		SponsoredBoost:         sponsoredBoost(item, s.cfg.SponsoredAmountMultiplier, s.cfg.MaxSponsoredBoost),
		RepetitionPenalty:      repetitionPenalty(item.ID, heavilyPlayed),
		CreationRecencyPenalty: creationRecencyPenalty(daysBetween(item.CreatedAt, now), s.cfg.CreationGracePeriodDays, s.cfg.CreationPenaltyMaxDays),
	}

	return ScoredItem{
		Item:      *item,
		Score:     b.WeightedTotal(s.cfg.Weights),
		Breakdown: b,
	}
}

// engagementSimilarity is the mean of the similarity-to-history signal over
// the long-play list and the liked list.
func (s *Scorer) engagementSimilarity(item *Item, history *UserHistory) float64 {
	longPlay := s.historySimilarity(item, history.LongPlayed)
	liked := s.historySimilarity(item, history.Liked)
	return (longPlay + liked) / 2
}

// historySimilarity compares the item against a history id list: the mean
// genre-vector cosine over the history items the lookup can resolve.
// Unresolvable ids are skipped; an empty or fully unresolvable list scores 0.
func (s *Scorer) historySimilarity(item *Item, historyIDs []string) float64 {
	if len(historyIDs) == 0 || s.lookup == nil {
		return 0
	}

	var sum float64
	var resolved int
	for _, id := range historyIDs {
		past, ok := s.lookup.Lookup(id)
		if !ok {
			continue
		}
		sum += item.Genres.Cosine(past.Genres)
		resolved++
	}

	if resolved == 0 {
		return 0
	}
	return sum / float64(resolved)
}

// ageBandPopularity is ln(1 + plays) for the user's own age band.
func ageBandPopularity(item *Item, band AgeBand) float64 {
	plays := item.PlaysByAgeBand[band]
	if plays < 0 {
		plays = 0
	}
	return math.Log1p(float64(plays))
}

// communityRating is the like/dislike balance damped by a confidence factor
// that saturates at ratingConfidenceScale reactions. No reactions scores 0.
func communityRating(likes, dislikes int64) float64 {
	reactions := likes + dislikes
	if reactions <= 0 {
		return 0
	}

	balance := float64(likes-dislikes) / float64(reactions)
	confidence := math.Log1p(float64(reactions)) / math.Log(ratingConfidenceScale)
	if confidence > 1 {
		confidence = 1
	}
	return balance * confidence
}

// recencyBoost decays exponentially with days since release.
func recencyBoost(daysSinceRelease, decayDays float64) float64 {
	if daysSinceRelease < 0 {
		daysSinceRelease = 0
	}
	return math.Exp(-daysSinceRelease / decayDays)
}

// sponsoredBoost converts spend into score, capped at maxBoost. Always in
// [0, maxBoost].
func sponsoredBoost(item *Item, multiplier, maxBoost float64) float64 {
	if !item.Sponsored || item.SponsoredSpend <= 0 {
		return 0
	}
	boost := item.SponsoredSpend * multiplier
	if boost > maxBoost {
		boost = maxBoost
	}
	return boost
}

// repetitionPenalty is 1 for heavily played items, 0 otherwise.
func repetitionPenalty(id string, heavilyPlayed map[string]struct{}) float64 {
	if _, ok := heavilyPlayed[id]; ok {
		return 1
	}
	return 0
}

// creationRecencyPenalty dampens freshly created items: full penalty inside
// the grace period, linear decay to zero at maxDays.
func creationRecencyPenalty(daysSinceCreation, graceDays, maxDays float64) float64 {
	if daysSinceCreation < 0 {
		daysSinceCreation = 0
	}
	switch {
	case daysSinceCreation < graceDays:
		return 1
	case daysSinceCreation >= maxDays:
		return 0
	default:
		return 1 - (daysSinceCreation-graceDays)/(maxDays-graceDays)
	}
}

// daysBetween returns fractional days from t to now.
func daysBetween(t, now time.Time) float64 {
	return now.Sub(t).Hours() / 24
}
