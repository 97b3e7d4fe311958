// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package ranking

// EligibilityFilter is the hard safety gate preceding any scoring. It is the
// sole safety boundary: no later pipeline stage may re-admit a rejected item,
// and sponsored candidates pass through the same gate as organic ones.
//
// Rejections are silent exclusions, never errors.
type EligibilityFilter struct {
	moderationThreshold float64
}

// NewEligibilityFilter creates a filter with the given moderation threshold.
func NewEligibilityFilter(moderationThreshold float64) *EligibilityFilter {
	return &EligibilityFilter{moderationThreshold: moderationThreshold}
}

// IsEligible reports whether the item may be shown to the user. Pure and
// deterministic: all three gates must pass.
func (f *EligibilityFilter) IsEligible(item *Item, user *UserContext) bool {
	// Age gate: ordinal comparison only.
	if !user.AgeBand.AtLeast(item.MinAgeBand) {
		return false
	}

	// Moderation gate.
	if item.ModerationScore < f.moderationThreshold {
		return false
	}

	// Feature gate: voice chat is 13+ only.
	if user.AgeBand != AgeBand13Plus && item.HasFeature(FeatureVoiceChat) {
		return false
	}

	return true
}

// FilterEligible returns the items that pass all gates, preserving input
// order. The input slice is not modified.
func (f *EligibilityFilter) FilterEligible(items []Item, user *UserContext) []Item {
	eligible := make([]Item, 0, len(items))
	for i := range items {
		if f.IsEligible(&items[i], user) {
			eligible = append(eligible, items[i])
		}
	}
	return eligible
}
