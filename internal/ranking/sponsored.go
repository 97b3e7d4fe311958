// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package ranking

// SponsoredAllocator interleaves a bounded number of sponsored items into a
// diversified list at evenly spaced slots. Every sponsored item reaching this
// stage has already passed eligibility filtering; the allocator never admits
// anything on its own.
type SponsoredAllocator struct {
	maxPerList int
}

// NewSponsoredAllocator creates an allocator with the given per-list bound.
func NewSponsoredAllocator(maxPerList int) *SponsoredAllocator {
	return &SponsoredAllocator{maxPerList: maxPerList}
}

// InjectSponsored merges sponsored candidates into the organic list.
// Candidates already present in the organic list are dropped, the remainder is
// truncated to the per-list bound preserving incoming (score-sorted) order,
// and slots are spaced evenly over the combined length: with k sponsored and
// n organic items, spacing = floor(n/(k+1)) and the i-th sponsored item lands
// at position spacing*(i+1)+i.
func (a *SponsoredAllocator) InjectSponsored(organic, sponsored []ScoredItem) []ScoredItem {
	eligible := a.dedupeAndCap(organic, sponsored)
	if len(eligible) == 0 {
		return organic
	}

	n := len(organic)
	k := len(eligible)
	spacing := n / (k + 1)

	merged := make([]ScoredItem, 0, n+k)
	si, oi := 0, 0
	for pos := 0; pos < n+k; pos++ {
		switch {
		case si < k && pos == spacing*(si+1)+si:
			merged = append(merged, eligible[si])
			si++
		case oi < n:
			merged = append(merged, organic[oi])
			oi++
		default:
			merged = append(merged, eligible[si])
			si++
		}
	}
	return merged
}

// dedupeAndCap removes sponsored candidates already present in the organic
// list and truncates to the per-list bound, preserving order.
func (a *SponsoredAllocator) dedupeAndCap(organic, sponsored []ScoredItem) []ScoredItem {
	if a.maxPerList == 0 {
		return nil
	}

	present := make(map[string]struct{}, len(organic))
	for i := range organic {
		present[organic[i].Item.ID] = struct{}{}
	}

	eligible := make([]ScoredItem, 0, a.maxPerList)
	for i := range sponsored {
		if _, dup := present[sponsored[i].Item.ID]; dup {
			continue
		}
		// Guard against duplicate ids within the sponsored list itself.
		present[sponsored[i].Item.ID] = struct{}{}
		eligible = append(eligible, sponsored[i])
		if len(eligible) >= a.maxPerList {
			break
		}
	}
	return eligible
}
