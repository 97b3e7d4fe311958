// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package ranking

// DiversityReport is the structured diagnostic returned alongside a
// diversified list. A shortfall is informational only: it never alters the
// output and is never an error.
type DiversityReport struct {
	// DistinctGenres is the number of distinct genres the output spans.
	DistinctGenres int `json:"distinct_genres"`

	// MinGenresMet reports whether DistinctGenres reached the configured
	// minimum.
	MinGenresMet bool `json:"min_genres_met"`

	// HasLowIntensity reports whether the output contains at least one
	// low-intensity item.
	HasLowIntensity bool `json:"has_low_intensity"`

	// LowIntensityMet is true when low intensity is not required or the
	// requirement is satisfied.
	LowIntensityMet bool `json:"low_intensity_met"`
}

// Shortfall reports whether either informational check failed.
func (r DiversityReport) Shortfall() bool {
	return !r.MinGenresMet || !r.LowIntensityMet
}

// DiversityPass greedily re-selects score-sorted items to enforce genre and
// feature balance, trading raw score for fairness.
type DiversityPass struct {
	rules      DiversityRules
	maxResults int
}

// NewDiversityPass creates a pass with the given rules and result cap.
func NewDiversityPass(rules DiversityRules, maxResults int) *DiversityPass {
	return &DiversityPass{rules: rules, maxResults: maxResults}
}

// Diversify walks the score-sorted input once, admitting each item unless it
// would push one of its genres past MaxPerGenre, or it would keep an
// all-multiplayer list all-multiplayer while AvoidAllMultiplayer is set.
// Stops at maxResults. The returned report carries the informational checks.
func (d *DiversityPass) Diversify(sorted []ScoredItem) ([]ScoredItem, DiversityReport) {
	selected := make([]ScoredItem, 0, d.maxResults)
	genreCounts := make(map[string]int)
	allMultiplayer := true

	for i := range sorted {
		if len(selected) >= d.maxResults {
			break
		}

		item := &sorted[i].Item
		if d.exceedsGenreCap(item, genreCounts) {
			continue
		}
		if d.rules.AvoidAllMultiplayer && len(selected) > 0 && allMultiplayer && item.HasFeature(FeatureMultiplayer) {
			continue
		}

		selected = append(selected, sorted[i])
		for genre := range item.Genres {
			genreCounts[genre]++
		}
		if !item.HasFeature(FeatureMultiplayer) {
			allMultiplayer = false
		}
	}

	return selected, d.report(selected, genreCounts)
}

// exceedsGenreCap reports whether admitting the item would push any of its
// genres past the per-genre cap.
func (d *DiversityPass) exceedsGenreCap(item *Item, genreCounts map[string]int) bool {
	for genre := range item.Genres {
		if genreCounts[genre]+1 > d.rules.MaxPerGenre {
			return true
		}
	}
	return false
}

func (d *DiversityPass) report(selected []ScoredItem, genreCounts map[string]int) DiversityReport {
	hasLowIntensity := false
	for i := range selected {
		if selected[i].Item.HasFeature(FeatureLowIntensity) {
			hasLowIntensity = true
			break
		}
	}

	return DiversityReport{
		DistinctGenres:  len(genreCounts),
		MinGenresMet:    len(genreCounts) >= d.rules.MinGenres,
		HasLowIntensity: hasLowIntensity,
		LowIntensityMet: !d.rules.RequireLowIntensity || hasLowIntensity,
	}
}
