// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package ranking

// bucketTitles maps bucket ids to display titles.
var bucketTitles = map[BucketID]string{
	BucketRecommended:    "Recommended For You",
	BucketPopularByAge:   "Popular With Your Age Group",
	BucketNewAndTrending: "New & Trending",
	BucketSponsored:      "Sponsored Events",
}

// OrganizeBuckets groups ranked lists into named output sections in fixed
// order. Empty sources are omitted. Score and ordering metadata are dropped:
// buckets are a display contract, not a scoring artifact.
func OrganizeBuckets(personalized, popularByAge, trending, sponsored []ScoredItem) []Bucket {
	sections := []struct {
		id    BucketID
		items []ScoredItem
	}{
		{BucketRecommended, personalized},
		{BucketPopularByAge, popularByAge},
		{BucketNewAndTrending, trending},
		{BucketSponsored, sponsored},
	}

	buckets := make([]Bucket, 0, len(sections))
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		buckets = append(buckets, Bucket{
			ID:    s.id,
			Title: bucketTitles[s.id],
			Games: itemIDs(s.items),
		})
	}
	return buckets
}

// MergeBuckets deduplicates game ids across buckets: the first bucket to list
// a game keeps it, later occurrences are dropped. Bucket order and first-seen
// game order are preserved; buckets left empty by deduplication are removed.
func MergeBuckets(buckets []Bucket) []Bucket {
	seen := make(map[string]struct{})
	merged := make([]Bucket, 0, len(buckets))

	for _, b := range buckets {
		games := make([]string, 0, len(b.Games))
		for _, id := range b.Games {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			games = append(games, id)
		}
		if len(games) == 0 {
			continue
		}
		merged = append(merged, Bucket{ID: b.ID, Title: b.Title, Games: games})
	}
	return merged
}

func itemIDs(items []ScoredItem) []string {
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].Item.ID
	}
	return ids
}
