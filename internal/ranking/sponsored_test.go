// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package ranking

import "testing"

func scoredIDs(items []ScoredItem) []string {
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].Item.ID
	}
	return ids
}

func organicList(n int) []ScoredItem {
	items := make([]ScoredItem, n)
	for i := range items {
		items[i] = ScoredItem{Item: Item{ID: string(rune('a' + i))}, Score: float64(n - i)}
	}
	return items
}

func sponsoredList(ids ...string) []ScoredItem {
	items := make([]ScoredItem, len(ids))
	for i, id := range ids {
		items[i] = ScoredItem{Item: Item{ID: id, Sponsored: true}}
	}
	return items
}

func TestInjectSponsoredSlots(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		organic   int
		sponsored []string
		want      []string
	}{
		{
			// n=6, k=2: spacing=floor(6/3)=2, slots 2 and 5.
			name:      "two sponsored into six organic",
			organic:   6,
			sponsored: []string{"s1", "s2"},
			want:      []string{"a", "b", "s1", "c", "d", "s2", "e", "f"},
		},
		{
			// n=4, k=1: spacing=2, slot 2.
			name:      "single sponsored lands mid-list",
			organic:   4,
			sponsored: []string{"s1"},
			want:      []string{"a", "b", "s1", "c", "d"},
		},
		{
			// n=1, k=2: spacing=0, slots 0 and 1.
			name:      "more sponsored than organic",
			organic:   1,
			sponsored: []string{"s1", "s2"},
			want:      []string{"s1", "s2", "a"},
		},
		{
			// n=0: everything sponsored, appended in order.
			name:      "empty organic list",
			organic:   0,
			sponsored: []string{"s1", "s2"},
			want:      []string{"s1", "s2"},
		},
		{
			name:      "no sponsored candidates",
			organic:   3,
			sponsored: nil,
			want:      []string{"a", "b", "c"},
		},
	}

	allocator := NewSponsoredAllocator(3)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := scoredIDs(allocator.InjectSponsored(organicList(tt.organic), sponsoredList(tt.sponsored...)))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("position %d: got %q, want %q (full: %v)", i, got[i], tt.want[i], got)
				}
			}
		})
	}
}

func TestInjectSponsoredCap(t *testing.T) {
	t.Parallel()

	allocator := NewSponsoredAllocator(2)
	merged := allocator.InjectSponsored(organicList(6), sponsoredList("s1", "s2", "s3", "s4"))

	var count int
	for i := range merged {
		if merged[i].Item.Sponsored {
			count++
		}
	}
	if count != 2 {
		t.Errorf("got %d sponsored items, want 2", count)
	}

	// Truncation preserves incoming order: s1 and s2 survive.
	ids := scoredIDs(merged)
	for _, dropped := range []string{"s3", "s4"} {
		for _, id := range ids {
			if id == dropped {
				t.Errorf("item %q should have been truncated", dropped)
			}
		}
	}
}

func TestInjectSponsoredDedupe(t *testing.T) {
	t.Parallel()

	allocator := NewSponsoredAllocator(3)
	organic := organicList(4)

	// "b" is already organic; a duplicate sponsored id appears twice.
	merged := allocator.InjectSponsored(organic, sponsoredList("b", "s1", "s1"))

	seen := make(map[string]int)
	for _, id := range scoredIDs(merged) {
		seen[id]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("item %q appears %d times", id, n)
		}
	}
	if seen["s1"] != 1 {
		t.Errorf("s1 appears %d times, want 1", seen["s1"])
	}
	if len(merged) != 5 {
		t.Errorf("got %d items, want 5", len(merged))
	}
}

func TestInjectSponsoredZeroBudget(t *testing.T) {
	t.Parallel()

	allocator := NewSponsoredAllocator(0)
	organic := organicList(3)
	merged := allocator.InjectSponsored(organic, sponsoredList("s1"))

	if len(merged) != 3 {
		t.Fatalf("got %d items, want 3", len(merged))
	}
	for i := range merged {
		if merged[i].Item.Sponsored {
			t.Error("sponsored item injected with zero budget")
		}
	}
}
