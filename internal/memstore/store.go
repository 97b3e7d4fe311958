// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

// Package memstore provides an in-memory catalog implementing the ranking
// CandidateSource, the ItemLookup capability and the charts MetricsSource.
// It backs the demo server and tests; it is not a persistence layer.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/playforge/gamerank/internal/charts"
	"github.com/playforge/gamerank/internal/ranking"
)

// Store is an in-memory game catalog with per-item chart metrics.
// Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	items     map[string]ranking.Item
	order     []string // insertion order, for stable iteration
	editorial []string
	metrics   map[string]charts.Metrics
}

// New creates an empty store.
func New() *Store {
	return &Store{
		items:   make(map[string]ranking.Item),
		metrics: make(map[string]charts.Metrics),
	}
}

// Put inserts or replaces an item.
func (s *Store) Put(item ranking.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[item.ID]; !exists {
		s.order = append(s.order, item.ID)
	}
	s.items[item.ID] = item
}

// PutMetrics sets the chart metrics for an item.
func (s *Store) PutMetrics(itemID string, m charts.Metrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics[itemID] = m
}

// SetEditorial replaces the editorially curated item id list.
func (s *Store) SetEditorial(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editorial = append([]string(nil), ids...)
}

// Lookup implements ranking.ItemLookup.
func (s *Store) Lookup(id string) (ranking.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

// TopByGenres implements ranking.CandidateSource: items ordered by genre
// cosine similarity to the given vector, ties on id.
func (s *Store) TopByGenres(_ context.Context, genres ranking.GenreVector, limit int) ([]ranking.Item, error) {
	return s.sortedItems(limit, func(a, b *ranking.Item) bool {
		simA := genres.Cosine(a.Genres)
		simB := genres.Cosine(b.Genres)
		if simA != simB {
			return simA > simB
		}
		return a.ID < b.ID
	}), nil
}

// PopularByAgeBand implements ranking.CandidateSource: items ordered by play
// count for the given band.
func (s *Store) PopularByAgeBand(_ context.Context, band ranking.AgeBand, limit int) ([]ranking.Item, error) {
	return s.sortedItems(limit, func(a, b *ranking.Item) bool {
		playsA := a.PlaysByAgeBand[band]
		playsB := b.PlaysByAgeBand[band]
		if playsA != playsB {
			return playsA > playsB
		}
		return a.ID < b.ID
	}), nil
}

// Trending implements ranking.CandidateSource: items ordered by current
// session count.
func (s *Store) Trending(_ context.Context, limit int) ([]ranking.Item, error) {
	return s.sortedItems(limit, func(a, b *ranking.Item) bool {
		if a.Engagement.CurrentSessions != b.Engagement.CurrentSessions {
			return a.Engagement.CurrentSessions > b.Engagement.CurrentSessions
		}
		return a.ID < b.ID
	}), nil
}

// EditorialPicks implements ranking.CandidateSource.
func (s *Store) EditorialPicks(_ context.Context, limit int) ([]ranking.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	picks := make([]ranking.Item, 0, len(s.editorial))
	for _, id := range s.editorial {
		if item, ok := s.items[id]; ok {
			picks = append(picks, item)
		}
		if len(picks) >= limit {
			break
		}
	}
	return picks, nil
}

// Sponsored implements ranking.CandidateSource: sponsored items with positive
// spend, highest spend first.
func (s *Store) Sponsored(_ context.Context, limit int) ([]ranking.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sponsored []ranking.Item
	for _, id := range s.order {
		item := s.items[id]
		if item.Sponsored && item.SponsoredSpend > 0 {
			sponsored = append(sponsored, item)
		}
	}
	sort.Slice(sponsored, func(i, j int) bool {
		if sponsored[i].SponsoredSpend != sponsored[j].SponsoredSpend {
			return sponsored[i].SponsoredSpend > sponsored[j].SponsoredSpend
		}
		return sponsored[i].ID < sponsored[j].ID
	})
	if len(sponsored) > limit {
		sponsored = sponsored[:limit]
	}
	return sponsored, nil
}

// ItemsFor implements charts.MetricsSource: ids of items viewable by the
// given band. Platform scoping is a no-op for the in-memory catalog.
func (s *Store) ItemsFor(_ context.Context, band ranking.AgeBand, _ string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.order))
	for _, id := range s.order {
		if band.AtLeast(s.items[id].MinAgeBand) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// MetricsFor implements charts.MetricsSource.
func (s *Store) MetricsFor(_ context.Context, itemID string, _ ranking.AgeBand, _ string) (charts.Metrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m, ok := s.metrics[itemID]; ok {
		return m, nil
	}

	// Derive baseline metrics from the item record when no explicit metrics
	// were loaded.
	item, ok := s.items[itemID]
	if !ok {
		return charts.Metrics{}, nil
	}
	return charts.Metrics{
		CurrentSessions: item.Engagement.CurrentSessions,
		TotalSessions:   item.Engagement.Sessions,
		UniquePlayers:   item.Engagement.UniquePlayers,
		TotalRevenue:    item.Engagement.Revenue,
		Likes:           item.Engagement.Likes,
		Dislikes:        item.Engagement.Dislikes,
		ReleasedAt:      item.ReleasedAt,
		Genres:          item.Genres,
	}, nil
}

// sortedItems returns up to limit items ordered by the given comparator.
func (s *Store) sortedItems(limit int, less func(a, b *ranking.Item) bool) []ranking.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]ranking.Item, 0, len(s.order))
	for _, id := range s.order {
		all = append(all, s.items[id])
	}
	sort.Slice(all, func(i, j int) bool {
		return less(&all[i], &all[j])
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// Interface checks.
var (
	_ ranking.CandidateSource = (*Store)(nil)
	_ ranking.ItemLookup      = (*Store)(nil)
	_ charts.MetricsSource    = (*Store)(nil)
)
