// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

// Package scheduler periodically recomputes charts into an in-memory store.
// The refresher runs as a suture-supervised service so a panicking refresh
// is restarted instead of taking the process down.
package scheduler

import (
	"sync"
	"time"

	"github.com/playforge/gamerank/internal/charts"
	"github.com/playforge/gamerank/internal/ranking"
)

// ChartKey scopes one precomputed chart.
type ChartKey struct {
	Kind     charts.Kind
	AgeBand  ranking.AgeBand
	Platform string
	Genre    string // empty except for the genre-scoped kind
}

// Store holds precomputed charts. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[ChartKey][]charts.Entry
	builtAt map[ChartKey]time.Time
}

// NewStore creates an empty chart store.
func NewStore() *Store {
	return &Store{
		entries: make(map[ChartKey][]charts.Entry),
		builtAt: make(map[ChartKey]time.Time),
	}
}

// Put stores a computed chart.
func (s *Store) Put(key ChartKey, entries []charts.Entry, builtAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entries
	s.builtAt[key] = builtAt
}

// Get returns the stored chart and its build time, if present.
func (s *Store) Get(key ChartKey) ([]charts.Entry, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, ok := s.entries[key]
	if !ok {
		return nil, time.Time{}, false
	}
	return entries, s.builtAt[key], true
}

// Len returns the number of stored charts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
