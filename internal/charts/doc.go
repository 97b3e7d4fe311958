// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

// Package charts computes algorithmic popularity charts from aggregated
// metrics, scoped by age band and platform.
//
// Seven chart kinds share one shape: fetch the scoped candidate set, fetch
// per-item metrics concurrently (bounded fan-out), apply the kind's formula,
// sort by score descending with an item-id tie-break, slice to the limit and
// assign contiguous ranks 1..N.
//
// Charts are independent of the personalization pipeline and carry no
// per-user state. An unknown kind or a missing genre id for the genre-scoped
// chart is a caller error; a failed metrics fetch fails the whole chart
// rather than fabricating a partial one.
//
// BreakerSource and ThrottledSource decorate a MetricsSource with a circuit
// breaker and a rate limiter for upstreams that need protection.
package charts
