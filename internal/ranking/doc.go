// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

// Package ranking implements the personalization pipeline for a game catalog
// whose users may be minors.
//
// # Pipeline
//
// Candidates flow through five synchronous, pure stages:
//
//	candidates -> EligibilityFilter -> Scorer -> DiversityPass ->
//	SponsoredAllocator -> OrganizeBuckets
//
// The EligibilityFilter is the sole safety boundary. It applies the age gate,
// the moderation gate and the under-13 voice-chat gate; nothing downstream
// may re-admit a rejected item, sponsored placements included.
//
// # Design Principles
//
//   - Deterministic: identical inputs and config produce bit-identical
//     scores and order; ties always break on item id ascending.
//   - Auditable: every composite score carries a labeled breakdown that
//     reproduces the score under the active weights.
//   - Immutable: an Engine never changes after construction. Reconfigure
//     returns a new Engine, so concurrent callers keep a consistent snapshot.
//
// # External capabilities
//
// The core consumes two injected contracts: CandidateSource (candidate pools,
// deduplicated here first-seen wins) and ItemLookup (resolving history ids to
// items for the similarity signals). Source failures propagate to the caller
// unretried.
//
// # Diagnostics
//
// The diversity pass returns a DiversityReport instead of logging a global
// warning. A shortfall never blocks or alters output.
package ranking
