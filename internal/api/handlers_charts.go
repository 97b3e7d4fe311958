// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/playforge/gamerank/internal/charts"
	"github.com/playforge/gamerank/internal/ranking"
	"github.com/playforge/gamerank/internal/scheduler"
)

// defaultChartLimit is used when the caller omits the limit parameter.
const defaultChartLimit = 50

// maxChartLimit caps the limit parameter.
const maxChartLimit = 200

// ChartProvider computes charts on demand. Satisfied by *charts.Ranker.
type ChartProvider interface {
	Generate(ctx context.Context, kind charts.Kind, band ranking.AgeBand, platform string, limit int) ([]charts.Entry, error)
	GenerateInGenre(ctx context.Context, band ranking.AgeBand, platform, genre string, limit int) ([]charts.Entry, error)
}

// chartResponse is the chart endpoint payload.
type chartResponse struct {
	Kind     string         `json:"kind"`
	AgeBand  string         `json:"age_band"`
	Platform string         `json:"platform"`
	Genre    string         `json:"genre,omitempty"`
	Entries  []charts.Entry `json:"entries"`
	BuiltAt  time.Time      `json:"built_at"`
	Cached   bool           `json:"cached"`
}

// GetChart handles GET /api/v1/charts/{kind}.
//
// Query parameters: age_band (required), platform (required), limit,
// genre (required for trending_in_genre).
//
// Precomputed charts from the refresher are served when they cover the
// request; anything else is computed on demand.
func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	kind, err := charts.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "UNKNOWN_CHART_KIND", "Unknown chart kind", err)
		return
	}

	band, err := ranking.ParseAgeBand(r.URL.Query().Get("age_band"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_AGE_BAND", "Unknown age band", err)
		return
	}

	platform := r.URL.Query().Get("platform")
	if platform == "" {
		respondError(w, http.StatusBadRequest, "MISSING_PLATFORM", "platform query parameter is required", nil)
		return
	}

	genre := r.URL.Query().Get("genre")
	if kind == charts.KindTrendingInGenre && genre == "" {
		respondError(w, http.StatusBadRequest, "MISSING_GENRE", "genre query parameter is required for this chart", nil)
		return
	}

	limit := defaultChartLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a positive integer", err)
			return
		}
		limit = parsed
	}
	if limit > maxChartLimit {
		limit = maxChartLimit
	}

	resp := chartResponse{
		Kind:     kind.String(),
		AgeBand:  band.String(),
		Platform: platform,
		Genre:    genre,
	}

	if entries, builtAt, ok := h.cachedChart(kind, band, platform, genre, limit); ok {
		resp.Entries = entries
		resp.BuiltAt = builtAt
		resp.Cached = true
		respondJSON(w, http.StatusOK, &APIResponse{
			Status:   "success",
			Data:     &resp,
			Metadata: Metadata{Timestamp: time.Now()},
		})
		return
	}

	start := time.Now()
	var entries []charts.Entry
	if kind == charts.KindTrendingInGenre {
		entries, err = h.charts.GenerateInGenre(r.Context(), band, platform, genre, limit)
	} else {
		entries, err = h.charts.Generate(r.Context(), kind, band, platform, limit)
	}
	if err != nil {
		switch {
		case errors.Is(err, charts.ErrUnknownKind), errors.Is(err, charts.ErrMissingGenre):
			respondError(w, http.StatusBadRequest, "INVALID_CHART_REQUEST", "Invalid chart request", err)
		default:
			respondError(w, http.StatusBadGateway, "METRICS_SOURCE_ERROR", "Failed to compute chart", err)
		}
		return
	}

	resp.Entries = entries
	resp.BuiltAt = time.Now()
	respondJSON(w, http.StatusOK, &APIResponse{
		Status:   "success",
		Data:     &resp,
		Metadata: Metadata{Timestamp: time.Now(), QueryTimeMS: time.Since(start).Milliseconds()},
	})
}

// cachedChart serves from the refresher store when the requested slice fits
// inside a precomputed chart. A limit beyond the stored length falls through
// to on-demand computation.
func (h *Handler) cachedChart(kind charts.Kind, band ranking.AgeBand, platform, genre string, limit int) ([]charts.Entry, time.Time, bool) {
	if h.store == nil || genre != "" {
		return nil, time.Time{}, false
	}

	entries, builtAt, ok := h.store.Get(scheduler.ChartKey{Kind: kind, AgeBand: band, Platform: platform})
	if !ok || len(entries) < limit {
		return nil, time.Time{}, false
	}
	return entries[:limit], builtAt, true
}
