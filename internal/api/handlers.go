// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/playforge/gamerank/internal/metrics"
	"github.com/playforge/gamerank/internal/ranking"
	"github.com/playforge/gamerank/internal/scheduler"
)

// Handler serves the recommendation and chart endpoints.
type Handler struct {
	engine   *ranking.Engine
	charts   ChartProvider
	store    *scheduler.Store
	validate *validator.Validate
}

// NewHandler creates a handler. store may be nil when no refresher runs;
// charts are then always computed on demand.
func NewHandler(engine *ranking.Engine, charts ChartProvider, store *scheduler.Store) *Handler {
	return &Handler{
		engine:   engine,
		charts:   charts,
		store:    store,
		validate: validator.New(),
	}
}

// recommendationRequest is the POST /recommendations body.
type recommendationRequest struct {
	UserID   string              `json:"user_id" validate:"required"`
	AgeBand  string              `json:"age_band" validate:"required"`
	Platform string              `json:"platform" validate:"required"`
	Genres   ranking.GenreVector `json:"genres"`
	History  ranking.UserHistory `json:"history"`
}

// PostRecommendations handles POST /api/v1/recommendations.
// The user context and aggregated history travel in the body; no identity or
// per-event data is accepted.
func (h *Handler) PostRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Malformed request body", err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Missing required fields", err)
		return
	}

	band, err := ranking.ParseAgeBand(req.AgeBand)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_AGE_BAND", "Unknown age band", err)
		return
	}

	user := ranking.UserContext{
		UserID:   req.UserID,
		AgeBand:  band,
		Platform: req.Platform,
		Genres:   req.Genres,
	}

	result, err := h.engine.Recommend(r.Context(), user, req.History)
	if err != nil {
		metrics.RankingRequestsTotal.WithLabelValues("error").Inc()
		respondError(w, http.StatusBadGateway, "SOURCE_ERROR", "Failed to generate recommendations", err)
		return
	}

	metrics.RankingRequestsTotal.WithLabelValues("ok").Inc()
	metrics.RankingRequestDuration.Observe(time.Since(start).Seconds())
	if !result.Diversity.MinGenresMet {
		metrics.DiversityShortfallsTotal.WithLabelValues("min_genres").Inc()
	}
	if !result.Diversity.LowIntensityMet {
		metrics.DiversityShortfallsTotal.WithLabelValues("low_intensity").Inc()
	}

	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "success",
		Data:   result,
		Metadata: Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: result.Metadata.LatencyMS,
		},
	})
}

// Healthz handles GET /api/v1/healthz.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &APIResponse{
		Status:   "success",
		Data:     map[string]string{"state": "healthy"},
		Metadata: Metadata{Timestamp: time.Now()},
	})
}
