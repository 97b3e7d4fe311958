// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

// Package api provides the HTTP surface for recommendations and charts.
package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/playforge/gamerank/internal/logging"
)

// APIResponse is the standard success envelope.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

// Metadata carries response timing information.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// errorBody is the standard error envelope.
type errorBody struct {
	Status string      `json:"status"`
	Error  errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Warn().Err(err).Str("code", code).Msg(message)
	}
	respondJSON(w, status, &errorBody{
		Status: "error",
		Error:  errorDetail{Code: code, Message: message},
	})
}
