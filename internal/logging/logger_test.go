// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestInitAndLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Msg("suppressed")
	Warn().Msg("visible")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Error("info logged at warn level")
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn message missing from output: %s", out)
	}
}

func TestComponentField(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	chartsLogger := Component("charts")
	chartsLogger.Info().Msg("hello")

	if !strings.Contains(buf.String(), `"component":"charts"`) {
		t.Errorf("component field missing: %s", buf.String())
	}
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "shouting", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Debug().Msg("hidden")
	Info().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug logged at fallback info level")
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("info message missing: %s", out)
	}
}

func TestRequestIDContext(t *testing.T) {
	t.Parallel()

	ctx := ContextWithRequestID(context.Background(), "req-42")
	if got := RequestIDFromContext(ctx); got != "req-42" {
		t.Errorf("RequestIDFromContext = %q, want req-42", got)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext on bare context = %q, want empty", got)
	}
}

func TestNewRequestIDUnique(t *testing.T) {
	t.Parallel()

	if NewRequestID() == NewRequestID() {
		t.Error("consecutive request ids collided")
	}
}

func TestSlogBridge(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	logger := NewSlogLogger()
	logger.Info("supervisor event", "service", "chart-refresher")

	out := buf.String()
	if !strings.Contains(out, "supervisor event") {
		t.Errorf("slog message missing: %s", out)
	}
	if !strings.Contains(out, "chart-refresher") {
		t.Errorf("slog attr missing: %s", out)
	}
}
