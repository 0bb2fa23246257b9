// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	return m
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	h := NewSlogHandler(zerolog.New(nil).Level(zerolog.WarnLevel))
	tests := []struct {
		level slog.Level
		want  bool
	}{
		{slog.LevelDebug, false},
		{slog.LevelInfo, false},
		{slog.LevelWarn, true},
		{slog.LevelError, true},
	}
	for _, tt := range tests {
		if got := h.Enabled(context.Background(), tt.level); got != tt.want {
			t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(zerolog.New(&buf)))
	logger.Warn("service restarted",
		"service", "snapshot",
		"attempt", 3,
		"backoff", 2*time.Second,
		"healthy", false,
		"err", errors.New("load failed"),
	)

	m := decodeLine(t, &buf)
	if m["level"] != "warn" || m["message"] != "service restarted" {
		t.Errorf("level/message = %v/%v", m["level"], m["message"])
	}
	if m["service"] != "snapshot" || m["attempt"] != float64(3) || m["healthy"] != false {
		t.Errorf("fields = %v", m)
	}
	if m["err"] != "load failed" {
		t.Errorf("err = %v, want load failed", m["err"])
	}
	if _, ok := m["backoff"]; !ok {
		t.Error("missing backoff field")
	}
}

func TestSlogHandler_AttrsAndGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(zerolog.New(&buf))).
		With("tree", "marquee").
		WithGroup("supervisor").
		With("name", "api").
		WithGroup("event")

	logger.Error("terminated", "restarts", 2, slog.Group("last", "code", 7))

	m := decodeLine(t, &buf)
	want := map[string]any{
		"tree":                       "marquee",
		"supervisor.name":            "api",
		"supervisor.event.restarts":  float64(2),
		"supervisor.event.last.code": float64(7),
	}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("%s = %v, want %v (all: %v)", k, m[k], v, m)
		}
	}
}

func TestSlogHandler_EmptyArgsReturnSameHandler(t *testing.T) {
	t.Parallel()

	h := NewSlogHandler(zerolog.Nop())
	if h.WithAttrs(nil) != slog.Handler(h) {
		t.Error("WithAttrs(nil) should return the receiver")
	}
	if h.WithGroup("") != slog.Handler(h) {
		t.Error(`WithGroup("") should return the receiver`)
	}
}

func TestZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelInfo + 2, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := zerologLevel(tt.in); got != tt.want {
			t.Errorf("zerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewSlogLogger(t *testing.T) {
	resetLogger(t)
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	NewSlogLogger().Info("from slog", "k", "v")
	if !strings.Contains(buf.String(), `"k":"v"`) {
		t.Errorf("output = %s", buf.String())
	}
}
