// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/marquee/internal/artifact"
	"github.com/tomtom215/marquee/internal/config"
)

func TestRecommendConfig(t *testing.T) {
	t.Parallel()

	got := recommendConfig(&config.RecommendConfig{
		DefaultK:         5,
		MaxK:             50,
		SuggestK:         7,
		FuzzyCutoff:      0.4,
		SuggestCacheSize: 16,
		SuggestCacheTTL:  time.Minute,
	})
	if err := got.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got.DefaultK != 5 || got.MaxK != 50 || got.SuggestK != 7 || got.FuzzyCutoff != 0.4 {
		t.Errorf("recommendConfig() = %+v", got)
	}
}

func TestMiddlewareConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Server: config.ServerConfig{WriteTimeout: 3 * time.Second},
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"https://example.com"},
			RateLimitReqs:     7,
			RateLimitWindow:   time.Second,
			RateLimitDisabled: true,
		},
	}
	mw := middlewareConfig(cfg)
	if len(mw.CORSAllowedOrigins) != 1 || mw.CORSAllowedOrigins[0] != "https://example.com" {
		t.Errorf("CORSAllowedOrigins = %v", mw.CORSAllowedOrigins)
	}
	if mw.RateLimitRequests != 7 || mw.RateLimitWindow != time.Second || !mw.RateLimitDisabled {
		t.Errorf("rate limit = %d/%v disabled=%v", mw.RateLimitRequests, mw.RateLimitWindow, mw.RateLimitDisabled)
	}
	if mw.RequestTimeout != 3*time.Second {
		t.Errorf("RequestTimeout = %v, want 3s", mw.RequestTimeout)
	}
}

func TestNewArtifactSource(t *testing.T) {
	t.Parallel()

	t.Run("files", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		src, closeFn, err := newArtifactSource(&config.ArtifactsConfig{Backend: config.BackendFiles, Dir: dir})
		if err != nil {
			t.Fatalf("newArtifactSource() error = %v", err)
		}
		defer closeFn()
		if got, want := src.Location(artifact.NameIndex), filepath.Join(dir, artifact.DefaultIndexFile); got != want {
			t.Errorf("Location(index) = %q, want %q", got, want)
		}
	})

	t.Run("badger opens lazily", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "badger")
		src, closeFn, err := newArtifactSource(&config.ArtifactsConfig{Backend: config.BackendBadger, BadgerDir: dir})
		if err != nil {
			t.Fatalf("newArtifactSource() error = %v, want lazy open", err)
		}
		defer closeFn()
		if _, ok := src.(artifact.Opener); !ok {
			t.Errorf("badger source %T should be reopened per load", src)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Parallel()
		if _, _, err := newArtifactSource(&config.ArtifactsConfig{Backend: "s3"}); err == nil {
			t.Error("newArtifactSource() should reject unknown backend")
		}
	})
}
