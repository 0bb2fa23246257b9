// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/marquee/internal/titles"
)

// Config contains the serving parameters of the recommendation service.
type Config struct {
	// DefaultK is used by callers that do not specify k.
	DefaultK int `json:"default_k"`

	// MaxK caps k; larger requests are clamped.
	MaxK int `json:"max_k"`

	// SuggestK is the default number of title suggestions.
	SuggestK int `json:"suggest_k"`

	// FuzzyCutoff is the minimum fuzzy title score in [0,1].
	FuzzyCutoff float64 `json:"fuzzy_cutoff"`

	// SuggestCacheSize bounds the suggest cache. Zero disables it.
	SuggestCacheSize int `json:"suggest_cache_size"`

	// SuggestCacheTTL is how long a cached suggestion list stays valid.
	SuggestCacheTTL time.Duration `json:"suggest_cache_ttl"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		DefaultK:         10,
		MaxK:             100,
		SuggestK:         10,
		FuzzyCutoff:      titles.DefaultCutoff,
		SuggestCacheSize: 1024,
		SuggestCacheTTL:  10 * time.Minute,
	}
}

// Validate checks the configuration for consistency.
//
//nolint:gocritic // hugeParam: Config is passed by value for immutability
func (c Config) Validate() error {
	if c.DefaultK < 1 {
		return fmt.Errorf("default_k must be at least 1, got %d", c.DefaultK)
	}
	if c.MaxK < c.DefaultK {
		return fmt.Errorf("max_k (%d) must be >= default_k (%d)", c.MaxK, c.DefaultK)
	}
	if c.SuggestK < 1 || c.SuggestK > c.MaxK {
		return fmt.Errorf("suggest_k must be between 1 and max_k (%d), got %d", c.MaxK, c.SuggestK)
	}
	if c.FuzzyCutoff < 0 || c.FuzzyCutoff > 1 {
		return fmt.Errorf("fuzzy_cutoff must be between 0 and 1, got %v", c.FuzzyCutoff)
	}
	if c.SuggestCacheSize < 0 {
		return fmt.Errorf("suggest_cache_size must be non-negative, got %d", c.SuggestCacheSize)
	}
	if c.SuggestCacheSize > 0 && c.SuggestCacheTTL <= 0 {
		return fmt.Errorf("suggest_cache_ttl must be positive when the cache is enabled")
	}
	return nil
}

// SnapshotOptions returns the snapshot options implied by the config.
// Loaders use it so the configured cutoff reaches the title resolver.
//
//nolint:gocritic // hugeParam: Config is passed by value for immutability
func (c Config) SnapshotOptions() SnapshotOptions {
	cutoff := c.FuzzyCutoff
	return SnapshotOptions{FuzzyCutoff: &cutoff}
}
