// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
)

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// Validate checks that the configuration is usable before startup.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateArtifacts(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateReload(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT and HTTP_WRITE_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateArtifacts() error {
	switch c.Artifacts.Backend {
	case BackendFiles:
		if c.Artifacts.Dir == "" &&
			(c.Artifacts.IndexPath == "" || c.Artifacts.EncoderPath == "" || c.Artifacts.MetadataPath == "") {
			return fmt.Errorf("ARTIFACT_DIR is required unless MODEL_PATH, TRANSFORMER_PATH and META_PATH are all set")
		}
	case BackendBadger:
		if c.Artifacts.BadgerDir == "" {
			return fmt.Errorf("BADGER_DIR is required when ARTIFACT_BACKEND=badger")
		}
	default:
		return fmt.Errorf("ARTIFACT_BACKEND must be one of: %s, %s", BackendFiles, BackendBadger)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MaxK < 1 {
		return fmt.Errorf("RECOMMEND_MAX_K must be at least 1")
	}
	if r.DefaultK < 1 || r.DefaultK > r.MaxK {
		return fmt.Errorf("RECOMMEND_DEFAULT_K must be between 1 and RECOMMEND_MAX_K (%d)", r.MaxK)
	}
	if r.SuggestK < 1 || r.SuggestK > r.MaxK {
		return fmt.Errorf("SUGGEST_K must be between 1 and RECOMMEND_MAX_K (%d)", r.MaxK)
	}
	if r.FuzzyCutoff < 0 || r.FuzzyCutoff > 1 {
		return fmt.Errorf("FUZZY_CUTOFF must be between 0 and 1")
	}
	if r.SuggestCacheSize < 0 {
		return fmt.Errorf("SUGGEST_CACHE_SIZE must not be negative")
	}
	if r.SuggestCacheTTL < 0 {
		return fmt.Errorf("SUGGEST_CACHE_TTL must not be negative")
	}
	return nil
}

func (c *Config) validateReload() error {
	if c.Reload.Interval < 0 {
		return fmt.Errorf("RELOAD_INTERVAL must not be negative")
	}
	if c.Reload.Interval > 0 && c.Reload.Interval < time.Second {
		return fmt.Errorf("RELOAD_INTERVAL must be at least 1s when enabled")
	}
	if c.Reload.Timeout <= 0 {
		return fmt.Errorf("RELOAD_TIMEOUT must be positive")
	}
	return nil
}

// validateSecurity validates rate limiting bounds. Values outside the range
// either disable protection or lock every client out.
func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
