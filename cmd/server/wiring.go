// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"fmt"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/artifact"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/recommend"
)

func recommendConfig(c *config.RecommendConfig) recommend.Config {
	return recommend.Config{
		DefaultK:         c.DefaultK,
		MaxK:             c.MaxK,
		SuggestK:         c.SuggestK,
		FuzzyCutoff:      c.FuzzyCutoff,
		SuggestCacheSize: c.SuggestCacheSize,
		SuggestCacheTTL:  c.SuggestCacheTTL,
	}
}

func middlewareConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mw.RateLimitRequests = cfg.Security.RateLimitReqs
	mw.RateLimitWindow = cfg.Security.RateLimitWindow
	mw.RateLimitDisabled = cfg.Security.RateLimitDisabled
	mw.RequestTimeout = cfg.Server.WriteTimeout
	return mw
}

// newArtifactSource builds the configured backend. The returned func
// releases anything it holds open.
func newArtifactSource(c *config.ArtifactsConfig) (artifact.Source, func(), error) {
	switch c.Backend {
	case config.BackendBadger:
		// Opened per load so marquee-train can write between reloads.
		return artifact.NewBadgerDir(c.BadgerDir), func() {}, nil
	case config.BackendFiles, "":
		indexPath, encoderPath, metadataPath := c.ResolvedPaths()
		return artifact.NewFileStore(artifact.FilePaths{
			Index:    indexPath,
			Encoder:  encoderPath,
			Metadata: metadataPath,
		}), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown artifact backend %q", c.Backend)
	}
}
