// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"time"

	"github.com/tomtom215/marquee/internal/recommend"
)

// Recommender is the part of recommend.Service the handlers use.
type Recommender interface {
	Recommend(ctx context.Context, title string, k int) (*recommend.Response, error)
	RecommendByID(ctx context.Context, id, k int) ([]recommend.Result, error)
	SuggestTitles(ctx context.Context, query string, k int) []string
	Snapshot() *recommend.Snapshot
	Config() recommend.Config
}

var _ Recommender = (*recommend.Service)(nil)

// Handler serves the recommendation and health endpoints.
type Handler struct {
	service   Recommender
	version   string
	startTime time.Time
}

// NewHandler creates a handler backed by service. version is reported by
// the health endpoint.
func NewHandler(service Recommender, version string) *Handler {
	return &Handler{
		service:   service,
		version:   version,
		startTime: time.Now(),
	}
}
