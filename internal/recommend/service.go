// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/titles"
)

// Operation labels used for metrics.
const (
	opRecommend = "recommend"
	opByID      = "recommend_by_id"
	opSuggest   = "suggest"
)

// Service answers recommendation and suggestion queries against the
// current snapshot. It is safe for concurrent use.
type Service struct {
	config Config
	logger zerolog.Logger

	current atomic.Pointer[Snapshot]

	// suggest results keyed by snapshot version, k and query; nil when disabled
	suggest *cache.LRU[[]string]
}

// NewService creates a service with no snapshot installed. Queries fail
// with ErrNotReady until Swap is called.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(cfg Config, logger zerolog.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Service{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.SuggestCacheSize > 0 {
		s.suggest = cache.NewLRU[[]string](cfg.SuggestCacheSize, cfg.SuggestCacheTTL)
	}
	return s, nil
}

// Config returns the service configuration.
func (s *Service) Config() Config { return s.config }

// Swap atomically installs next and returns the previous snapshot.
// A nil next is ignored.
func (s *Service) Swap(next *Snapshot) *Snapshot {
	if next == nil {
		return s.current.Load()
	}
	prev := s.current.Swap(next)
	if s.suggest != nil {
		s.suggest.Clear()
	}

	ev := s.logger.Info().
		Str("version", next.Version()).
		Int("items", next.Len()).
		Int("dimension", next.Dimension())
	if prev != nil {
		ev = ev.Str("previous_version", prev.Version())
	}
	ev.Msg("snapshot installed")
	return prev
}

// Snapshot returns the current snapshot, or nil before the first Swap.
func (s *Service) Snapshot() *Snapshot { return s.current.Load() }

// Ready reports whether a snapshot is installed.
func (s *Service) Ready() bool { return s.current.Load() != nil }

func (s *Service) snapshot() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotReady
	}
	return snap, nil
}

func (s *Service) clampK(k int) int {
	if k > s.config.MaxK {
		return s.config.MaxK
	}
	return k
}

// Recommend resolves title and returns its neighbors with the query echoed.
func (s *Service) Recommend(ctx context.Context, title string, k int) (*Response, error) {
	results, err := s.RecommendByTitle(ctx, title, k)
	if err != nil {
		return nil, err
	}
	return &Response{Query: title, Results: results}, nil
}

// RecommendByTitle returns up to k items most similar to the item named by
// title. A blank title or non-positive k yields an empty result.
func (s *Service) RecommendByTitle(ctx context.Context, title string, k int) ([]Result, error) {
	start := time.Now()
	if k <= 0 || strings.TrimSpace(title) == "" {
		metrics.RecordRecommendation(opRecommend, metrics.OutcomeEmpty, 0, time.Since(start))
		return []Result{}, nil
	}

	results, err := s.recommendByTitle(ctx, title, k)
	s.record(opRecommend, results, err, start)
	return results, err
}

func (s *Service) recommendByTitle(ctx context.Context, title string, k int) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	id, err := snap.resolver.Resolve(title)
	if errors.Is(err, titles.ErrNotFound) {
		return nil, &NotFoundError{Query: title}
	}
	if err != nil {
		return nil, fmt.Errorf("resolve title: %w", err)
	}
	return s.neighbors(snap, id, k)
}

// RecommendByID returns up to k items most similar to id, never including
// id itself. Non-positive k yields an empty result.
func (s *Service) RecommendByID(ctx context.Context, id, k int) ([]Result, error) {
	start := time.Now()
	if k <= 0 {
		metrics.RecordRecommendation(opByID, metrics.OutcomeEmpty, 0, time.Since(start))
		return []Result{}, nil
	}

	results, err := s.recommendByID(ctx, id, k)
	s.record(opByID, results, err, start)
	return results, err
}

func (s *Service) recommendByID(ctx context.Context, id, k int) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return s.neighbors(snap, id, k)
}

// neighbors re-encodes id from metadata and queries k+1 neighbors so that
// dropping id itself still leaves k results.
func (s *Service) neighbors(snap *Snapshot, id, k int) ([]Result, error) {
	item, ok := snap.items[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}

	vec, err := snap.encoder.Transform(item.Record())
	if err != nil {
		return nil, fmt.Errorf("encode item %d: %w", id, err)
	}

	k = s.clampK(k)
	found, err := snap.index.Query(vec, k+1)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}

	results := make([]Result, 0, k)
	for _, n := range found {
		if n.ID == id {
			continue
		}
		if len(results) == k {
			break
		}
		meta, ok := snap.items[n.ID]
		if !ok {
			// NewSnapshot guarantees every index id has metadata
			return nil, fmt.Errorf("index id %d has no metadata", n.ID)
		}
		results = append(results, newResult(meta, n.Distance))
	}
	return results, nil
}

func newResult(it *Item, distance float64) Result {
	sim := 1 - distance
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		sim, distance = 0, 1
	}
	return Result{
		ID:                it.ID,
		Title:             it.Title,
		Similarity:        sim,
		Distance:          distance,
		Language:          it.Language,
		ContentType:       it.ContentType,
		AvailableGlobally: it.AvailableGlobally,
		ReleaseDate:       it.ReleaseDate,
		ReleaseYear:       it.ReleaseYear,
		HoursViewed:       it.HoursViewed,
	}
}

// SuggestTitles returns up to k known titles resembling query. It never
// fails: a blank query, non-positive k or missing snapshot yields an empty
// slice.
func (s *Service) SuggestTitles(ctx context.Context, query string, k int) []string {
	start := time.Now()
	snap := s.current.Load()
	if k <= 0 || strings.TrimSpace(query) == "" || snap == nil || ctx.Err() != nil {
		metrics.RecordRecommendation(opSuggest, metrics.OutcomeEmpty, 0, time.Since(start))
		return []string{}
	}
	k = s.clampK(k)

	key := snap.version + "\x00" + strconv.Itoa(k) + "\x00" + query
	if s.suggest != nil {
		if cached, ok := s.suggest.Get(key); ok {
			metrics.RecordCacheLookup(opSuggest, true)
			metrics.RecordRecommendation(opSuggest, outcome(len(cached)), len(cached), time.Since(start))
			return slices.Clone(cached)
		}
		metrics.RecordCacheLookup(opSuggest, false)
	}

	out := snap.resolver.Suggest(query, k)
	if s.suggest != nil {
		s.suggest.Add(key, slices.Clone(out))
	}
	metrics.RecordRecommendation(opSuggest, outcome(len(out)), len(out), time.Since(start))
	return out
}

func (s *Service) record(op string, results []Result, err error, start time.Time) {
	elapsed := time.Since(start)
	switch {
	case err == nil:
		metrics.RecordRecommendation(op, outcome(len(results)), len(results), elapsed)
	case errors.Is(err, ErrNotFound):
		metrics.RecordRecommendation(op, metrics.OutcomeNotFound, 0, elapsed)
	default:
		metrics.RecordRecommendation(op, metrics.OutcomeError, 0, elapsed)
		s.logger.Warn().Err(err).Str("operation", op).Msg("recommendation failed")
	}
}

func outcome(n int) string {
	if n == 0 {
		return metrics.OutcomeEmpty
	}
	return metrics.OutcomeOK
}
