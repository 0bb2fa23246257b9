// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/marquee/internal/encoder"
	"github.com/tomtom215/marquee/internal/titles"
)

// Loader produces a validated snapshot from storage.
type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// SnapshotOptions tunes snapshot construction.
type SnapshotOptions struct {
	// Version identifies the artifact generation, e.g. a build timestamp.
	Version string

	// Scorer overrides the fuzzy title scorer.
	Scorer titles.Scorer

	// FuzzyCutoff overrides titles.DefaultCutoff when set. Zero is a
	// valid cutoff that accepts any best match.
	FuzzyCutoff *float64
}

// Snapshot is the immutable serving state. It is safe for concurrent use.
type Snapshot struct {
	version  string
	loadedAt time.Time

	encoder  *encoder.State
	index    Searcher
	resolver *titles.Resolver
	items    map[int]*Item
}

// NewSnapshot validates the artifacts against each other and assembles a
// snapshot. All failures are reported as *LoadError.
//
//nolint:gocritic // hugeParam: options are read once
func NewSnapshot(state *encoder.State, idx Searcher, items []Item, opts SnapshotOptions) (*Snapshot, error) {
	fail := func(artifact string, err error) (*Snapshot, error) {
		return nil, &LoadError{Artifact: artifact, Err: err}
	}

	if state == nil {
		return fail("encoder", errors.New("missing encoder state"))
	}
	if idx == nil || idx.Len() == 0 {
		return fail("index", errors.New("index is empty"))
	}
	if len(items) == 0 {
		return fail("metadata", errors.New("metadata table is empty"))
	}
	if got, want := idx.Dimension(), state.Dimension(); got != want {
		return fail("snapshot", fmt.Errorf("index dimension %d does not match encoder dimension %d", got, want))
	}

	byID := make(map[int]*Item, len(items))
	entries := make([]titles.Entry, 0, len(items))
	for i := range items {
		it := &items[i]
		if _, dup := byID[it.ID]; dup {
			return fail("metadata", fmt.Errorf("duplicate id %d", it.ID))
		}
		byID[it.ID] = it
		entries = append(entries, titles.Entry{ID: it.ID, Title: it.Title})
	}

	var missing []int
	for _, id := range idx.IDs() {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		if len(missing) > 5 {
			return fail("snapshot", fmt.Errorf("%d index ids absent from metadata (first: %v)", len(missing), missing[:5]))
		}
		return fail("snapshot", fmt.Errorf("index ids absent from metadata: %v", missing))
	}

	titleIndex, err := titles.NewIndex(entries)
	if err != nil {
		return fail("metadata", err)
	}

	var ropts []titles.Option
	if opts.Scorer != nil {
		ropts = append(ropts, titles.WithScorer(opts.Scorer))
	}
	if opts.FuzzyCutoff != nil {
		ropts = append(ropts, titles.WithCutoff(*opts.FuzzyCutoff))
	}

	version := opts.Version
	if version == "" {
		version = time.Now().UTC().Format("20060102T150405Z")
	}

	return &Snapshot{
		version:  version,
		loadedAt: time.Now(),
		encoder:  state,
		index:    idx,
		resolver: titles.NewResolver(titleIndex, ropts...),
		items:    byID,
	}, nil
}

// Version returns the artifact generation identifier.
func (s *Snapshot) Version() string { return s.version }

// LoadedAt returns when the snapshot was assembled.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// Len returns the number of indexed items.
func (s *Snapshot) Len() int { return s.index.Len() }

// Dimension returns the feature vector dimension.
func (s *Snapshot) Dimension() int { return s.index.Dimension() }

// Item returns the metadata row for id.
func (s *Snapshot) Item(id int) (Item, bool) {
	it, ok := s.items[id]
	if !ok {
		return Item{}, false
	}
	return *it, true
}
