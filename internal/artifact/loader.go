// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package artifact

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/marquee/internal/encoder"
	"github.com/tomtom215/marquee/internal/index"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Loader assembles snapshots from a Source.
type Loader struct {
	source Source
	opts   recommend.SnapshotOptions
	logger zerolog.Logger
}

var _ recommend.Loader = (*Loader)(nil)

// NewLoader creates a loader. opts.Version is ignored; each load stamps its
// own version.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLoader(source Source, opts recommend.SnapshotOptions, logger zerolog.Logger) *Loader {
	return &Loader{
		source: source,
		opts:   opts,
		logger: logger.With().Str("component", "artifact").Logger(),
	}
}

// Load reads all artifacts concurrently and validates them as one snapshot.
// Every failure is a *recommend.LoadError.
func (l *Loader) Load(ctx context.Context) (*recommend.Snapshot, error) {
	start := time.Now()

	source := l.source
	if o, ok := source.(Opener); ok {
		opened, release, err := o.Open(ctx)
		if err != nil {
			err = &recommend.LoadError{Artifact: "store", Path: l.source.Location(NameIndex), Err: err}
			metrics.RecordSnapshotLoad(0, 0, time.Since(start), err)
			l.logger.Error().Err(err).Msg("artifact store unavailable")
			return nil, err
		}
		defer release()
		source = opened
	}

	var (
		idx   *index.Index
		state *encoder.State
		items []recommend.Item
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		idx, err = source.ReadIndex(gctx)
		return l.wrap(NameIndex, err)
	})
	g.Go(func() (err error) {
		state, err = source.ReadEncoder(gctx)
		return l.wrap(NameEncoder, err)
	})
	g.Go(func() (err error) {
		items, err = source.ReadMetadata(gctx)
		return l.wrap(NameMetadata, err)
	})

	if err := g.Wait(); err != nil {
		metrics.RecordSnapshotLoad(0, 0, time.Since(start), err)
		l.logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("artifact load failed")
		return nil, err
	}

	opts := l.opts
	opts.Version = fmt.Sprintf("%s-%d", start.UTC().Format("20060102T150405Z"), idx.Len())
	snap, err := recommend.NewSnapshot(state, idx, items, opts)
	if err != nil {
		metrics.RecordSnapshotLoad(0, 0, time.Since(start), err)
		l.logger.Error().Err(err).Msg("artifacts are inconsistent")
		return nil, err
	}
	metrics.RecordSnapshotLoad(snap.Len(), snap.Dimension(), time.Since(start), nil)

	l.logger.Info().
		Str("version", snap.Version()).
		Int("items", snap.Len()).
		Int("metadata_rows", len(items)).
		Int("dimension", snap.Dimension()).
		Dur("duration", time.Since(start)).
		Msg("artifacts loaded")
	return snap, nil
}

func (l *Loader) wrap(name string, err error) error {
	if err == nil {
		return nil
	}
	return &recommend.LoadError{Artifact: name, Path: l.source.Location(name), Err: err}
}
