// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/tomtom215/marquee/internal/artifact"
	"github.com/tomtom215/marquee/internal/encoder"
	"github.com/tomtom215/marquee/internal/index"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/titles"
)

type trainOptions struct {
	Input        string
	OutDir       string
	MetadataFile string
	BadgerDir    string
}

type trainSummary struct {
	Rows        int
	Items       int
	Duplicates  int
	Dimension   int
	Destination string
}

// store is both ends of an artifact backend.
type store interface {
	artifact.Source
	artifact.Sink
}

func train(ctx context.Context, opts trainOptions) (summary *trainSummary, err error) {
	if opts.Input == "" {
		return nil, errors.New("--input is required")
	}
	logger := logging.WithComponent("train")

	rows, err := artifact.NewMetadataTable().Read(ctx, opts.Input)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", opts.Input, err)
	}
	items := dedupe(rows)
	if len(items) == 0 {
		return nil, fmt.Errorf("%s has no rows", opts.Input)
	}
	logger.Info().Int("rows", len(rows)).Int("items", len(items)).Msg("items read")

	idx, state, err := build(items)
	if err != nil {
		return nil, err
	}

	var (
		dst         store
		destination string
	)
	if opts.BadgerDir != "" {
		db, openErr := artifact.OpenBadger(opts.BadgerDir, false)
		if openErr != nil {
			return nil, openErr
		}
		defer func() {
			if cerr := db.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close badger: %w", cerr)
			}
		}()
		dst, destination = artifact.NewBadgerStore(db), opts.BadgerDir
	} else {
		paths := artifact.DirPaths(opts.OutDir)
		if opts.MetadataFile != "" {
			paths.Metadata = filepath.Join(opts.OutDir, opts.MetadataFile)
		}
		dst, destination = artifact.NewFileStore(paths), opts.OutDir
	}

	if err := artifact.Save(ctx, dst, idx, state, items); err != nil {
		return nil, err
	}

	snap, err := artifact.NewLoader(dst, recommend.SnapshotOptions{}, logger).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("verify artifacts: %w", err)
	}

	return &trainSummary{
		Rows:        len(rows),
		Items:       snap.Len(),
		Duplicates:  len(rows) - len(items),
		Dimension:   snap.Dimension(),
		Destination: destination,
	}, nil
}

// dedupe keeps the first row for each folded title and each identifier.
func dedupe(rows []recommend.Item) []recommend.Item {
	seenTitle := make(map[string]struct{}, len(rows))
	seenID := make(map[int]struct{}, len(rows))
	out := make([]recommend.Item, 0, len(rows))
	for i := range rows {
		key := titles.Normalize(rows[i].Title)
		if key == "" {
			continue
		}
		if _, dup := seenTitle[key]; dup {
			continue
		}
		if _, dup := seenID[rows[i].ID]; dup {
			continue
		}
		seenTitle[key] = struct{}{}
		seenID[rows[i].ID] = struct{}{}
		out = append(out, rows[i])
	}
	return out
}

// build fits the encoder on items and indexes their vectors.
func build(items []recommend.Item) (*index.Index, *encoder.State, error) {
	records := make([]encoder.Record, len(items))
	for i := range items {
		records[i] = items[i].Record()
	}
	state, err := encoder.Fit(recommend.FeatureSchema(), records)
	if err != nil {
		return nil, nil, fmt.Errorf("fit encoder: %w", err)
	}
	vecs, err := state.TransformBatch(records)
	if err != nil {
		return nil, nil, fmt.Errorf("transform items: %w", err)
	}
	entries := make([]index.Entry, len(items))
	for i := range items {
		entries[i] = index.Entry{ID: items[i].ID, Vector: vecs[i]}
	}
	idx, err := index.Build(entries)
	if err != nil {
		return nil, nil, fmt.Errorf("build index: %w", err)
	}
	return idx, state, nil
}
