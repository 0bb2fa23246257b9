// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package artifact

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/marquee/internal/encoder"
	"github.com/tomtom215/marquee/internal/index"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Artifact names used in LoadError.
const (
	NameIndex    = "index"
	NameEncoder  = "encoder"
	NameMetadata = "metadata"
)

// Default file names inside an artifact directory.
const (
	DefaultIndexFile    = "index.bin"
	DefaultEncoderFile  = "encoder.json"
	DefaultMetadataFile = "metadata.parquet"
)

// ErrMissing is wrapped when an artifact does not exist.
var ErrMissing = errors.New("artifact missing")

// Source reads artifacts. Implementations must be safe for concurrent calls
// to different Read methods.
type Source interface {
	ReadIndex(ctx context.Context) (*index.Index, error)
	ReadEncoder(ctx context.Context) (*encoder.State, error)
	ReadMetadata(ctx context.Context) ([]recommend.Item, error)

	// Location describes where the named artifact lives, for error messages.
	Location(name string) string
}

// Opener is implemented by sources that hold resources only for the
// duration of a load. Loader opens it once per Load and reads from the
// returned Source.
type Opener interface {
	Open(ctx context.Context) (src Source, release func(), err error)
}

// Sink writes artifacts produced by training.
type Sink interface {
	WriteIndex(ctx context.Context, idx *index.Index) error
	WriteEncoder(ctx context.Context, state *encoder.State) error
	WriteMetadata(ctx context.Context, items []recommend.Item) error
}

// Save writes all three artifacts to sink.
func Save(ctx context.Context, sink Sink, idx *index.Index, state *encoder.State, items []recommend.Item) error {
	if err := sink.WriteIndex(ctx, idx); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	if err := sink.WriteEncoder(ctx, state); err != nil {
		return fmt.Errorf("write encoder: %w", err)
	}
	if err := sink.WriteMetadata(ctx, items); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}
