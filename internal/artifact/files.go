// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/encoder"
	"github.com/tomtom215/marquee/internal/index"
	"github.com/tomtom215/marquee/internal/recommend"
)

// FilePaths locates each artifact on disk.
type FilePaths struct {
	Index    string
	Encoder  string
	Metadata string
}

// DirPaths returns the default file layout under dir.
func DirPaths(dir string) FilePaths {
	return FilePaths{
		Index:    filepath.Join(dir, DefaultIndexFile),
		Encoder:  filepath.Join(dir, DefaultEncoderFile),
		Metadata: filepath.Join(dir, DefaultMetadataFile),
	}
}

// FileStore keeps each artifact in its own file.
type FileStore struct {
	paths FilePaths
	meta  *MetadataTable
}

var (
	_ Source = (*FileStore)(nil)
	_ Sink   = (*FileStore)(nil)
)

// NewFileStore creates a store over paths.
func NewFileStore(paths FilePaths) *FileStore {
	return &FileStore{paths: paths, meta: NewMetadataTable()}
}

// Location implements Source.
func (s *FileStore) Location(name string) string {
	switch name {
	case NameIndex:
		return s.paths.Index
	case NameEncoder:
		return s.paths.Encoder
	case NameMetadata:
		return s.paths.Metadata
	default:
		return ""
	}
}

// ReadIndex implements Source.
func (s *FileStore) ReadIndex(_ context.Context) (*index.Index, error) {
	data, err := readFile(s.paths.Index)
	if err != nil {
		return nil, err
	}
	return index.UnmarshalBinary(data)
}

// ReadEncoder implements Source.
func (s *FileStore) ReadEncoder(_ context.Context) (*encoder.State, error) {
	data, err := readFile(s.paths.Encoder)
	if err != nil {
		return nil, err
	}
	return decodeEncoder(data)
}

// ReadMetadata implements Source.
func (s *FileStore) ReadMetadata(ctx context.Context) ([]recommend.Item, error) {
	if _, err := os.Stat(s.paths.Metadata); err != nil {
		return nil, statError(err)
	}
	return s.meta.Read(ctx, s.paths.Metadata)
}

// WriteIndex implements Sink.
func (s *FileStore) WriteIndex(_ context.Context, idx *index.Index) error {
	data, err := idx.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	return writeFile(s.paths.Index, data)
}

// WriteEncoder implements Sink.
func (s *FileStore) WriteEncoder(_ context.Context, state *encoder.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode encoder state: %w", err)
	}
	return writeFile(s.paths.Encoder, data)
}

// WriteMetadata implements Sink.
func (s *FileStore) WriteMetadata(ctx context.Context, items []recommend.Item) error {
	if err := os.MkdirAll(filepath.Dir(s.paths.Metadata), 0o750); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}
	return s.meta.Write(ctx, s.paths.Metadata, items)
}

func decodeEncoder(data []byte) (*encoder.State, error) {
	var state encoder.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode encoder state: %w", err)
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	return &state, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, statError(err)
	}
	return data, nil
}

func statError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrMissing, err)
	}
	return err
}

// writeFile writes through a temp file and rename so a reader never sees a
// partially written artifact.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
