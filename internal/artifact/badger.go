// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package artifact

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/encoder"
	"github.com/tomtom215/marquee/internal/index"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Badger key layout:
//
//	artifact:index    -> index.MarshalBinary bytes
//	artifact:encoder  -> encoder state JSON
//	artifact:metadata -> JSON array of recommend.Item
const keyPrefix = "artifact:"

// BadgerStore keeps all artifacts in one Badger database. The caller owns
// the *badger.DB and closes it.
type BadgerStore struct {
	db *badger.DB
}

var (
	_ Source = (*BadgerStore)(nil)
	_ Sink   = (*BadgerStore)(nil)
)

// NewBadgerStore wraps an open database.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// OpenBadger opens the database at dir with Badger's own logging disabled.
func OpenBadger(dir string, readOnly bool) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil).WithReadOnly(readOnly)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", dir, err)
	}
	return db, nil
}

func artifactKey(name string) []byte { return []byte(keyPrefix + name) }

// Location implements Source.
func (s *BadgerStore) Location(name string) string { return "badger:" + keyPrefix + name }

func (s *BadgerStore) get(name string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(artifactKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: key %s%s", ErrMissing, keyPrefix, name)
		}
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	return data, err
}

func (s *BadgerStore) put(name string, data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(artifactKey(name), data)
	})
}

// ReadIndex implements Source.
func (s *BadgerStore) ReadIndex(_ context.Context) (*index.Index, error) {
	data, err := s.get(NameIndex)
	if err != nil {
		return nil, err
	}
	return index.UnmarshalBinary(data)
}

// ReadEncoder implements Source.
func (s *BadgerStore) ReadEncoder(_ context.Context) (*encoder.State, error) {
	data, err := s.get(NameEncoder)
	if err != nil {
		return nil, err
	}
	return decodeEncoder(data)
}

// ReadMetadata implements Source.
func (s *BadgerStore) ReadMetadata(_ context.Context) ([]recommend.Item, error) {
	data, err := s.get(NameMetadata)
	if err != nil {
		return nil, err
	}
	var items []recommend.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return items, nil
}

// WriteIndex implements Sink.
func (s *BadgerStore) WriteIndex(_ context.Context, idx *index.Index) error {
	data, err := idx.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	return s.put(NameIndex, data)
}

// WriteEncoder implements Sink.
func (s *BadgerStore) WriteEncoder(_ context.Context, state *encoder.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode encoder state: %w", err)
	}
	return s.put(NameEncoder, data)
}

// WriteMetadata implements Sink.
func (s *BadgerStore) WriteMetadata(_ context.Context, items []recommend.Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	return s.put(NameMetadata, data)
}

// BadgerDir is a Source over a Badger directory that is opened read-only
// only while artifacts are being read. Badger locks its directory for as
// long as it is open, so keeping it closed between loads lets
// marquee-train rewrite the store while the server runs.
type BadgerDir struct {
	dir string
}

var (
	_ Source = (*BadgerDir)(nil)
	_ Opener = (*BadgerDir)(nil)
)

// NewBadgerDir creates a source over dir. Nothing is opened until a read.
func NewBadgerDir(dir string) *BadgerDir {
	return &BadgerDir{dir: dir}
}

// Open implements Opener. release closes the database.
func (b *BadgerDir) Open(_ context.Context) (Source, func(), error) {
	db, err := OpenBadger(b.dir, true)
	if err != nil {
		return nil, nil, err
	}
	return NewBadgerStore(db), func() { _ = db.Close() }, nil
}

// Location implements Source.
func (b *BadgerDir) Location(name string) string {
	return b.dir + ":" + keyPrefix + name
}

func (b *BadgerDir) with(ctx context.Context, fn func(Source) error) error {
	src, release, err := b.Open(ctx)
	if err != nil {
		return err
	}
	defer release()
	return fn(src)
}

// ReadIndex implements Source.
func (b *BadgerDir) ReadIndex(ctx context.Context) (idx *index.Index, err error) {
	err = b.with(ctx, func(s Source) (err error) {
		idx, err = s.ReadIndex(ctx)
		return err
	})
	return idx, err
}

// ReadEncoder implements Source.
func (b *BadgerDir) ReadEncoder(ctx context.Context) (state *encoder.State, err error) {
	err = b.with(ctx, func(s Source) (err error) {
		state, err = s.ReadEncoder(ctx)
		return err
	})
	return state, err
}

// ReadMetadata implements Source.
func (b *BadgerDir) ReadMetadata(ctx context.Context) (items []recommend.Item, err error) {
	err = b.with(ctx, func(s Source) (err error) {
		items, err = s.ReadMetadata(ctx)
		return err
	})
	return items, err
}
