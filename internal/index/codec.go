// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package index

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	codecMagic   = "MQIX"
	codecVersion = uint16(1)
	headerSize   = 4 + 2 + 4 + 4
)

// ErrCorrupt is returned by UnmarshalBinary for malformed input.
var ErrCorrupt = errors.New("index: corrupt data")

// MarshalBinary encodes the index as:
// magic "MQIX", version(uint16), dim(uint32), n(uint32), then n records of
// id(int64) followed by dim float64 values. All little-endian.
func (x *Index) MarshalBinary() ([]byte, error) {
	out := make([]byte, headerSize, headerSize+len(x.ids)*(8+8*x.dim))
	copy(out, codecMagic)
	binary.LittleEndian.PutUint16(out[4:6], codecVersion)
	binary.LittleEndian.PutUint32(out[6:10], uint32(x.dim))
	binary.LittleEndian.PutUint32(out[10:14], uint32(len(x.ids)))

	for i, id := range x.ids {
		out = binary.LittleEndian.AppendUint64(out, uint64(int64(id)))
		for _, v := range x.vecs[i] {
			out = binary.LittleEndian.AppendUint64(out, math.Float64bits(v))
		}
	}
	return out, nil
}

// UnmarshalBinary decodes data produced by MarshalBinary into a new index.
func UnmarshalBinary(data []byte) (*Index, error) {
	if len(data) < headerSize || string(data[:4]) != codecMagic {
		return nil, fmt.Errorf("%w: bad header", ErrCorrupt)
	}
	if v := binary.LittleEndian.Uint16(data[4:6]); v != codecVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, v)
	}
	dim := int(binary.LittleEndian.Uint32(data[6:10]))
	n := int(binary.LittleEndian.Uint32(data[10:14]))

	record := 8 + 8*dim
	if dim == 0 || n == 0 || (len(data)-headerSize)/record != n || (len(data)-headerSize)%record != 0 {
		return nil, fmt.Errorf("%w: %d bytes for %d vectors of dimension %d", ErrCorrupt, len(data), n, dim)
	}

	entries := make([]Entry, n)
	off := headerSize
	for i := range entries {
		entries[i].ID = int(int64(binary.LittleEndian.Uint64(data[off:])))
		off += 8
		vec := make([]float64, dim)
		for j := range vec {
			vec[j] = math.Float64frombits(binary.LittleEndian.Uint64(data[off:]))
			off += 8
		}
		entries[i].Vector = vec
	}

	idx, err := Build(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return idx, nil
}
