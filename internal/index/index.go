// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package index provides an exact cosine-distance nearest-neighbor index.
//
// Queries scan every stored vector, which is O(N·D) per call. This stays
// fast for catalogs in the low thousands; an approximate structure can be
// substituted behind recommend.Searcher if the catalog grows much larger.
package index

import (
	"fmt"
	"math"
	"sort"
)

// Entry is one (identifier, vector) pair supplied to Build.
type Entry struct {
	ID     int
	Vector []float64
}

// Neighbor is a query result. Distance is 1 - cosine similarity.
type Neighbor struct {
	ID       int
	Distance float64
}

// Index is an immutable brute-force vector index. Safe for concurrent reads.
type Index struct {
	ids   []int
	vecs  [][]float64
	norms []float64
	pos   map[int]int
	dim   int
}

// Build copies entries into a new index and precomputes vector norms.
func Build(entries []Entry) (*Index, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("index: no entries")
	}
	dim := len(entries[0].Vector)
	if dim == 0 {
		return nil, fmt.Errorf("index: entry %d has an empty vector", entries[0].ID)
	}

	idx := &Index{
		ids:   make([]int, len(entries)),
		vecs:  make([][]float64, len(entries)),
		norms: make([]float64, len(entries)),
		pos:   make(map[int]int, len(entries)),
		dim:   dim,
	}
	for i, e := range entries {
		if len(e.Vector) != dim {
			return nil, fmt.Errorf("index: entry %d has dimension %d, want %d", e.ID, len(e.Vector), dim)
		}
		if _, dup := idx.pos[e.ID]; dup {
			return nil, fmt.Errorf("index: duplicate id %d", e.ID)
		}
		idx.pos[e.ID] = i
		idx.ids[i] = e.ID
		idx.vecs[i] = append([]float64(nil), e.Vector...)
		idx.norms[i] = norm(e.Vector)
	}
	return idx, nil
}

// Len returns the number of indexed items.
func (x *Index) Len() int { return len(x.ids) }

// Dimension returns the shared vector dimension.
func (x *Index) Dimension() int { return x.dim }

// IDs returns the indexed identifiers in insertion order.
func (x *Index) IDs() []int { return append([]int(nil), x.ids...) }

// Vector returns a copy of the stored vector for id.
func (x *Index) Vector(id int) ([]float64, bool) {
	i, ok := x.pos[id]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), x.vecs[i]...), true
}

// Query returns up to k neighbors of vec ordered by distance, then id.
// k <= 0 yields no results; k >= Len() returns every item.
func (x *Index) Query(vec []float64, k int) ([]Neighbor, error) {
	if len(vec) != x.dim {
		return nil, fmt.Errorf("index: query dimension %d, want %d", len(vec), x.dim)
	}
	if k <= 0 {
		return []Neighbor{}, nil
	}

	qn := norm(vec)
	all := make([]Neighbor, len(x.ids))
	for i := range x.vecs {
		all[i] = Neighbor{ID: x.ids[i], Distance: 1 - cosine(vec, qn, x.vecs[i], x.norms[i])}
	}
	sort.Slice(all, func(a, b int) bool {
		if all[a].Distance != all[b].Distance {
			return all[a].Distance < all[b].Distance
		}
		return all[a].ID < all[b].ID
	})
	if k > len(all) {
		k = len(all)
	}
	return all[:k], nil
}

// cosine returns the cosine similarity, or 0 when either side has no usable
// magnitude or the result is not finite.
func cosine(a []float64, an float64, b []float64, bn float64) float64 {
	if !usable(an) || !usable(bn) {
		return 0
	}
	s := dot(a, b) / (an * bn)
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0
	}
	// rounding can push parallel vectors slightly past 1
	return math.Max(-1, math.Min(1, s))
}

func usable(n float64) bool {
	return n > 0 && !math.IsNaN(n) && !math.IsInf(n, 0)
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func norm(v []float64) float64 { return math.Sqrt(dot(v, v)) }
