// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package index

import (
	"errors"
	"math"
	"testing"
)

func fourItems(t *testing.T) *Index {
	t.Helper()
	idx, err := Build([]Entry{
		{ID: 1, Vector: []float64{1, 0}},
		{ID: 2, Vector: []float64{1, 0.1}},
		{ID: 3, Vector: []float64{0, 1}},
		{ID: 4, Vector: []float64{1, 1}},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return idx
}

func ids(ns []Neighbor) []int {
	out := make([]int, len(ns))
	for i, n := range ns {
		out[i] = n.ID
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []Entry
	}{
		{"empty", nil},
		{"empty vector", []Entry{{ID: 1}}},
		{"dimension mismatch", []Entry{{ID: 1, Vector: []float64{1}}, {ID: 2, Vector: []float64{1, 2}}}},
		{"duplicate id", []Entry{{ID: 1, Vector: []float64{1}}, {ID: 1, Vector: []float64{2}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Build(tt.entries); err == nil {
				t.Error("Build() should fail")
			}
		})
	}
}

func TestQuery_Ordering(t *testing.T) {
	t.Parallel()

	idx := fourItems(t)
	got, err := idx.Query([]float64{1, 0}, 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if want := []int{1, 2, 4}; !equalInts(ids(got), want) {
		t.Errorf("Query() ids = %v, want %v", ids(got), want)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Distance > got[i].Distance {
			t.Errorf("distances not ascending: %v", got)
		}
	}
	if got[0].Distance != 0 {
		t.Errorf("self distance = %v, want 0", got[0].Distance)
	}
}

func TestQuery_TiesBrokenByID(t *testing.T) {
	t.Parallel()

	idx, err := Build([]Entry{
		{ID: 9, Vector: []float64{1, 0}},
		{ID: 3, Vector: []float64{2, 0}},
		{ID: 5, Vector: []float64{3, 0}},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	got, err := idx.Query([]float64{1, 0}, 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if want := []int{3, 5, 9}; !equalInts(ids(got), want) {
		t.Errorf("Query() ids = %v, want %v", ids(got), want)
	}
}

func TestQuery_KBounds(t *testing.T) {
	t.Parallel()

	idx := fourItems(t)
	tests := []struct {
		k    int
		want int
	}{
		{-1, 0},
		{0, 0},
		{2, 2},
		{4, 4},
		{100, 4},
	}
	for _, tt := range tests {
		got, err := idx.Query([]float64{0, 1}, tt.k)
		if err != nil {
			t.Fatalf("Query(k=%d) error = %v", tt.k, err)
		}
		if len(got) != tt.want {
			t.Errorf("Query(k=%d) len = %d, want %d", tt.k, len(got), tt.want)
		}
	}
}

func TestQuery_DimensionMismatch(t *testing.T) {
	t.Parallel()

	idx := fourItems(t)
	if _, err := idx.Query([]float64{1, 2, 3}, 1); err == nil {
		t.Error("Query() with wrong dimension should fail")
	}
}

func TestQuery_ZeroNormIsSanitized(t *testing.T) {
	t.Parallel()

	idx, err := Build([]Entry{
		{ID: 1, Vector: []float64{0, 0}},
		{ID: 2, Vector: []float64{1, 0}},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got, err := idx.Query([]float64{0, 0}, 2)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	for _, n := range got {
		if n.Distance != 1 {
			t.Errorf("zero query distance for %d = %v, want 1", n.ID, n.Distance)
		}
	}

	got, err = idx.Query([]float64{math.NaN(), 1}, 2)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	for _, n := range got {
		if math.IsNaN(n.Distance) {
			t.Errorf("NaN distance leaked for %d", n.ID)
		}
	}
}

func TestVector(t *testing.T) {
	t.Parallel()

	idx := fourItems(t)
	v, ok := idx.Vector(4)
	if !ok || v[0] != 1 || v[1] != 1 {
		t.Errorf("Vector(4) = %v, %v", v, ok)
	}
	v[0] = 42
	again, _ := idx.Vector(4)
	if again[0] != 1 {
		t.Error("Vector() must return a copy")
	}
	if _, ok := idx.Vector(99); ok {
		t.Error("Vector(99) should not exist")
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	idx := fourItems(t)
	data, err := idx.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	decoded, err := UnmarshalBinary(data)
	if err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}
	if decoded.Len() != idx.Len() || decoded.Dimension() != idx.Dimension() {
		t.Fatalf("decoded shape %dx%d, want %dx%d", decoded.Len(), decoded.Dimension(), idx.Len(), idx.Dimension())
	}
	q := []float64{0.3, 0.7}
	a, _ := idx.Query(q, 4)
	b, _ := decoded.Query(q, 4)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("result %d: %v != %v", i, a[i], b[i])
		}
	}
}

func TestCodec_Corrupt(t *testing.T) {
	t.Parallel()

	good, err := fourItems(t).MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad magic", append([]byte("XXXX"), good[4:]...)},
		{"truncated", good[:len(good)-3]},
		{"trailing", append(append([]byte(nil), good...), 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := UnmarshalBinary(tt.data); !errors.Is(err, ErrCorrupt) {
				t.Errorf("UnmarshalBinary() error = %v, want ErrCorrupt", err)
			}
		})
	}
}
