// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package titles

import (
	"errors"
	"math"
	"testing"
)

func testResolver(t *testing.T, opts ...Option) *Resolver {
	t.Helper()
	idx, err := NewIndex([]Entry{
		{ID: 1, Title: "The Crown"},
		{ID: 2, Title: "Stranger Things"},
		{ID: 3, Title: "Wednesday"},
		{ID: 4, Title: "Ozark"},
	})
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	return NewResolver(idx, opts...)
}

func TestNewIndex_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []Entry
	}{
		{"blank title", []Entry{{ID: 1, Title: "  "}}},
		{"case collision", []Entry{{ID: 1, Title: "Dark"}, {ID: 2, Title: "DARK"}}},
		{"whitespace collision", []Entry{{ID: 1, Title: "Dark"}, {ID: 2, Title: " dark "}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewIndex(tt.entries); err == nil {
				t.Error("NewIndex() should fail")
			}
		})
	}
}

func TestResolve_ExactIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	r := testResolver(t)
	for _, q := range []string{"The Crown", "the crown", "THE CROWN", "  The Crown "} {
		id, err := r.Resolve(q)
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", q, err)
		}
		if id != 1 {
			t.Errorf("Resolve(%q) = %d, want 1", q, id)
		}
	}
}

func TestResolve_ExactBeatsFuzzy(t *testing.T) {
	t.Parallel()

	// a scorer that prefers Ozark for everything must not override an exact hit
	r := testResolver(t, WithScorer(ScorerFunc(func(_, candidate string) float64 {
		if candidate == "Ozark" {
			return 1
		}
		return 0.5
	})))
	id, err := r.Resolve("wednesday")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if id != 3 {
		t.Errorf("Resolve() = %d, want 3", id)
	}
}

func TestResolve_Fuzzy(t *testing.T) {
	t.Parallel()

	r := testResolver(t)
	tests := []struct {
		query string
		want  int
	}{
		{"Stranger Thing", 2},
		{"Wensday", 3},
		{"Ozrk", 4},
	}
	for _, tt := range tests {
		id, err := r.Resolve(tt.query)
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", tt.query, err)
		}
		if id != tt.want {
			t.Errorf("Resolve(%q) = %d, want %d", tt.query, id, tt.want)
		}
	}
}

func TestResolve_NotFound(t *testing.T) {
	t.Parallel()

	r := testResolver(t)
	for _, q := range []string{"", "   ", "xxxx"} {
		if _, err := r.Resolve(q); !errors.Is(err, ErrNotFound) {
			t.Errorf("Resolve(%q) error = %v, want ErrNotFound", q, err)
		}
	}
}

func TestResolve_BelowCutoff(t *testing.T) {
	t.Parallel()

	r := testResolver(t, WithScorer(ScorerFunc(func(_, _ string) float64 { return 0.29 })))
	if _, err := r.Resolve("anything"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve() error = %v, want ErrNotFound", err)
	}
	if got := r.Suggest("anything", 5); len(got) != 0 {
		t.Errorf("Suggest() = %v, want empty", got)
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	r := testResolver(t)
	got := r.Suggest("Ozrk", 3)
	if len(got) == 0 || got[0] != "Ozark" {
		t.Errorf("Suggest(Ozrk) = %v, want Ozark first", got)
	}
	if got := r.Suggest("", 3); len(got) != 0 {
		t.Errorf("Suggest(\"\") = %v, want empty", got)
	}
	if got := r.Suggest("Ozark", 0); len(got) != 0 {
		t.Errorf("Suggest(k=0) = %v, want empty", got)
	}
}

func TestSuggest_TiesSortedByTitle(t *testing.T) {
	t.Parallel()

	r := testResolver(t, WithScorer(ScorerFunc(func(_, _ string) float64 { return 0.5 })))
	got := r.Suggest("q", 3)
	want := []string{"Ozark", "Stranger Things", "The Crown"}
	if len(got) != len(want) {
		t.Fatalf("Suggest() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Suggest()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSuggest_ScoreDescending(t *testing.T) {
	t.Parallel()

	scores := map[string]float64{"The Crown": 0.4, "Stranger Things": 0.9, "Wednesday": 0.6, "Ozark": 0.1}
	r := testResolver(t, WithScorer(ScorerFunc(func(_, c string) float64 { return scores[c] })))
	got := r.Suggest("q", 10)
	want := []string{"Stranger Things", "Wednesday", "The Crown"}
	if len(got) != len(want) {
		t.Fatalf("Suggest() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Suggest()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRatcliffObershelp(t *testing.T) {
	t.Parallel()

	s := RatcliffObershelp{}
	tests := []struct {
		query, candidate string
		want             float64
	}{
		{"The Crown", "The Crown", 1},
		{"crown", "The Crown", 8.0 / 14.0},
		{"Stranger Thing", "Stranger Things", 28.0 / 29.0},
		{"xxxx", "Ozark", 0},
		{"Amélie", "Amélie", 1},
	}
	for _, tt := range tests {
		got := s.Score(tt.query, tt.candidate)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Score(%q, %q) = %v, want %v", tt.query, tt.candidate, got, tt.want)
		}
	}
}
