// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package titles maps free-text title queries to content identifiers.
//
// Resolution tries an exact case-folded lookup first and falls back to fuzzy
// matching through a pluggable Scorer. Fuzzy results below the cutoff are
// never accepted.
package titles

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// DefaultCutoff is the minimum fuzzy score accepted by Resolve and Suggest.
const DefaultCutoff = 0.3

// ErrNotFound is returned by Resolve when no title matches well enough.
var ErrNotFound = errors.New("title not found")

// Entry pairs an identifier with its display title.
type Entry struct {
	ID    int
	Title string
}

// Normalize case-folds and trims a title for exact lookup.
func Normalize(title string) string {
	// Caser values are stateful, so one is built per call.
	return cases.Fold().String(strings.TrimSpace(title))
}

// Index is the immutable normalized-title to identifier mapping.
type Index struct {
	byKey   map[string]int
	entries []Entry
}

// NewIndex builds an index, rejecting blank titles and titles that collide
// after normalization.
func NewIndex(entries []Entry) (*Index, error) {
	idx := &Index{
		byKey:   make(map[string]int, len(entries)),
		entries: make([]Entry, 0, len(entries)),
	}
	for _, e := range entries {
		key := Normalize(e.Title)
		if key == "" {
			return nil, fmt.Errorf("titles: item %d has a blank title", e.ID)
		}
		if other, dup := idx.byKey[key]; dup {
			return nil, fmt.Errorf("titles: %q maps to both %d and %d", e.Title, other, e.ID)
		}
		idx.byKey[key] = e.ID
		idx.entries = append(idx.entries, e)
	}
	sort.Slice(idx.entries, func(i, j int) bool { return idx.entries[i].Title < idx.entries[j].Title })
	return idx, nil
}

// Len returns the number of titles.
func (x *Index) Len() int { return len(x.entries) }

// Lookup returns the identifier for an exact (case-folded) title match.
func (x *Index) Lookup(title string) (int, bool) {
	id, ok := x.byKey[Normalize(title)]
	return id, ok
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithScorer replaces the default Ratcliff/Obershelp scorer.
func WithScorer(s Scorer) Option {
	return func(r *Resolver) { r.scorer = s }
}

// WithCutoff sets the minimum fuzzy score.
func WithCutoff(c float64) Option {
	return func(r *Resolver) { r.cutoff = c }
}

// Resolver answers Resolve and Suggest queries against an Index.
type Resolver struct {
	index  *Index
	scorer Scorer
	cutoff float64
}

// NewResolver creates a resolver over idx.
func NewResolver(idx *Index, opts ...Option) *Resolver {
	r := &Resolver{index: idx, scorer: RatcliffObershelp{}, cutoff: DefaultCutoff}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Index returns the underlying title index.
func (r *Resolver) Index() *Index { return r.index }

type match struct {
	entry Entry
	score float64
}

// matches scores every title against query and returns those at or above
// the cutoff, best first, ties by title.
func (r *Resolver) matches(query string) []match {
	out := make([]match, 0)
	for _, e := range r.index.entries {
		s := r.scorer.Score(query, e.Title)
		if s >= r.cutoff {
			out = append(out, match{entry: e, score: s})
		}
	}
	// entries are already title-sorted, so a stable sort keeps the tie order
	sort.SliceStable(out, func(i, j int) bool { return out[i].score > out[j].score })
	return out
}

// Resolve returns the identifier for query. An exact case-folded match wins;
// otherwise the single best fuzzy match is accepted if it meets the cutoff.
func (r *Resolver) Resolve(query string) (int, error) {
	if strings.TrimSpace(query) == "" {
		return 0, ErrNotFound
	}
	if id, ok := r.index.Lookup(query); ok {
		return id, nil
	}
	best := r.matches(query)
	if len(best) == 0 {
		return 0, ErrNotFound
	}
	return best[0].entry.ID, nil
}

// Suggest returns up to k titles similar to query. It never fails; an empty
// query or non-positive k yields an empty slice.
func (r *Resolver) Suggest(query string, k int) []string {
	if k <= 0 || strings.TrimSpace(query) == "" {
		return []string{}
	}
	ms := r.matches(query)
	if len(ms) > k {
		ms = ms[:k]
	}
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.entry.Title
	}
	return out
}
