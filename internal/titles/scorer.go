// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package titles

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Scorer rates how closely candidate matches query, from 0 (nothing in
// common) to 1 (identical). Implementations must be safe for concurrent use.
type Scorer interface {
	Score(query, candidate string) float64
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(query, candidate string) float64

// Score calls f(query, candidate).
func (f ScorerFunc) Score(query, candidate string) float64 { return f(query, candidate) }

// RatcliffObershelp scores strings with the gestalt pattern matching ratio
// 2*M/T over runes, where M is the number of matched runes and T the total
// rune count of both strings. Comparison is case-sensitive.
type RatcliffObershelp struct{}

// Score implements Scorer.
func (RatcliffObershelp) Score(query, candidate string) float64 {
	m := difflib.NewMatcher(runes(candidate), runes(query))
	return m.Ratio()
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
