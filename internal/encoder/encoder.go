// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package encoder

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrEmptyCorpus is returned when Fit is called without any records.
var ErrEmptyCorpus = errors.New("encoder: empty corpus")

// Record holds the raw attributes of one item keyed by column name.
// A column absent from Numeric or Categorical is treated as missing.
type Record struct {
	Numeric     map[string]float64
	Categorical map[string]string
}

// NumericSpec declares a numeric input column.
type NumericSpec struct {
	Name string `json:"name"`
	// Log applies log1p before standardization.
	Log bool `json:"log"`
}

// Schema lists the columns to encode, in vector order.
type Schema struct {
	Numeric     []NumericSpec `json:"numeric"`
	Categorical []string      `json:"categorical"`
}

// NumericColumn is the fitted state of one numeric column.
type NumericColumn struct {
	Name string  `json:"name"`
	Log  bool    `json:"log"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// CategoricalColumn is the fitted state of one categorical column.
type CategoricalColumn struct {
	Name       string   `json:"name"`
	Vocabulary []string `json:"vocabulary"`
	// Fill replaces missing values.
	Fill string `json:"fill"`
}

// State is the fitted, immutable encoder. It is safe for concurrent use.
type State struct {
	Numeric     []NumericColumn     `json:"numeric"`
	Categorical []CategoricalColumn `json:"categorical"`

	// slot lookup per categorical column, built by Fit and Validate
	offsets []map[string]int
}

// Fit computes encoder state from a training corpus.
func Fit(schema Schema, records []Record) (*State, error) {
	if len(records) == 0 {
		return nil, ErrEmptyCorpus
	}
	if len(schema.Numeric) == 0 && len(schema.Categorical) == 0 {
		return nil, errors.New("encoder: schema has no columns")
	}

	s := &State{}
	for _, spec := range schema.Numeric {
		s.Numeric = append(s.Numeric, fitNumeric(spec, records))
	}
	for _, name := range schema.Categorical {
		col, err := fitCategorical(name, records)
		if err != nil {
			return nil, err
		}
		s.Categorical = append(s.Categorical, col)
	}
	s.index()
	return s, nil
}

func fitNumeric(spec NumericSpec, records []Record) NumericColumn {
	col := NumericColumn{Name: spec.Name, Log: spec.Log}

	present := make([]float64, 0, len(records))
	for _, r := range records {
		if v, ok := col.value(r); ok {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		col.Std = 1
		return col
	}

	var sum float64
	for _, v := range present {
		sum += v
	}
	col.Mean = sum / float64(len(present))

	// Imputed rows sit exactly at the mean and only grow the denominator.
	var sq float64
	for _, v := range present {
		d := v - col.Mean
		sq += d * d
	}
	col.Std = math.Sqrt(sq / float64(len(records)))
	if col.Std == 0 || math.IsNaN(col.Std) || math.IsInf(col.Std, 0) {
		col.Std = 1
	}
	return col
}

func fitCategorical(name string, records []Record) (CategoricalColumn, error) {
	counts := make(map[string]int)
	for _, r := range records {
		if v, ok := categoricalValue(r, name); ok {
			counts[v]++
		}
	}
	if len(counts) == 0 {
		return CategoricalColumn{}, fmt.Errorf("encoder: column %q has no values", name)
	}

	vocab := make([]string, 0, len(counts))
	for v := range counts {
		vocab = append(vocab, v)
	}
	sort.Strings(vocab)

	fill := vocab[0]
	for _, v := range vocab[1:] {
		if counts[v] > counts[fill] {
			fill = v
		}
	}
	return CategoricalColumn{Name: name, Vocabulary: vocab, Fill: fill}, nil
}

// value returns the pre-standardization value, or false when missing.
func (c NumericColumn) value(r Record) (float64, bool) {
	v, ok := r.Numeric[c.Name]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if c.Log {
		if v < 0 {
			return 0, false
		}
		v = math.Log1p(v)
	}
	return v, true
}

func categoricalValue(r Record, name string) (string, bool) {
	v, ok := r.Categorical[name]
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// index builds the vocabulary lookup tables. Called by Fit and Validate.
func (s *State) index() {
	s.offsets = make([]map[string]int, len(s.Categorical))
	for i, col := range s.Categorical {
		m := make(map[string]int, len(col.Vocabulary))
		for j, v := range col.Vocabulary {
			m[v] = j
		}
		s.offsets[i] = m
	}
}

// Validate checks a state decoded from an artifact and prepares it for use.
func (s *State) Validate() error {
	if len(s.Numeric) == 0 && len(s.Categorical) == 0 {
		return errors.New("encoder: state has no columns")
	}
	for _, col := range s.Numeric {
		if col.Std <= 0 || math.IsNaN(col.Std) || math.IsInf(col.Std, 0) {
			return fmt.Errorf("encoder: column %q has invalid std %v", col.Name, col.Std)
		}
		if math.IsNaN(col.Mean) || math.IsInf(col.Mean, 0) {
			return fmt.Errorf("encoder: column %q has invalid mean %v", col.Name, col.Mean)
		}
	}
	for _, col := range s.Categorical {
		if len(col.Vocabulary) == 0 {
			return fmt.Errorf("encoder: column %q has empty vocabulary", col.Name)
		}
		if !sort.StringsAreSorted(col.Vocabulary) {
			return fmt.Errorf("encoder: column %q vocabulary is not sorted", col.Name)
		}
		for i := 1; i < len(col.Vocabulary); i++ {
			if col.Vocabulary[i] == col.Vocabulary[i-1] {
				return fmt.Errorf("encoder: column %q has duplicate value %q", col.Name, col.Vocabulary[i])
			}
		}
	}
	s.index()
	return nil
}

// Dimension returns the length of every vector this state produces.
func (s *State) Dimension() int {
	d := len(s.Numeric)
	for _, col := range s.Categorical {
		d += len(col.Vocabulary) + 1
	}
	return d
}

// Transform encodes a single record.
func (s *State) Transform(r Record) ([]float64, error) {
	if len(s.offsets) != len(s.Categorical) {
		return nil, errors.New("encoder: state not validated")
	}

	vec := make([]float64, s.Dimension())
	pos := 0
	for _, col := range s.Numeric {
		v, ok := col.value(r)
		if !ok {
			v = col.Mean
		}
		vec[pos] = (v - col.Mean) / col.Std
		pos++
	}
	for i, col := range s.Categorical {
		v, ok := categoricalValue(r, col.Name)
		if !ok {
			v = col.Fill
		}
		slot, known := s.offsets[i][v]
		if !known {
			slot = len(col.Vocabulary)
		}
		vec[pos+slot] = 1
		pos += len(col.Vocabulary) + 1
	}
	return vec, nil
}

// TransformBatch encodes records in order.
func (s *State) TransformBatch(records []Record) ([][]float64, error) {
	out := make([][]float64, len(records))
	for i, r := range records {
		vec, err := s.Transform(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out[i] = vec
	}
	return out, nil
}
