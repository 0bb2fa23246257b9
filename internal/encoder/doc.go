// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package encoder turns a content item's raw attributes into a fixed-dimension
// feature vector.
//
// # Fitting
//
// Fit scans a training corpus once and produces an immutable State:
//
//   - Numeric columns: mean and population standard deviation, computed after
//     an optional log1p transform. Missing values are imputed with the mean.
//   - Categorical columns: sorted vocabulary and the most frequent value, which
//     is used to impute missing entries.
//
// # Vector Layout
//
// Numeric columns come first in schema order. Each categorical column then
// contributes one slot per vocabulary entry followed by a trailing unknown
// slot that absorbs values never seen during fitting.
//
// # Determinism
//
// Transform is a pure function of the State and the record. TransformBatch
// calls Transform for every record, so bulk and single-record encoding are
// bit-identical.
package encoder
