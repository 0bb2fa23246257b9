// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend serves content-similarity recommendations.
//
// # Architecture
//
// A Snapshot bundles everything a query needs:
//
//   - encoder.State: the fitted feature encoder
//   - Searcher: the nearest-neighbor index (index.Index by default)
//   - titles.Resolver: exact and fuzzy title resolution
//   - the metadata table, keyed by item identifier
//
// Snapshots are immutable. The Service holds the current one behind an
// atomic pointer, so a reload swaps in a fully validated replacement while
// in-flight requests keep reading the old one.
//
// # Query Pipeline
//
//  1. Resolve the title to an identifier (exact case-folded, then fuzzy)
//  2. Re-encode the item's metadata with the encoder
//  3. Query the index for k+1 neighbors
//  4. Drop the item itself and truncate to k
//  5. Join display metadata by identifier and convert distance to similarity
//
// # Errors
//
// NotFoundError reports an unresolvable title or identifier and matches
// ErrNotFound. LoadError reports a missing, corrupt or inconsistent
// artifact and matches ErrLoad. Non-positive k or a blank title return an
// empty result without error.
//
// # Usage
//
//	svc, err := recommend.NewService(recommend.DefaultConfig(), logger)
//	snap, err := loader.Load(ctx)
//	svc.Swap(snap)
//	resp, err := svc.Recommend(ctx, "The Crown", 10)
package recommend
