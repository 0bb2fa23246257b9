// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package artifact reads and writes the three serving artifacts:
//
//   - the similarity index (binary, see index.Index.MarshalBinary)
//   - the fitted encoder state (JSON)
//   - the metadata table (Parquet or CSV through DuckDB, or JSON rows in Badger)
//
// Two backends share the Source and Sink interfaces. FileStore keeps each
// artifact in its own file under a directory; BadgerStore keeps all three
// under fixed keys in one Badger database.
//
// Loader reads all artifacts in parallel and validates them against each
// other with recommend.NewSnapshot. Every failure surfaces as
// *recommend.LoadError, so callers can refuse to serve a partial snapshot.
package artifact
