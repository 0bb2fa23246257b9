// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches any NotFoundError.
	ErrNotFound = errors.New("not found")

	// ErrLoad matches any LoadError.
	ErrLoad = errors.New("artifact load failed")

	// ErrNotReady is returned before the first snapshot is installed.
	ErrNotReady = errors.New("recommendation snapshot not loaded")
)

// NotFoundError reports a title or identifier that cannot be resolved.
type NotFoundError struct {
	// Query is the unresolved title, empty for identifier lookups.
	Query string
	// ID is the unresolved identifier when Query is empty.
	ID int
}

func (e *NotFoundError) Error() string {
	if e.Query != "" {
		return fmt.Sprintf("title %q not found", e.Query)
	}
	return fmt.Sprintf("item %d not found", e.ID)
}

// Is makes errors.Is(err, ErrNotFound) succeed.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// LoadError reports an artifact that is missing, unreadable or inconsistent
// with the rest of the snapshot.
type LoadError struct {
	// Artifact names the failing part: "index", "encoder", "metadata" or "snapshot".
	Artifact string
	// Path is the file or key the artifact was read from, if any.
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("load %s from %s: %v", e.Artifact, e.Path, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Artifact, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrLoad) succeed.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }
