// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
)

// writeServiceError maps a recommendation error to its HTTP response.
// Unknown errors are logged and reported without internal detail.
func writeServiceError(rw *ResponseWriter, err error) {
	var nf *recommend.NotFoundError
	switch {
	case errors.As(err, &nf):
		details := map[string]any{"query": nf.Query}
		if nf.Query == "" {
			details = map[string]any{"id": nf.ID}
		}
		rw.NotFound(nf.Error(), details)
	case errors.Is(err, recommend.ErrNotFound):
		rw.NotFound(err.Error(), nil)
	case errors.Is(err, recommend.ErrNotReady):
		rw.ServiceUnavailable("recommendations are not loaded yet")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		rw.ServiceUnavailable("request timed out")
	default:
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("recommendation request failed")
		rw.InternalError("internal error")
	}
}
