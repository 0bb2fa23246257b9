// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides chi-compatible HTTP middleware shared by the API
router.

Key Components:

  - RequestID: propagates or generates X-Request-ID and stores it in the
    logging context so every log line of a request carries request_id
  - AccessLog: one structured log line per request with status and latency
  - PrometheusMetrics: request count, latency and in-flight gauge labelled
    by the chi route pattern

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)

Route patterns rather than raw paths are used as the endpoint label, so
/api/v1/items/42/similar and /api/v1/items/7/similar share one series.
*/
package middleware
