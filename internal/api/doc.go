// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api exposes the recommendation service over HTTP using the chi router.

# Endpoints

	GET  /api/v1/suggest?q=&k=            title suggestions for a partial query
	POST /api/v1/recommend                {"title": "...", "k": 10}
	GET  /api/v1/items/{id}/similar?k=    neighbors of a known identifier
	GET  /api/v1/health/live              process liveness
	GET  /api/v1/health/ready             503 until a snapshot is installed
	GET  /api/v1/health                   snapshot summary
	GET  /metrics                         Prometheus exposition

# Response Format

Every JSON endpoint answers with the same envelope:

	{"success": true,  "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "..."}, "meta": {...}}

Error codes are stable: BAD_REQUEST, VALIDATION_ERROR, NOT_FOUND,
TOO_MANY_REQUESTS, SERVICE_UNAVAILABLE, INTERNAL_ERROR.

A blank title or k=0 is not an error; both return an empty result list.
*/
package api
