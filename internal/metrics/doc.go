// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and
exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Recommendation:
  - recommend_requests_total{operation, outcome}
  - recommend_duration_seconds{operation}
  - recommend_result_count{operation}

Snapshot:
  - snapshot_items, snapshot_vector_dimension, snapshot_loaded_timestamp
  - snapshot_loads_total{result}, snapshot_load_duration_seconds

Storage and cache:
  - duckdb_query_duration_seconds{operation, table}
  - duckdb_query_errors_total{operation, table, error_type}
  - cache_hits_total{cache}, cache_misses_total{cache}

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

# Usage

	start := time.Now()
	results, err := svc.RecommendByTitle(ctx, title, k)
	metrics.RecordRecommendation("recommend", metrics.OutcomeOK, len(results), time.Since(start))
*/
package metrics
