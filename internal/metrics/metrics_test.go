// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Metrics are process-global, so these tests compare deltas and do not run
// in parallel with each other.

func TestRecordRecommendation(t *testing.T) {
	counter := RecommendRequestsTotal.WithLabelValues("test_recommend", OutcomeOK)
	before := testutil.ToFloat64(counter)

	RecordRecommendation("test_recommend", OutcomeOK, 5, 2*time.Millisecond)
	RecordRecommendation("test_recommend", OutcomeOK, 0, time.Millisecond)

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("recommend_requests_total delta = %v, want 2", got)
	}
}

func TestRecordSnapshotLoad(t *testing.T) {
	success := SnapshotLoadsTotal.WithLabelValues("success")
	failure := SnapshotLoadsTotal.WithLabelValues("error")
	okBefore := testutil.ToFloat64(success)
	errBefore := testutil.ToFloat64(failure)

	RecordSnapshotLoad(42, 17, time.Second, nil)
	if got := testutil.ToFloat64(SnapshotItems); got != 42 {
		t.Errorf("snapshot_items = %v, want 42", got)
	}
	if got := testutil.ToFloat64(SnapshotDimension); got != 17 {
		t.Errorf("snapshot_vector_dimension = %v, want 17", got)
	}

	RecordSnapshotLoad(1, 1, time.Second, errors.New("boom"))
	if got := testutil.ToFloat64(SnapshotItems); got != 42 {
		t.Errorf("failed load changed snapshot_items to %v", got)
	}

	if got := testutil.ToFloat64(success) - okBefore; got != 1 {
		t.Errorf("success delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(failure) - errBefore; got != 1 {
		t.Errorf("error delta = %v, want 1", got)
	}
}

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"success", nil},
		{"short error", errors.New("io error")},
		{"long error", errors.New(strings.Repeat("x", 80))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordDBQuery("read_parquet", "metadata", 5*time.Millisecond, tt.err)
			if tt.err == nil {
				return
			}
			label := tt.err.Error()
			if len(label) > 50 {
				label = label[:50]
			}
			if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("read_parquet", "metadata", label)); got < 1 {
				t.Errorf("duckdb_query_errors_total{%q} = %v, want >= 1", label, got)
			}
		})
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := CacheHits.WithLabelValues("test")
	misses := CacheMisses.WithLabelValues("test")
	h0, m0 := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	RecordCacheLookup("test", true)
	RecordCacheLookup("test", false)
	RecordCacheLookup("test", false)

	if got := testutil.ToFloat64(hits) - h0; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(misses) - m0; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 2 {
		t.Errorf("active delta = %v, want 2", got)
	}
	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active = %v, want %v", got, before)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("GET", "/test", "200")
	before := testutil.ToFloat64(counter)

	RecordAPIRequest("GET", "/test", "200", 10*time.Millisecond)

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", got)
	}
}
