// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the payload of GET /api/v1/health.
type HealthStatus struct {
	Status    string          `json:"status"`
	Version   string          `json:"version"`
	Uptime    float64         `json:"uptime_seconds"`
	Snapshot  *SnapshotStatus `json:"snapshot,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// SnapshotStatus summarises the installed snapshot.
type SnapshotStatus struct {
	Version   string    `json:"version"`
	Items     int       `json:"items"`
	Dimension int       `json:"dimension"`
	LoadedAt  time.Time `json:"loaded_at"`
}

// Health handles GET /api/v1/health. It always answers 200; status is
// "loading" until the first snapshot is installed.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "loading",
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Seconds(),
		Timestamp: time.Now().UTC(),
	}
	if snap := h.service.Snapshot(); snap != nil {
		status.Status = "healthy"
		status.Snapshot = &SnapshotStatus{
			Version:   snap.Version(),
			Items:     snap.Len(),
			Dimension: snap.Dimension(),
			LoadedAt:  snap.LoadedAt(),
		}
	}
	NewResponseWriter(w, r).Success(status)
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of snapshot state.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 503 until a snapshot has been installed.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.service.Snapshot() == nil {
		rw.ServiceUnavailable("recommendation snapshot not loaded")
		return
	}
	rw.Success(map[string]string{"status": "ready"})
}
