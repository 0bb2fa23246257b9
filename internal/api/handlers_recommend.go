// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/recommend"
)

// SimilarResponse is the payload of GET /api/v1/items/{id}/similar.
type SimilarResponse struct {
	ID      int                `json:"id"`
	Title   string             `json:"title,omitempty"`
	Results []recommend.Result `json:"results"`
}

// Suggest handles GET /api/v1/suggest?q=&k=. The data is a bare list of
// titles; an empty q returns an empty list.
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	k, err := queryInt(r, "k", h.service.Config().SuggestK)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	req := SuggestRequest{Query: r.URL.Query().Get("q"), K: k}
	if !validate(rw, &req) {
		return
	}

	rw.Success(h.service.SuggestTitles(r.Context(), req.Query, req.K))
}

// Recommend handles POST /api/v1/recommend.
// An unknown title returns 404 NOT_FOUND; a blank title returns no results.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RecommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validate(rw, &req) {
		return
	}

	k := h.service.Config().DefaultK
	if req.K != nil {
		k = *req.K
	}

	resp, err := h.service.Recommend(r.Context(), req.Title, k)
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.Success(resp)
}

// Similar handles GET /api/v1/items/{id}/similar?k=.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		rw.BadRequest("id must be an integer")
		return
	}
	k, err := queryInt(r, "k", h.service.Config().DefaultK)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	req := SimilarRequest{ID: id, K: k}
	if !validate(rw, &req) {
		return
	}

	results, err := h.service.RecommendByID(r.Context(), req.ID, req.K)
	if err != nil {
		writeServiceError(rw, err)
		return
	}

	resp := SimilarResponse{ID: req.ID, Results: results}
	if snap := h.service.Snapshot(); snap != nil {
		if item, ok := snap.Item(req.ID); ok {
			resp.Title = item.Title
		}
	}
	rw.Success(resp)
}
