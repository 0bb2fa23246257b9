// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/validation"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

// RecommendRequest is the body of POST /api/v1/recommend.
type RecommendRequest struct {
	Title string `json:"title" validate:"max=512"`
	K     *int   `json:"k,omitempty" validate:"omitempty,min=0"`
}

// SuggestRequest holds the query parameters of GET /api/v1/suggest.
type SuggestRequest struct {
	Query string `json:"q" validate:"max=512"`
	K     int    `json:"k" validate:"min=0"`
}

// SimilarRequest holds the parameters of GET /api/v1/items/{id}/similar.
type SimilarRequest struct {
	ID int `json:"id"`
	K  int `json:"k" validate:"min=0"`
}

// decodeJSON reads a single JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("invalid JSON body: trailing data")
	}
	return nil
}

// queryInt parses an optional integer query parameter, returning def when absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

// validate runs struct validation and writes a 400 on failure.
func validate(rw *ResponseWriter, req any) bool {
	if verr := validation.ValidateStruct(req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return false
	}
	return true
}
