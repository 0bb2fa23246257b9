// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package validation validates decoded API requests with go-playground/validator.
//
// A single validator instance is shared process-wide; it caches struct
// metadata on first use. Field names in messages come from json tags so
// clients see the names they sent:
//
//	type RecommendRequest struct {
//	    Title string `json:"title" validate:"max=512"`
//	    K     *int   `json:"k" validate:"omitempty,min=0,max=1000"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // 400 VALIDATION_ERROR
//	}
package validation
