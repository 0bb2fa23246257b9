// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package validation

import (
	"strings"
	"testing"
)

type request struct {
	Title  string `json:"title" validate:"max=16"`
	K      *int   `json:"k,omitempty" validate:"omitempty,min=0,max=100"`
	Format string `json:"format" validate:"omitempty,oneof=json csv"`
	Query  string `validate:"required"`
}

func intPtr(v int) *int { return &v }

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	if v1, v2 := GetValidator(), GetValidator(); v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return one non-nil instance")
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     request
		wantField string
		wantMsg   string
	}{
		{name: "valid", input: request{Title: "Roma", K: intPtr(5), Query: "r"}},
		{name: "k omitted", input: request{Title: "Roma", Query: "r"}},
		{name: "k zero", input: request{K: intPtr(0), Query: "r"}},
		{
			name:      "title too long",
			input:     request{Title: strings.Repeat("x", 17), Query: "r"},
			wantField: "title",
			wantMsg:   "title must be at most 16 characters",
		},
		{
			name:      "k negative",
			input:     request{K: intPtr(-1), Query: "r"},
			wantField: "k",
			wantMsg:   "k must be at least 0",
		},
		{
			name:      "k too large",
			input:     request{K: intPtr(101), Query: "r"},
			wantField: "k",
			wantMsg:   "k must be at most 100",
		},
		{
			name:      "bad format",
			input:     request{Format: "xml", Query: "r"},
			wantField: "format",
			wantMsg:   "format must be one of: json csv",
		},
		{
			name:      "missing required without json tag",
			input:     request{},
			wantField: "Query",
			wantMsg:   "Query is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verr := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil || len(verr.Fields) != 1 {
				t.Fatalf("ValidateStruct() = %v, want one field error", verr)
			}
			if got := verr.Fields[0]; got.Field != tt.wantField || got.Message != tt.wantMsg {
				t.Errorf("field error = %+v, want %s / %q", got, tt.wantField, tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	single := ValidateStruct(&request{K: intPtr(-1), Query: "r"}).ToAPIError()
	if single.Code != CodeValidationError || single.Details["field"] != "k" {
		t.Errorf("single = %+v", single)
	}

	multi := ValidateStruct(&request{Title: strings.Repeat("x", 20), K: intPtr(500)}).ToAPIError()
	fields, ok := multi.Details["fields"].([]FieldError)
	if !ok || len(fields) != 3 {
		t.Fatalf("multi details = %+v, want three fields", multi.Details)
	}
	if !strings.Contains(multi.Message, "; ") {
		t.Errorf("multi message = %q, want joined messages", multi.Message)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" || empty.Details != nil {
		t.Errorf("empty = %+v", empty)
	}
}

func TestValidateStruct_NonStruct(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct("not a struct")
	if verr == nil || verr.Fields[0].Field != "request" {
		t.Errorf("ValidateStruct(string) = %v, want request error", verr)
	}
}
