// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"github.com/tomtom215/marquee/internal/encoder"
	"github.com/tomtom215/marquee/internal/index"
)

// Feature column names. These are also the metadata table column names.
const (
	ColumnID                = "content_id"
	ColumnTitle             = "title"
	ColumnAvailableGlobally = "available_globally"
	ColumnLanguage          = "language"
	ColumnContentType       = "content_type"
	ColumnReleaseDate       = "release_date"
	ColumnReleaseYear       = "release_year"
	ColumnHoursViewed       = "hours_viewed"
)

// FeatureSchema returns the encoder schema used for content items.
func FeatureSchema() encoder.Schema {
	return encoder.Schema{
		Numeric: []encoder.NumericSpec{
			{Name: ColumnHoursViewed, Log: true},
			{Name: ColumnReleaseYear},
		},
		Categorical: []string{
			ColumnAvailableGlobally,
			ColumnLanguage,
			ColumnContentType,
		},
	}
}

// Item is one row of the metadata table.
type Item struct {
	// ID is the stable content identifier shared with the index.
	ID int `json:"id"`

	// Title is unique after case folding.
	Title string `json:"title"`

	AvailableGlobally string `json:"available_globally"`
	Language          string `json:"language"`
	ContentType       string `json:"content_type"`

	// ReleaseDate is kept verbatim for display.
	ReleaseDate string `json:"release_date,omitempty"`

	// ReleaseYear is nil when unknown.
	ReleaseYear *int `json:"release_year,omitempty"`

	HoursViewed int64 `json:"hours_viewed"`
}

// Record converts the item to raw encoder attributes.
func (it *Item) Record() encoder.Record {
	r := encoder.Record{
		Numeric: map[string]float64{
			ColumnHoursViewed: float64(it.HoursViewed),
		},
		Categorical: map[string]string{
			ColumnAvailableGlobally: it.AvailableGlobally,
			ColumnLanguage:          it.Language,
			ColumnContentType:       it.ContentType,
		},
	}
	if it.ReleaseYear != nil {
		r.Numeric[ColumnReleaseYear] = float64(*it.ReleaseYear)
	}
	return r
}

// Result is a display record for one recommended item.
type Result struct {
	ID                int     `json:"id"`
	Title             string  `json:"title"`
	Similarity        float64 `json:"similarity"`
	Distance          float64 `json:"distance"`
	Language          string  `json:"language"`
	ContentType       string  `json:"content_type"`
	AvailableGlobally string  `json:"available_globally"`
	ReleaseDate       string  `json:"release_date,omitempty"`
	ReleaseYear       *int    `json:"release_year,omitempty"`
	HoursViewed       int64   `json:"hours_viewed"`
}

// Response is the result of Recommend.
type Response struct {
	// Query echoes the caller's title.
	Query string `json:"query"`

	// Results are ordered by ascending distance.
	Results []Result `json:"results"`
}

// Searcher is the nearest-neighbor contract the service depends on.
// index.Index is the exact implementation; an approximate index can be
// substituted as long as it keeps the ordering rules.
type Searcher interface {
	// Query returns up to k neighbors ordered by distance, then identifier.
	Query(vec []float64, k int) ([]index.Neighbor, error)

	// Len returns the number of indexed items.
	Len() int

	// Dimension returns the vector dimension.
	Dimension() int

	// IDs returns every indexed identifier.
	IDs() []int
}

var _ Searcher = (*index.Index)(nil)
