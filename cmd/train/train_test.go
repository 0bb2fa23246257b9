// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/marquee/internal/recommend"
)

const sampleCSV = `content_id,title,available_globally,language,content_type,release_date,release_year,hours_viewed
1,The Crown,Yes,English,Show,2016-11-04,2016,1200000
2,Squid Game,Yes,Korean,Show,2021-09-17,2021,9000000
3,the crown,No,English,Show,,2016,10
4,Roma,No,Non-English,Movie,,,40000
5,It's Complicated,Yes,English,Movie,,2009,0
`

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "items.csv")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return p
}

func TestDedupe(t *testing.T) {
	t.Parallel()

	rows := []recommend.Item{
		{ID: 1, Title: "Dark"},
		{ID: 2, Title: "  DARK "},
		{ID: 1, Title: "Lupin"},
		{ID: 3, Title: "   "},
		{ID: 4, Title: "Lupin"},
	}
	got := dedupe(rows)
	if len(got) != 2 {
		t.Fatalf("dedupe() kept %d items, want 2: %+v", len(got), got)
	}
	if got[0].ID != 1 || got[1].ID != 4 {
		t.Errorf("dedupe() ids = %d,%d, want 1,4", got[0].ID, got[1].ID)
	}
}

func TestTrain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts func(dir string) trainOptions
		file string
	}{
		{"parquet files", func(dir string) trainOptions {
			return trainOptions{OutDir: dir, MetadataFile: "metadata.parquet"}
		}, "metadata.parquet"},
		{"csv files", func(dir string) trainOptions {
			return trainOptions{OutDir: dir, MetadataFile: "metadata.csv"}
		}, "metadata.csv"},
		{"badger", func(dir string) trainOptions {
			return trainOptions{BadgerDir: filepath.Join(dir, "badger")}
		}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			opts := tt.opts(dir)
			opts.Input = writeCSV(t, sampleCSV)

			summary, err := train(context.Background(), opts)
			if err != nil {
				t.Fatalf("train() error = %v", err)
			}
			if summary.Rows != 5 || summary.Items != 4 || summary.Duplicates != 1 {
				t.Errorf("summary = %+v, want 5 rows, 4 items, 1 duplicate", summary)
			}
			if summary.Dimension <= 0 {
				t.Errorf("Dimension = %d", summary.Dimension)
			}
			if tt.file != "" {
				if _, err := os.Stat(filepath.Join(dir, tt.file)); err != nil {
					t.Errorf("metadata file: %v", err)
				}
			}
		})
	}
}

func TestTrain_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input func(t *testing.T) string
	}{
		{"no input", func(t *testing.T) string { return "" }},
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.csv") }},
		{"header only", func(t *testing.T) string {
			return writeCSV(t, "content_id,title,available_globally,language,content_type,release_date,release_year,hours_viewed\n")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts := trainOptions{Input: tt.input(t), OutDir: t.TempDir()}
			if _, err := train(context.Background(), opts); err == nil {
				t.Error("train() should fail")
			}
		})
	}
}
