// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package artifact

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend"
)

// selectItems projects a source relation onto the metadata columns. Extra
// columns are ignored and a missing column fails binding. hours_viewed may
// carry thousands separators; an empty or unparseable value scans as NULL.
const selectItems = `
SELECT
	CAST(content_id AS BIGINT),
	CAST(title AS VARCHAR),
	COALESCE(CAST(available_globally AS VARCHAR), ''),
	COALESCE(CAST(language AS VARCHAR), ''),
	COALESCE(CAST(content_type AS VARCHAR), ''),
	COALESCE(CAST(release_date AS VARCHAR), ''),
	TRY_CAST(release_year AS INTEGER),
	CAST(TRY_CAST(REPLACE(CAST(hours_viewed AS VARCHAR), ',', '') AS DOUBLE) AS BIGINT)
FROM %s
ORDER BY 1`

const createItems = `
CREATE TABLE items (
	content_id BIGINT NOT NULL,
	title VARCHAR NOT NULL,
	available_globally VARCHAR,
	language VARCHAR,
	content_type VARCHAR,
	release_date VARCHAR,
	release_year INTEGER,
	hours_viewed BIGINT NOT NULL
)`

// MetadataTable reads and writes the metadata table with an in-process
// DuckDB. Parquet and CSV are chosen by file extension.
type MetadataTable struct{}

// NewMetadataTable creates a metadata table codec.
func NewMetadataTable() *MetadataTable { return &MetadataTable{} }

func open() (*sql.DB, error) {
	conn, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	// one connection keeps the in-memory catalog shared across statements
	conn.SetMaxOpenConns(1)
	return conn, nil
}

func closeQuietly(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		logging.Warn().Err(err).Msg("failed to close duckdb connection")
	}
}

// quote renders path as a SQL string literal.
func quote(path string) string {
	return "'" + strings.ReplaceAll(path, "'", "''") + "'"
}

// sourceRelation returns the DuckDB table function that scans path.
func sourceRelation(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return "read_parquet(" + quote(path) + ")", nil
	case ".csv":
		return "read_csv_auto(" + quote(path) + ", header = true)", nil
	case ".tsv":
		return "read_csv_auto(" + quote(path) + ", header = true, delim = '\t')", nil
	default:
		return "", fmt.Errorf("unsupported metadata format %q", filepath.Ext(path))
	}
}

// Read loads every row of the table at path ordered by identifier.
func (m *MetadataTable) Read(ctx context.Context, path string) (items []recommend.Item, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("read", "metadata", time.Since(start), err) }()

	rel, err := sourceRelation(path)
	if err != nil {
		return nil, err
	}
	conn, err := open()
	if err != nil {
		return nil, err
	}
	defer closeQuietly(conn)

	rows, err := conn.QueryContext(ctx, fmt.Sprintf(selectItems, rel))
	if err != nil {
		return nil, fmt.Errorf("query metadata: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for rows.Next() {
		var (
			id    sql.NullInt64
			title sql.NullString
			year  sql.NullInt32
			hours sql.NullInt64
			it    recommend.Item
		)
		if err := rows.Scan(&id, &title, &it.AvailableGlobally, &it.Language, &it.ContentType,
			&it.ReleaseDate, &year, &hours); err != nil {
			return nil, fmt.Errorf("scan metadata row %d: %w", len(items)+1, err)
		}
		if !id.Valid || !title.Valid {
			return nil, fmt.Errorf("metadata row %d: missing %s or %s", len(items)+1, recommend.ColumnID, recommend.ColumnTitle)
		}
		if !hours.Valid {
			return nil, fmt.Errorf("metadata row %d: missing or malformed %s", len(items)+1, recommend.ColumnHoursViewed)
		}
		if hours.Int64 < 0 {
			return nil, fmt.Errorf("metadata row %d: negative %s %d", len(items)+1, recommend.ColumnHoursViewed, hours.Int64)
		}
		it.ID = int(id.Int64)
		it.Title = title.String
		it.HoursViewed = hours.Int64
		if year.Valid {
			y := int(year.Int32)
			it.ReleaseYear = &y
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate metadata: %w", err)
	}
	return items, nil
}

// Write replaces the table at path with items.
func (m *MetadataTable) Write(ctx context.Context, path string, items []recommend.Item) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("write", "metadata", time.Since(start), err) }()

	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		format = "FORMAT PARQUET"
	case ".csv":
		format = "FORMAT CSV, HEADER"
	default:
		return fmt.Errorf("unsupported metadata format %q", filepath.Ext(path))
	}

	conn, err := open()
	if err != nil {
		return err
	}
	defer closeQuietly(conn)

	if _, err := conn.ExecContext(ctx, createItems); err != nil {
		return fmt.Errorf("create items table: %w", err)
	}
	if err := insertItems(ctx, conn, items); err != nil {
		return err
	}
	if _, err := conn.ExecContext(ctx, fmt.Sprintf("COPY (SELECT * FROM items ORDER BY content_id) TO %s (%s)", quote(path), format)); err != nil {
		return fmt.Errorf("copy items to %s: %w", path, err)
	}
	return nil
}

func insertItems(ctx context.Context, conn *sql.DB, items []recommend.Item) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO items VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range items {
		it := &items[i]
		var year sql.NullInt32
		if it.ReleaseYear != nil {
			year = sql.NullInt32{Int32: int32(*it.ReleaseYear), Valid: true} //nolint:gosec // release years fit in int32
		}
		if _, err := stmt.ExecContext(ctx, int64(it.ID), it.Title, it.AvailableGlobally, it.Language,
			it.ContentType, it.ReleaseDate, year, it.HoursViewed); err != nil {
			return fmt.Errorf("insert item %d: %w", it.ID, err)
		}
	}
	return tx.Commit()
}
