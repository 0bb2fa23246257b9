// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Command marquee-train builds serving artifacts from a clean item table.
//
//	marquee-train --input items.csv --outdir /data/artifacts
//	marquee-train --input items.csv --badger /data/artifacts/badger
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/logging"
)

func main() {
	var (
		opts     trainOptions
		logLevel string
		console  bool
	)

	rootCmd := &cobra.Command{
		Use:   "marquee-train",
		Short: "Fit the feature encoder and build the similarity index",
		Long: `Reads a cleaned item table (CSV, TSV or parquet) with the columns
content_id, title, available_globally, language, content_type,
release_date, release_year and hours_viewed. Titles that fold to the same
key are de-duplicated, first row wins. Artifacts are written to --outdir,
or to a Badger store when --badger is set, and then loaded back to check
they form a consistent snapshot.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			format := "json"
			if console {
				format = "console"
			}
			logging.Init(logging.Config{Level: logLevel, Format: format, Timestamp: true})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := train(cmd.Context(), opts)
			if err != nil {
				return err
			}
			logging.Info().
				Int("rows", summary.Rows).
				Int("items", summary.Items).
				Int("duplicates", summary.Duplicates).
				Int("dimension", summary.Dimension).
				Str("destination", summary.Destination).
				Msg("artifacts written")
			return nil
		},
	}

	rootCmd.Flags().StringVar(&opts.Input, "input", "", "Cleaned item table (.csv, .tsv or .parquet)")
	rootCmd.Flags().StringVar(&opts.OutDir, "outdir", "artifacts", "Output directory for file artifacts")
	rootCmd.Flags().StringVar(&opts.MetadataFile, "metadata-name", "metadata.parquet", "Metadata file name inside --outdir (.parquet or .csv)")
	rootCmd.Flags().StringVar(&opts.BadgerDir, "badger", "", "Write artifacts to this Badger directory instead of --outdir")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level")
	rootCmd.PersistentFlags().BoolVar(&console, "console", false, "Human-readable log output")
	_ = rootCmd.MarkFlagRequired("input")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.Error().Err(err).Msg("training failed")
		stop()
		os.Exit(1)
	}
}
