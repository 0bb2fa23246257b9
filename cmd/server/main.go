// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package main is the Marquee recommendation server.
//
// Startup order:
//
//  1. Configuration (koanf: defaults, config.yaml, environment)
//  2. Logging
//  3. Artifact source (files or badger) and the initial snapshot load
//  4. Supervisor tree: snapshot reloader (data layer), HTTP server (api layer)
//
// A missing or inconsistent artifact at startup is fatal. Later reload
// failures keep the current snapshot.
//
// # Signals
//
//   - SIGINT, SIGTERM: graceful shutdown
//   - SIGHUP: reload artifacts
//
// # Example
//
//	export ARTIFACT_DIR=/data/artifacts
//	export RELOAD_INTERVAL=1h
//	./marquee
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/artifact"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logger := logging.Logger()

	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Str("artifact_backend", cfg.Artifacts.Backend).
		Msg("starting marquee")

	svc, err := recommend.NewService(recommendConfig(&cfg.Recommend), logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid recommendation config")
	}

	source, closeSource, err := newArtifactSource(&cfg.Artifacts)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open artifact store")
	}
	defer closeSource()

	loader := artifact.NewLoader(source, svc.Config().SnapshotOptions(), logger)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Reload.Timeout)
	snap, err := loader.Load(loadCtx)
	cancelLoad()
	if err != nil {
		var le *recommend.LoadError
		if errors.As(err, &le) {
			logging.Fatal().Err(le.Err).Str("artifact", le.Artifact).Str("path", le.Path).Msg("failed to load artifacts")
		}
		logging.Fatal().Err(err).Msg("failed to load artifacts")
	}
	svc.Swap(snap)

	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*)")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("rate limiting is disabled (DISABLE_RATE_LIMIT=true)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create supervisor tree")
	}

	reloader := services.NewSnapshotService(loader, svc, services.SnapshotServiceConfig{
		Interval: cfg.Reload.Interval,
		Timeout:  cfg.Reload.Timeout,
	}, logger)
	tree.AddDataService(reloader)

	router := api.NewRouter(api.NewHandler(svc, version), api.NewChiMiddleware(middlewareConfig(cfg)))
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	go handleSignals(ctx, cancel, reloader)

	if err := <-tree.ServeBackground(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("supervisor tree stopped")
	}

	unstopped, _ := tree.UnstoppedServiceReport() //nolint:errcheck // best effort diagnostics
	for _, u := range unstopped {
		logging.Warn().Str("service", u.Name).Msg("service did not stop within timeout")
	}
	logging.Info().Msg("marquee stopped")
}

// handleSignals cancels on SIGINT/SIGTERM and triggers a reload on SIGHUP.
func handleSignals(ctx context.Context, cancel context.CancelFunc, reloader *services.SnapshotService) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				queued := reloader.Trigger()
				logging.Info().Bool("queued", queued).Msg("reload requested")
				continue
			}
			logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
			cancel()
			return
		}
	}
}
