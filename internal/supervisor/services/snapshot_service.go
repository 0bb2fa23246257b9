// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/recommend"
)

// SnapshotInstaller receives freshly loaded snapshots.
// *recommend.Service satisfies it.
type SnapshotInstaller interface {
	Swap(next *recommend.Snapshot) *recommend.Snapshot
}

// SnapshotServiceConfig controls reloading.
type SnapshotServiceConfig struct {
	// LoadOnStart reloads as soon as Serve starts.
	LoadOnStart bool

	// Interval between scheduled reloads. Zero disables the schedule;
	// reloads then only happen through Trigger.
	Interval time.Duration

	// Timeout bounds a single reload. Default: 2m
	Timeout time.Duration
}

// SnapshotService reloads serving artifacts and installs them atomically.
// A failed reload is logged and the installed snapshot stays in place.
type SnapshotService struct {
	loader    recommend.Loader
	installer SnapshotInstaller
	config    SnapshotServiceConfig
	trigger   chan struct{}
	logger    zerolog.Logger
	name      string
}

var _ SnapshotInstaller = (*recommend.Service)(nil)

// NewSnapshotService creates the reloader.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSnapshotService(loader recommend.Loader, installer SnapshotInstaller, cfg SnapshotServiceConfig, logger zerolog.Logger) *SnapshotService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &SnapshotService{
		loader:    loader,
		installer: installer,
		config:    cfg,
		trigger:   make(chan struct{}, 1),
		logger:    logger.With().Str("service", "snapshot").Logger(),
		name:      "snapshot-service",
	}
}

// Trigger requests a reload without blocking. Requests made while one is
// already pending are coalesced; it reports whether this call queued one.
func (s *SnapshotService) Trigger() bool {
	select {
	case s.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Reload loads a snapshot and installs it on success.
func (s *SnapshotService) Reload(ctx context.Context) error {
	loadCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	snap, err := s.loader.Load(loadCtx)
	if err != nil {
		return err
	}
	s.installer.Swap(snap)
	s.logger.Info().
		Str("version", snap.Version()).
		Dur("duration", time.Since(start)).
		Msg("snapshot reloaded")
	return nil
}

// Serve implements suture.Service.
func (s *SnapshotService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("load_on_start", s.config.LoadOnStart).
		Dur("interval", s.config.Interval).
		Msg("snapshot service starting")

	if s.config.LoadOnStart {
		s.reload(ctx, "startup")
	}

	// A nil channel never fires, leaving only manual triggers.
	var tick <-chan time.Time
	if s.config.Interval > 0 {
		ticker := time.NewTicker(s.config.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("snapshot service shutting down")
			return ctx.Err()
		case <-tick:
			s.reload(ctx, "schedule")
		case <-s.trigger:
			s.reload(ctx, "trigger")
		}
	}
}

func (s *SnapshotService) reload(ctx context.Context, reason string) {
	if err := s.Reload(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn().Err(err).Str("reason", reason).Msg("snapshot reload failed, keeping current snapshot")
	}
}

// String returns the service name for logging.
func (s *SnapshotService) String() string {
	return s.name
}
