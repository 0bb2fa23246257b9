// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor runs the long-lived parts of the server under suture v4.

# Overview

	RootSupervisor ("marquee")
	├── DataSupervisor ("data-layer")
	│   └── SnapshotService (artifact reloads)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A failing reload restarts only the data layer. The API keeps answering
from the snapshot that is already installed.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewSnapshotService(loader, svc, reloadCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	errCh := tree.ServeBackground(ctx)

# Failure Handling

Each failure increments a counter that decays over FailureDecay seconds.
Above FailureThreshold the supervisor waits FailureBackoff before the next
restart. Services return nil to stop for good, an error to be restarted,
and must return promptly once their context is canceled.

Events are logged through sutureslog, which the server points at the
zerolog-backed slog handler from the logging package.

# Debugging Shutdown

	report, _ := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    logging.Warn().Str("service", svc.Name).Msg("service did not stop")
	}
*/
package supervisor
