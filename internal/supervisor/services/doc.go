// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package services adapts server components to suture's Serve(ctx) contract.

HTTPServerService runs an *http.Server and drains it on cancellation.

SnapshotService reloads artifacts through a recommend.Loader and installs
each good snapshot with Swap. Reloads run on an optional interval and on
Trigger, which the server calls on SIGHUP:

	reloader := services.NewSnapshotService(loader, svc, services.SnapshotServiceConfig{
	    Interval: cfg.Reload.Interval,
	    Timeout:  cfg.Reload.Timeout,
	}, logger)
	tree.AddDataService(reloader)

	// later, from the signal loop
	reloader.Trigger()

A failed reload never replaces the installed snapshot and never crashes
the service; it is logged and retried on the next tick or trigger.
*/
package services
