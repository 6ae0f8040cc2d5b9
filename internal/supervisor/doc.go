// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor runs the server's long-lived services under suture v4.

Services are grouped into two child supervisors so a crash loop in storage
maintenance cannot take the API down:

	marquee
	├── data-layer
	│   └── genre-cache-gc (when cache.enabled)
	└── api-layer
	    └── http-server

Supervisor events (restarts, backoff, stop timeouts) are logged through
sutureslog, which receives a log/slog logger bridged onto zerolog by
logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor
