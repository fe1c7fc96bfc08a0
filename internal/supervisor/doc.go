// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

/*
Package supervisor runs the service's long-lived components under a suture v4
tree.

# Overview

	RootSupervisor ("recommender")
	├── CacheSupervisor ("cache-layer")
	│   └── BadgerResultCache GC loop (cache.backend=badger)
	├── EventsSupervisor ("events-layer")
	│   └── events.Consumer (events.enabled=true)
	└── APISupervisor ("api-layer")
	    └── services.HTTPServerService

Crashed services restart with suture's backoff. Failures are counted per
layer, so a consumer that cannot reach the broker does not take the API down.

Supervisor events are logged through sutureslog into the zerolog stream via
logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if consumer != nil {
	    tree.AddEventsService(consumer)
	}
	return tree.Serve(ctx)
*/
package supervisor
