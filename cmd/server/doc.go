// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

/*
Package main is the entry point of the CarSelect backend.

CarSelect recommends cars from an external catalog. Users state their
requirements, compare criteria pairwise and the Analytic Hierarchy Process
turns those comparisons into the weights used to rank the catalog.

# Application Architecture

	RootSupervisor ("carselect")
	├── DataSupervisor ("data-layer")
	│   └── BadgerDB value log GC
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Storage: BadgerDB for users, preferences, comparisons and AHP records
 4. Car catalog: HTTP client with cache, rate limit, retries and circuit breaker
 5. Recommendation engine
 6. Authentication: JWT and bcrypt
 7. Supervisor tree and HTTP server

# Configuration

Highest priority wins:
  - Environment variables (JWT_SECRET, SERVER_PORT, CATALOG_BASE_URL, ...)
  - Config file (config.yaml, or CONFIG_PATH)
  - Built-in defaults

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server stops accepting
connections and drains in-flight requests, then the store is closed.

# Example Usage

	export JWT_SECRET=$(openssl rand -base64 32)
	export STORAGE_PATH=./data
	./carselect
*/
package main
