// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

/*
Package config provides layered configuration for the CarSelect backend.

Configuration is resolved in three layers, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file (CONFIG_PATH, else config.yaml / config.yml /
    /etc/carselect/config.yaml)
 3. Environment variables, mapped explicitly by envTransformFunc

# Environment Variables

Server:
  - HTTP_PORT / PORT: Listen port (default: 5000)
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - ENVIRONMENT: development or production

Security:
  - JWT_SECRET: HMAC secret for tokens (required, >= 32 chars)
  - TOKEN_TTL: Token lifetime (default: 24h)
  - BCRYPT_COST: Password hashing cost (default: 12)
  - CORS_ORIGINS: Comma-separated origins (default: http://localhost:3000)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Storage:
  - DATA_PATH: BadgerDB directory (default: /data/carselect)
  - DATA_IN_MEMORY: Keep everything in memory (tests, demos)
  - DATA_GC_INTERVAL: Value log GC interval (default: 10m)

Catalog:
  - CATALOG_URL: External car catalog base URL
  - CATALOG_TIMEOUT, CATALOG_CACHE_TTL, CATALOG_RPS, CATALOG_MAX_RETRIES

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file:line

# Usage

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
*/
package config
