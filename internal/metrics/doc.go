// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

/*
Package metrics defines the Prometheus collectors of the backend.

Collectors are registered on the default registry through promauto and
exposed by the /metrics endpoint:

  - api_*: request counts, latency and in-flight requests per route pattern
  - ahp_*: weight evaluations by outcome and the distribution of CR values
  - catalog_*: upstream requests, retries and cache efficiency
  - circuit_breaker_*: state and transitions of the catalog breaker
  - store_*: value log garbage collection runs

Record* helpers keep label values consistent across call sites.
*/
package metrics
