// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"errors"
	"fmt"
	"strings"
)

// Profile store backends.
const (
	StoreDuckDB = "duckdb"
	StoreBadger = "badger"
)

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout))
	}

	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.Database.Threads < 0 {
		errs = append(errs, fmt.Errorf("database.threads must be non-negative, got %d", c.Database.Threads))
	}

	switch strings.ToLower(c.Profiles.Store) {
	case StoreDuckDB:
	case StoreBadger:
		if c.Profiles.BadgerPath == "" {
			errs = append(errs, errors.New("profiles.badger_path is required when profiles.store is badger"))
		}
	default:
		errs = append(errs, fmt.Errorf("profiles.store must be %q or %q, got %q", StoreDuckDB, StoreBadger, c.Profiles.Store))
	}

	if c.Recommend.MaxResults < 1 {
		errs = append(errs, fmt.Errorf("recommend.max_results must be positive, got %d", c.Recommend.MaxResults))
	}
	if c.Recommend.NeighborsPerSeed < 1 {
		errs = append(errs, fmt.Errorf("recommend.neighbors_per_seed must be positive, got %d", c.Recommend.NeighborsPerSeed))
	}
	if c.Recommend.Timeout < 0 {
		errs = append(errs, fmt.Errorf("recommend.timeout must be non-negative, got %v", c.Recommend.Timeout))
	}
	if c.Recommend.Cache.Enabled && c.Recommend.Cache.MaxEntries < 1 {
		errs = append(errs, fmt.Errorf("recommend.cache.max_entries must be positive, got %d", c.Recommend.Cache.MaxEntries))
	}
	if c.Recommend.Cache.WarmInterval < 0 {
		errs = append(errs, fmt.Errorf("recommend.cache.warm_interval must be non-negative, got %v", c.Recommend.Cache.WarmInterval))
	}
	if c.Recommend.CircuitBreaker.Enabled && c.Recommend.CircuitBreaker.MaxFailures == 0 {
		errs = append(errs, errors.New("recommend.circuit_breaker.max_failures must be positive"))
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			errs = append(errs, fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs))
		}
		if c.Security.RateLimitWindow <= 0 {
			errs = append(errs, fmt.Errorf("security.rate_limit_window must be positive, got %v", c.Security.RateLimitWindow))
		}
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
