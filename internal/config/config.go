// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package config loads the service configuration.
//
// Values are layered, later layers winning:
//
//  1. Defaults from defaultConfig
//  2. A YAML file (CONFIG_PATH, or the first of DefaultConfigPaths that exists)
//  3. Environment variables listed in envMappings
//
// Example config.yaml:
//
//	server:
//	  port: 3858
//	database:
//	  path: /data/reelmatch.duckdb
//	profiles:
//	  store: badger
//	  badger_path: /data/likes
//	recommend:
//	  cache:
//	    enabled: true
package config

import "time"

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Profiles  ProfilesConfig  `koanf:"profiles"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path         string        `koanf:"path"`
	MaxMemory    string        `koanf:"max_memory"`
	Threads      int           `koanf:"threads"` // 0 = NumCPU
	QueryTimeout time.Duration `koanf:"query_timeout"`
	SeedDemoData bool          `koanf:"seed_demo_data"`
}

// ProfilesConfig selects where liked movies are stored.
type ProfilesConfig struct {
	// Store is "duckdb" (default) or "badger".
	Store string `koanf:"store"`

	// BadgerPath is the Badger directory; required when Store is badger.
	BadgerPath string `koanf:"badger_path"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	MaxResults       int                  `koanf:"max_results"`
	NeighborsPerSeed int                  `koanf:"neighbors_per_seed"`
	Timeout          time.Duration        `koanf:"timeout"`
	Cache            IndexCacheConfig     `koanf:"cache"`
	CircuitBreaker   CircuitBreakerConfig `koanf:"circuit_breaker"`
}

// IndexCacheConfig controls reuse of similarity indexes between requests.
// Off by default: every request then rebuilds the index from a fresh catalog.
type IndexCacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	TTL        time.Duration `koanf:"ttl"`
	MaxEntries int           `koanf:"max_entries"`

	// WarmInterval is how often the background warmer rebuilds a stale
	// index. Zero disables the warmer.
	WarmInterval time.Duration `koanf:"warm_interval"`
}

// CircuitBreakerConfig guards catalog reads.
type CircuitBreakerConfig struct {
	Enabled     bool          `koanf:"enabled"`
	MaxFailures uint32        `koanf:"max_failures"`
	Timeout     time.Duration `koanf:"timeout"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the values applied before the file and environment.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3858,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Path:         "/data/reelmatch.duckdb",
			MaxMemory:    "1GB",
			QueryTimeout: 10 * time.Second,
		},
		Profiles: ProfilesConfig{
			Store:      "duckdb",
			BadgerPath: "/data/likes",
		},
		Recommend: RecommendConfig{
			MaxResults:       5,
			NeighborsPerSeed: 4,
			Timeout:          10 * time.Second,
			Cache: IndexCacheConfig{
				TTL:          10 * time.Minute,
				MaxEntries:   4,
				WarmInterval: time.Minute,
			},
			CircuitBreaker: CircuitBreakerConfig{
				Enabled:     true,
				MaxFailures: 5,
				Timeout:     30 * time.Second,
			},
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
