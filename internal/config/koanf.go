// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first existing file is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelmatch/config.yaml",
	"/etc/reelmatch/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// envMappings maps lowercased environment variable names to config keys.
// Variables not listed here are ignored.
var envMappings = map[string]string{
	"http_host":             "server.host",
	"http_port":             "server.port",
	"server_timeout":        "server.timeout",
	"shutdown_timeout":      "server.shutdown_timeout",
	"duckdb_path":           "database.path",
	"duckdb_max_memory":     "database.max_memory",
	"duckdb_threads":        "database.threads",
	"db_query_timeout":      "database.query_timeout",
	"seed_demo_data":        "database.seed_demo_data",
	"profile_store":         "profiles.store",
	"badger_path":           "profiles.badger_path",
	"recommend_max_results": "recommend.max_results",
	"recommend_neighbors":   "recommend.neighbors_per_seed",
	"recommend_timeout":     "recommend.timeout",
	"index_cache_enabled":   "recommend.cache.enabled",
	"index_cache_ttl":       "recommend.cache.ttl",
	"index_cache_size":      "recommend.cache.max_entries",
	"index_warm_interval":   "recommend.cache.warm_interval",
	"breaker_enabled":       "recommend.circuit_breaker.enabled",
	"breaker_max_failures":  "recommend.circuit_breaker.max_failures",
	"breaker_timeout":       "recommend.circuit_breaker.timeout",
	"cors_origins":          "security.cors_origins",
	"rate_limit_reqs":       "security.rate_limit_reqs",
	"rate_limit_window":     "security.rate_limit_window",
	"disable_rate_limit":    "security.rate_limit_disabled",
	"log_level":             "logging.level",
	"log_format":            "logging.format",
	"log_caller":            "logging.caller",
}

// sliceConfigPaths are split on commas when they arrive as strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// Load reads, merges and validates the configuration.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}

		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
