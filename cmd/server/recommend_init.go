// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/database"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// buildEngineConfig maps the recommend section onto the engine config.
func buildEngineConfig(cfg *config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		MaxResults:       cfg.MaxResults,
		NeighborsPerSeed: cfg.NeighborsPerSeed,
		Timeout:          cfg.Timeout,
	}
}

// initRecommend creates the engine over catalog, guarding catalog reads
// with a circuit breaker and reusing indexes when configured.
func initRecommend(cfg *config.RecommendConfig, catalog database.CatalogSource, likes recommend.LikesProvider) (*recommend.Engine, error) {
	logger := logging.WithComponent("recommend")

	engine, err := recommend.NewEngine(buildEngineConfig(cfg), logger)
	if err != nil {
		return nil, err
	}

	if cfg.CircuitBreaker.Enabled {
		engine.SetCatalogProvider(database.NewBreakerCatalog(catalog, database.BreakerSettings{
			MaxFailures: cfg.CircuitBreaker.MaxFailures,
			Timeout:     cfg.CircuitBreaker.Timeout,
		}))
	} else {
		engine.SetCatalogProvider(catalog)
	}
	engine.SetLikesProvider(likes)
	engine.SetObserver(metrics.RecommendObserver{})

	if cfg.Cache.Enabled {
		engine.SetIndexCache(cache.NewLRU[*recommend.SimilarityIndex](cfg.Cache.MaxEntries, cfg.Cache.TTL))
	}

	logger.Info().
		Int("max_results", cfg.MaxResults).
		Int("neighbors_per_seed", cfg.NeighborsPerSeed).
		Bool("index_cache", cfg.Cache.Enabled).
		Bool("circuit_breaker", cfg.CircuitBreaker.Enabled).
		Msg("recommendation engine initialized")
	return engine, nil
}
