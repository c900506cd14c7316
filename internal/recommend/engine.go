// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Note: This package has no dependencies on other internal packages. Storage,
// caching and metrics are plugged in through the interfaces below.

// ErrNoCatalog is returned when the engine has no CatalogProvider.
var ErrNoCatalog = errors.New("recommend: no catalog provider configured")

// ErrNoLikes is returned by RecommendForUser when the engine has no LikesProvider.
var ErrNoLikes = errors.New("recommend: no likes provider configured")

// IndexCache stores built indexes between calls.
type IndexCache interface {
	Get(key string) (*SimilarityIndex, bool)
	Set(key string, idx *SimilarityIndex)
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Requests    int64 `json:"requests"`
	Errors      int64 `json:"errors"`
	IndexBuilds int64 `json:"index_builds"`
	CacheHits   int64 `json:"cache_hits"`
}

// Engine turns seed titles into movie recommendations.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	catalog  CatalogProvider
	likes    LikesProvider
	cache    IndexCache
	observer Observer

	requests    atomic.Int64
	errors      atomic.Int64
	indexBuilds atomic.Int64
	cacheHits   atomic.Int64
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config:   cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
		observer: nopObserver{},
	}, nil
}

// SetCatalogProvider sets the source of the movie catalog.
func (e *Engine) SetCatalogProvider(p CatalogProvider) {
	e.catalog = p
}

// SetLikesProvider sets the source of users' liked titles.
func (e *Engine) SetLikesProvider(p LikesProvider) {
	e.likes = p
}

// SetIndexCache enables index reuse. The cache is only consulted when the
// catalog provider also implements CatalogVersioner.
func (e *Engine) SetIndexCache(c IndexCache) {
	e.cache = c
}

// SetObserver registers a receiver for timing information.
func (e *Engine) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	e.observer = o
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return *e.config
}

// Stats returns the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:    e.requests.Load(),
		Errors:      e.errors.Load(),
		IndexBuilds: e.indexBuilds.Load(),
		CacheHits:   e.cacheHits.Load(),
	}
}

// RecommendForUser recommends movies based on the titles userID has liked.
func (e *Engine) RecommendForUser(ctx context.Context, userID int64) (*Result, error) {
	if e.likes == nil {
		return nil, ErrNoLikes
	}

	titles, err := e.likes.FetchLikedTitles(ctx, userID)
	if err != nil {
		e.errors.Add(1)
		return nil, fmt.Errorf("fetch liked titles: %w", err)
	}

	return e.Recommend(ctx, titles)
}

// Recommend returns the movies most similar to likedTitles. An empty list
// falls back to DefaultSeeds.
func (e *Engine) Recommend(ctx context.Context, likedTitles []string) (*Result, error) {
	start := time.Now()
	e.requests.Add(1)

	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	seeds, source := seedTitles(likedTitles)
	logger := e.logger.With().
		Str("seed_source", string(source)).
		Int("seeds", len(seeds)).
		Logger()

	idx, cached, err := e.index(ctx)
	if err != nil {
		e.errors.Add(1)
		logger.Warn().Err(err).Msg("recommendation failed")
		return nil, err
	}

	var agg Aggregator
	for _, seed := range seeds {
		ids := idx.Lookup(seed, e.config.NeighborsPerSeed)
		if len(ids) == 0 {
			logger.Debug().Str("seed", seed).Msg("seed not in catalog")
			continue
		}
		agg.Add(ids)
	}

	ranked := agg.Ranked(e.config.MaxResults)
	result := &Result{
		MovieIDs:    make([]int64, len(ranked)),
		Candidates:  ranked,
		Seeds:       seeds,
		SeedSource:  source,
		CatalogSize: idx.Len(),
		IndexCached: cached,
		Duration:    time.Since(start),
	}
	for i, c := range ranked {
		result.MovieIDs[i] = c.MovieID
	}

	e.observer.ObserveRecommendation(source, len(result.MovieIDs), result.Duration)
	logger.Debug().
		Int("catalog_size", result.CatalogSize).
		Int("candidates", agg.Len()).
		Int("results", len(result.MovieIDs)).
		Bool("index_cached", cached).
		Dur("duration", result.Duration).
		Msg("recommendation complete")

	return result, nil
}

// WarmIndex builds and caches the index for the current catalog version so
// the next request finds it ready. It reports whether the index was already
// cached, and is a no-op without an index cache or a versioned catalog.
func (e *Engine) WarmIndex(ctx context.Context) (bool, error) {
	if e.catalog == nil {
		return false, ErrNoCatalog
	}
	if _, ok := e.catalog.(CatalogVersioner); !ok || e.cache == nil {
		return false, nil
	}
	_, cached, err := e.index(ctx)
	return cached, err
}

// seedTitles picks the seeds for a run. Liked titles are lowercased and then
// normalized exactly like catalog titles, so both sides of the lookup agree.
func seedTitles(liked []string) ([]string, SeedSource) {
	source := SeedSourceLikes
	if len(liked) == 0 {
		liked = DefaultSeeds
		source = SeedSourceDefault
	}

	seeds := make([]string, len(liked))
	for i, t := range liked {
		seeds[i] = NormalizeText(strings.ToLower(t))
	}
	return seeds, source
}

// index returns the similarity index for the current catalog, reusing a
// cached one when the catalog version has not changed.
func (e *Engine) index(ctx context.Context) (*SimilarityIndex, bool, error) {
	if e.catalog == nil {
		return nil, false, ErrNoCatalog
	}

	var key string
	if v, ok := e.catalog.(CatalogVersioner); ok && e.cache != nil {
		version, err := v.CatalogVersion(ctx)
		if err != nil {
			// A missing version only costs a rebuild.
			e.logger.Warn().Err(err).Msg("catalog version unavailable, bypassing index cache")
		} else {
			key = fmt.Sprintf("catalog:%d", version)
			if idx, hit := e.cache.Get(key); hit {
				e.cacheHits.Add(1)
				e.observer.ObserveIndexCache(true)
				return idx, true, nil
			}
			e.observer.ObserveIndexCache(false)
		}
	}

	entries, err := e.catalog.FetchCatalog(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("fetch catalog: %w", err)
	}

	start := time.Now()
	idx, err := BuildIndex(ctx, NormalizeCatalog(entries))
	if err != nil {
		return nil, false, err
	}
	e.indexBuilds.Add(1)
	e.observer.ObserveIndexBuild(idx.Len(), time.Since(start))

	if key != "" {
		e.cache.Set(key, idx)
	}
	return idx, false, nil
}
