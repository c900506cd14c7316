// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend implements content-based movie recommendations.
//
// # Pipeline
//
// A recommendation call runs the following steps over a fresh catalog snapshot:
//
//  1. Normalize: titles and genres are lowercased and ASCII spaces removed.
//  2. Compose: each movie becomes a "soup" of normalized title + genres.
//  3. Index: soups are tokenized, English stop words dropped, and the
//     pairwise cosine similarity of their term-count vectors is computed.
//  4. Lookup: each seed title is mapped to its row, and the most similar
//     other movies are taken in descending score order.
//  5. Aggregate: movies suggested by several seeds are boosted with
//     s * (1 + ln(s + 1)) and the top results are returned by ID.
//
// Seeds are the user's liked titles. Users without likes fall back to
// DefaultSeeds so new accounts still receive suggestions.
//
// # Failure Model
//
// Unknown titles, empty catalogs and malformed normalizer input all degrade
// to smaller or empty results. Only infrastructure failures (the catalog or
// likes provider returning an error, or the context expiring) surface as
// errors from the Engine.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	engine.SetCatalogProvider(db)
//	engine.SetLikesProvider(profileService)
//
//	result, err := engine.RecommendForUser(ctx, userID)
//
// # Thread Safety
//
// The Engine is safe for concurrent use. Without the index cache each call
// builds its own index and shares nothing with other calls.
//
// # Scalability
//
// Index construction is O(n^2) in the catalog size and, by default, repeats
// on every call. Engine.SetIndexCache (the recommend.cache.enabled setting)
// reuses an index until the catalog version changes.
package recommend
