// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"time"
)

// CatalogEntry is the snapshot of one movie used for recommendations.
type CatalogEntry struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Year            int     `json:"year"`
	DurationMinutes int     `json:"duration_minutes"`
	IMDbScore       float64 `json:"imdb_score"`
	Genres          string  `json:"genres"`
}

// NormalizedEntry is a CatalogEntry reduced to its comparable text features.
type NormalizedEntry struct {
	ID     int64
	Title  string
	Genres string

	// Soup is Title immediately followed by Genres.
	Soup string
}

// Candidate accumulates the score of one suggested movie during a run.
type Candidate struct {
	MovieID int64   `json:"movie_id"`
	Score   float64 `json:"score"`

	// seq is the order of first encounter and breaks score ties.
	seq int
}

// SeedSource describes where the seed titles of a run came from.
type SeedSource string

const (
	// SeedSourceLikes means the seeds are the user's liked titles.
	SeedSourceLikes SeedSource = "likes"

	// SeedSourceDefault means the user had no likes and DefaultSeeds were used.
	SeedSourceDefault SeedSource = "default"
)

// DefaultSeeds are the seed titles used when a user has not liked anything.
var DefaultSeeds = []string{"frozen", "kung fu panda"}

// Result is the outcome of one recommendation run.
type Result struct {
	// MovieIDs are the recommended movies, best first.
	MovieIDs []int64 `json:"movie_ids"`

	// Candidates holds the scores behind MovieIDs, in the same order.
	Candidates []Candidate `json:"candidates"`

	// Seeds are the normalized seed titles that were looked up.
	Seeds      []string   `json:"seeds"`
	SeedSource SeedSource `json:"seed_source"`

	CatalogSize int           `json:"catalog_size"`
	IndexCached bool          `json:"index_cached"`
	Duration    time.Duration `json:"-"`
}

// CatalogProvider supplies the movie catalog. Implementations must return
// entries in a stable order within one call.
type CatalogProvider interface {
	FetchCatalog(ctx context.Context) ([]CatalogEntry, error)
}

// CatalogVersioner is implemented by catalog providers that can report a
// version number which changes on every catalog write.
type CatalogVersioner interface {
	CatalogVersion(ctx context.Context) (int64, error)
}

// LikesProvider supplies the titles a user has liked. A user without a
// profile has no likes; that is not an error.
type LikesProvider interface {
	FetchLikedTitles(ctx context.Context, userID int64) ([]string, error)
}

// Observer receives timing information from the engine.
type Observer interface {
	ObserveIndexBuild(entries int, d time.Duration)
	ObserveIndexCache(hit bool)
	ObserveRecommendation(source SeedSource, results int, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveIndexBuild(int, time.Duration)                  {}
func (nopObserver) ObserveIndexCache(bool)                                {}
func (nopObserver) ObserveRecommendation(SeedSource, int, time.Duration) {}
