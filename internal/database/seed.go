// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/models"
)

// demoCatalog is a small catalog that includes the default seed titles, so
// new users get recommendations on a fresh install.
var demoCatalog = []models.CreateMovieRequest{
	{Title: "Frozen", Genres: "Animation, Adventure, Comedy", Year: 2013, DurationMinutes: 102, IMDbScore: 7.4,
		Directors: []string{"Chris Buck", "Jennifer Lee"}, Actors: []string{"Kristen Bell", "Idina Menzel"}},
	{Title: "Frozen II", Genres: "Animation, Adventure, Comedy", Year: 2019, DurationMinutes: 103, IMDbScore: 6.8,
		Directors: []string{"Chris Buck", "Jennifer Lee"}, Actors: []string{"Kristen Bell", "Idina Menzel"}},
	{Title: "Kung Fu Panda", Genres: "Animation, Action, Adventure", Year: 2008, DurationMinutes: 92, IMDbScore: 7.6,
		Directors: []string{"Mark Osborne", "John Stevenson"}, Actors: []string{"Jack Black", "Angelina Jolie"}},
	{Title: "Kung Fu Panda 2", Genres: "Animation, Action, Adventure", Year: 2011, DurationMinutes: 90, IMDbScore: 7.2,
		Directors: []string{"Jennifer Yuh Nelson"}, Actors: []string{"Jack Black", "Angelina Jolie"}},
	{Title: "Moana", Genres: "Animation, Adventure, Comedy", Year: 2016, DurationMinutes: 107, IMDbScore: 7.6,
		Directors: []string{"Ron Clements", "John Musker"}, Actors: []string{"Auli'i Cravalho", "Dwayne Johnson"}},
	{Title: "Toy Story", Genres: "Animation, Adventure, Comedy", Year: 1995, DurationMinutes: 81, IMDbScore: 8.3,
		Directors: []string{"John Lasseter"}, Actors: []string{"Tom Hanks", "Tim Allen"}},
	{Title: "How to Train Your Dragon", Genres: "Animation, Action, Adventure", Year: 2010, DurationMinutes: 98, IMDbScore: 8.1,
		Directors: []string{"Dean DeBlois", "Chris Sanders"}, Actors: []string{"Jay Baruchel", "Gerard Butler"}},
	{Title: "Die Hard", Genres: "Action, Thriller", Year: 1988, DurationMinutes: 132, IMDbScore: 8.2,
		Directors: []string{"John McTiernan"}, Actors: []string{"Bruce Willis", "Alan Rickman"}},
	{Title: "The Matrix", Genres: "Action, Sci-Fi", Year: 1999, DurationMinutes: 136, IMDbScore: 8.7,
		Directors: []string{"Lana Wachowski", "Lilly Wachowski"}, Actors: []string{"Keanu Reeves", "Laurence Fishburne"}},
	{Title: "Spirited Away", Genres: "Animation, Adventure, Family", Year: 2001, DurationMinutes: 125, IMDbScore: 8.6,
		Directors: []string{"Hayao Miyazaki"}, Actors: []string{"Rumi Hiiragi", "Miyu Irino"}},
}

// SeedDemoCatalog inserts the demo catalog when the movies table is empty.
// It returns the number of movies inserted.
func (db *DB) SeedDemoCatalog(ctx context.Context) (int, error) {
	var count int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	for i := range demoCatalog {
		if err := db.CreateMovie(ctx, demoCatalog[i].Movie()); err != nil {
			return i, fmt.Errorf("seed %q: %w", demoCatalog[i].Title, err)
		}
	}

	logging.Info().Int("movies", len(demoCatalog)).Msg("seeded demo catalog")
	return len(demoCatalog), nil
}
