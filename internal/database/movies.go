// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

const movieColumns = `id, title, genres, year, duration_minutes, imdb_score, image_path, created_at, updated_at`

// FetchCatalog returns every movie as a recommendation snapshot, ordered by ID.
func (db *DB) FetchCatalog(ctx context.Context) ([]recommend.CatalogEntry, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, title, year, duration_minutes, imdb_score, genres
		FROM movies
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var entries []recommend.CatalogEntry
	for rows.Next() {
		var e recommend.CatalogEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Year, &e.DurationMinutes, &e.IMDbScore, &e.Genres); err != nil {
			return nil, fmt.Errorf("scan catalog entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CatalogVersion returns a counter that changes on every movie write.
func (db *DB) CatalogVersion(ctx context.Context) (int64, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var version int64
	if err := db.conn.QueryRowContext(ctx, `SELECT version FROM catalog_meta WHERE id = 1`).Scan(&version); err != nil {
		return 0, fmt.Errorf("query catalog version: %w", err)
	}
	return version, nil
}

// CreateMovie inserts m with its directors and actors and fills in m.ID and
// the timestamps.
func (db *DB) CreateMovie(ctx context.Context, m *models.Movie) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	err = tx.QueryRowContext(ctx, `
		INSERT INTO movies (title, genres, year, duration_minutes, imdb_score, image_path)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, created_at, updated_at`,
		m.Title, m.Genres, m.Year, m.DurationMinutes, m.IMDbScore, m.ImagePath,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert movie: %w", err)
	}

	if err := linkPeople(ctx, tx, m.ID, models.RoleDirector, m.Directors); err != nil {
		return err
	}
	if err := linkPeople(ctx, tx, m.ID, models.RoleActor, m.Actors); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE catalog_meta SET version = version + 1 WHERE id = 1`); err != nil {
		return fmt.Errorf("bump catalog version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit movie: %w", err)
	}
	return nil
}

func linkPeople(ctx context.Context, tx *sql.Tx, movieID int64, role string, names []string) error {
	for pos, name := range names {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO persons (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("insert person %q: %w", name, err)
		}

		var personID int64
		if err := tx.QueryRowContext(ctx, `SELECT id FROM persons WHERE name = ?`, name).Scan(&personID); err != nil {
			return fmt.Errorf("lookup person %q: %w", name, err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO movie_people (movie_id, person_id, role, position)
			VALUES (?, ?, ?, ?)
			ON CONFLICT DO NOTHING`,
			movieID, personID, role, pos); err != nil {
			return fmt.Errorf("link %s %q: %w", role, name, err)
		}
	}
	return nil
}

// GetMovie returns one movie with its people, or ErrNotFound.
func (db *DB) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	m, err := scanMovie(db.conn.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query movie %d: %w", id, err)
	}

	if err := db.attachPeople(ctx, []*models.Movie{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// GetMoviesByIDs returns the movies in the order of ids. Unknown IDs are
// skipped.
func (db *DB) GetMoviesByIDs(ctx context.Context, ids []int64) ([]*models.Movie, error) {
	if len(ids) == 0 {
		return []*models.Movie{}, nil
	}

	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	placeholders, args := inClause(ids)
	movies, err := db.queryMovies(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*models.Movie, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
	}
	ordered := make([]*models.Movie, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			ordered = append(ordered, m)
		}
	}

	if err := db.attachPeople(ctx, ordered); err != nil {
		return nil, err
	}
	return ordered, nil
}

// ListMovies returns a page of movies ordered by ID and the total count.
func (db *DB) ListMovies(ctx context.Context, limit, offset int) ([]*models.Movie, int64, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var total int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movies: %w", err)
	}

	movies, err := db.queryMovies(ctx,
		`SELECT `+movieColumns+` FROM movies ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if err := db.attachPeople(ctx, movies); err != nil {
		return nil, 0, err
	}
	return movies, total, nil
}

func (db *DB) queryMovies(ctx context.Context, query string, args ...interface{}) ([]*models.Movie, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	movies := make([]*models.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(row rowScanner) (*models.Movie, error) {
	var m models.Movie
	var created, updated time.Time
	if err := row.Scan(&m.ID, &m.Title, &m.Genres, &m.Year, &m.DurationMinutes,
		&m.IMDbScore, &m.ImagePath, &created, &updated); err != nil {
		return nil, err
	}
	m.CreatedAt = created
	m.UpdatedAt = updated
	return &m, nil
}

// attachPeople fills Directors and Actors for movies with one query.
func (db *DB) attachPeople(ctx context.Context, movies []*models.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Movie, len(movies))
	ids := make([]int64, 0, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
		ids = append(ids, m.ID)
	}

	placeholders, args := inClause(ids)
	rows, err := db.conn.QueryContext(ctx, `
		SELECT mp.movie_id, mp.role, p.name
		FROM movie_people mp
		JOIN persons p ON p.id = mp.person_id
		WHERE mp.movie_id IN (`+placeholders+`)
		ORDER BY mp.movie_id, mp.role, mp.position`, args...)
	if err != nil {
		return fmt.Errorf("query movie people: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var movieID int64
		var role, name string
		if err := rows.Scan(&movieID, &role, &name); err != nil {
			return fmt.Errorf("scan movie person: %w", err)
		}
		m := byID[movieID]
		switch role {
		case models.RoleDirector:
			m.Directors = append(m.Directors, name)
		case models.RoleActor:
			m.Actors = append(m.Actors, name)
		}
	}
	return rows.Err()
}

// Verify DB implements the recommendation ports.
var (
	_ recommend.CatalogProvider  = (*DB)(nil)
	_ recommend.CatalogVersioner = (*DB)(nil)
)
