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

	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// EnsureProfile creates an empty profile for userID if none exists.
func (db *DB) EnsureProfile(ctx context.Context, userID int64, username string) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	if _, err := db.conn.ExecContext(ctx,
		`INSERT INTO profiles (user_id, username) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		userID, username); err != nil {
		return fmt.Errorf("ensure profile %d: %w", userID, err)
	}
	return nil
}

// GetProfile returns the profile of userID, or ErrNotFound.
func (db *DB) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var p models.Profile
	var birth, signup sql.NullTime
	err := db.conn.QueryRowContext(ctx,
		`SELECT user_id, username, bio, birth_date, signup_date FROM profiles WHERE user_id = ?`, userID,
	).Scan(&p.UserID, &p.Username, &p.Bio, &birth, &signup)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query profile %d: %w", userID, err)
	}
	if birth.Valid {
		p.BirthDate = &birth.Time
	}
	if signup.Valid {
		p.SignupDate = &signup.Time
	}
	return &p, nil
}

// LikedMovieIDs returns the movies userID has liked, oldest like first.
// A user without a profile has no likes.
func (db *DB) LikedMovieIDs(ctx context.Context, userID int64) ([]int64, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT movie_id FROM profile_interested_movies
		WHERE user_id = ?
		ORDER BY seq`, userID)
	if err != nil {
		return nil, fmt.Errorf("query liked movies: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan liked movie: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FetchLikedTitles returns the titles userID has liked, oldest like first.
func (db *DB) FetchLikedTitles(ctx context.Context, userID int64) ([]string, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT m.title
		FROM profile_interested_movies l
		JOIN movies m ON m.id = l.movie_id
		WHERE l.user_id = ?
		ORDER BY l.seq`, userID)
	if err != nil {
		return nil, fmt.Errorf("query liked titles: %w", err)
	}
	defer rows.Close()

	titles := make([]string, 0)
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scan liked title: %w", err)
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

// ToggleLike adds movieID to the user's likes if absent and removes it if
// present, creating the profile on first use. It reports whether the movie
// is liked afterwards. Unknown movies return ErrNotFound.
func (db *DB) ToggleLike(ctx context.Context, userID, movieID int64) (bool, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	var movies int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies WHERE id = ?`, movieID).Scan(&movies); err != nil {
		return false, fmt.Errorf("check movie %d: %w", movieID, err)
	}
	if movies == 0 {
		return false, ErrNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO profiles (user_id) VALUES (?) ON CONFLICT DO NOTHING`, userID); err != nil {
		return false, fmt.Errorf("ensure profile %d: %w", userID, err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM profile_interested_movies WHERE user_id = ? AND movie_id = ?`, userID, movieID)
	if err != nil {
		return false, fmt.Errorf("remove like: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove like: %w", err)
	}

	liked := removed == 0
	if liked {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO profile_interested_movies (user_id, movie_id) VALUES (?, ?)`, userID, movieID); err != nil {
			return false, fmt.Errorf("add like: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit like: %w", err)
	}
	return liked, nil
}

var _ recommend.LikesProvider = (*DB)(nil)
