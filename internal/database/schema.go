// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package database

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE SEQUENCE IF NOT EXISTS movie_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS person_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS like_seq START 1`,

	`CREATE TABLE IF NOT EXISTS movies (
		id BIGINT PRIMARY KEY DEFAULT nextval('movie_id_seq'),
		title VARCHAR NOT NULL,
		genres VARCHAR NOT NULL DEFAULT '',
		year INTEGER NOT NULL,
		duration_minutes INTEGER NOT NULL,
		imdb_score DOUBLE NOT NULL DEFAULT 0,
		image_path VARCHAR NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
		updated_at TIMESTAMP NOT NULL DEFAULT current_timestamp
	)`,

	`CREATE TABLE IF NOT EXISTS persons (
		id BIGINT PRIMARY KEY DEFAULT nextval('person_id_seq'),
		name VARCHAR NOT NULL UNIQUE
	)`,

	`CREATE TABLE IF NOT EXISTS movie_people (
		movie_id BIGINT NOT NULL,
		person_id BIGINT NOT NULL,
		role VARCHAR NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (movie_id, person_id, role)
	)`,

	`CREATE TABLE IF NOT EXISTS profiles (
		user_id BIGINT PRIMARY KEY,
		username VARCHAR NOT NULL DEFAULT '',
		bio VARCHAR NOT NULL DEFAULT '',
		birth_date DATE,
		signup_date DATE DEFAULT current_date
	)`,

	`CREATE TABLE IF NOT EXISTS profile_interested_movies (
		user_id BIGINT NOT NULL,
		movie_id BIGINT NOT NULL,
		seq BIGINT NOT NULL DEFAULT nextval('like_seq'),
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
		PRIMARY KEY (user_id, movie_id)
	)`,

	`CREATE TABLE IF NOT EXISTS catalog_meta (
		id INTEGER PRIMARY KEY,
		version BIGINT NOT NULL
	)`,
	`INSERT INTO catalog_meta (id, version) VALUES (1, 0) ON CONFLICT DO NOTHING`,
}

// createTables applies the schema. Every statement is idempotent.
func (db *DB) createTables() error {
	ctx, cancel := db.withTimeout(context.Background())
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
