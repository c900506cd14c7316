// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package database

import (
	"context"
	"testing"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/models"
)

// testDBSemaphore serializes DuckDB test databases; concurrent CGO setup
// under heavy parallelism has been observed to hang in CI.
var testDBSemaphore = make(chan struct{}, 1)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	db, err := New(&config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "512MB",
		Threads:   1,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

func insertMovie(t *testing.T, db *DB, title, genres string) *models.Movie {
	t.Helper()
	m := &models.Movie{Title: title, Genres: genres, Year: 2000, DurationMinutes: 90, IMDbScore: 7}
	if err := db.CreateMovie(context.Background(), m); err != nil {
		t.Fatalf("CreateMovie(%q) error = %v", title, err)
	}
	return m
}

func TestNew_SchemaIdempotent(t *testing.T) {
	db := setupTestDB(t)

	if err := db.createTables(); err != nil {
		t.Errorf("createTables() second run error = %v", err)
	}
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestInClause(t *testing.T) {
	placeholders, args := inClause([]int64{4, 5, 6})
	if placeholders != "?, ?, ?" {
		t.Errorf("placeholders = %q, want %q", placeholders, "?, ?, ?")
	}
	if len(args) != 3 || args[2] != int64(6) {
		t.Errorf("args = %v, want [4 5 6]", args)
	}
}
