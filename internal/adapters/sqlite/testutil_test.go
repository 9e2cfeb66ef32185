// Package sqlite_test contains integration tests for the SQLite comparison
// store.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup uses db.GetSchemaSQL() so tests run against the authoritative
// schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestStore()
// and the seed helpers instead.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/arena/internal/adapters/sqlite"
	"github.com/example/arena/internal/db"
	"github.com/example/arena/internal/models"
)

// setupTestStore creates a comparison store over an in-memory database with
// the authoritative schema.
func setupTestStore(t *testing.T) (*sqlite.ComparisonStore, *sql.DB) {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Use the authoritative schema from schema.go
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return sqlite.NewComparisonStore(testDB), testDB
}

// seedComparisons records a sequence of outcomes, failing the test on any
// error.
func seedComparisons(t *testing.T, store *sqlite.ComparisonStore, games [][3]string) {
	t.Helper()
	for _, g := range games {
		if err := store.Record(context.Background(), g[0], g[1], models.Winner(g[2]), ""); err != nil {
			t.Fatalf("failed to seed comparison %v: %v", g, err)
		}
	}
}

// candidateRow reads one candidate's counters directly.
func candidateRow(t *testing.T, conn *sql.DB, id string) (score float64, wins, games int) {
	t.Helper()
	err := conn.QueryRow("SELECT score, wins, games FROM candidates WHERE id = ?", id).
		Scan(&score, &wins, &games)
	if err != nil {
		t.Fatalf("failed to read candidate %s: %v", id, err)
	}
	return score, wins, games
}
