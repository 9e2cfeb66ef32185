package db

// SchemaSQL is the complete schema for fresh arena databases.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All repository
// tests load it via GetSchemaSQL() so test schemas cannot drift from the one
// used in production.
//
// The comparison log is the system of record: candidate scores are a pure
// function of the comparisons table and can always be rebuilt from it.
const SchemaSQL = `
-- Candidates (one row per evolutionary candidate, never deleted)
CREATE TABLE IF NOT EXISTS candidates (
	id TEXT PRIMARY KEY,
	score REAL NOT NULL DEFAULT 1.0 CHECK(score > 0),
	wins INTEGER NOT NULL DEFAULT 0,
	games INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Comparisons (append-only log of judged pairings)
CREATE TABLE IF NOT EXISTS comparisons (
	id TEXT PRIMARY KEY,
	candidate_a TEXT NOT NULL,
	candidate_b TEXT NOT NULL,
	winner TEXT NOT NULL CHECK(winner IN ('a', 'b', 'tie')),
	reasoning TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (candidate_a) REFERENCES candidates(id),
	FOREIGN KEY (candidate_b) REFERENCES candidates(id),
	CHECK(candidate_a != candidate_b)
);

CREATE INDEX IF NOT EXISTS idx_candidates_score ON candidates(score DESC);
CREATE INDEX IF NOT EXISTS idx_comparisons_a ON comparisons(candidate_a);
CREATE INDEX IF NOT EXISTS idx_comparisons_b ON comparisons(candidate_b);
CREATE INDEX IF NOT EXISTS idx_comparisons_pair ON comparisons(candidate_a, candidate_b);
`

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
