// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, conn *sql.DB, d Dialect) error {
	stmts, ok := schemas[d]
	if !ok {
		return fmt.Errorf("no schema for dialect %q", d)
	}

	for _, stmt := range stmts {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// Timestamps are naive Asia/Jakarta wall-clock text (see package timepolicy),
// so the same values read back identically from every driver.
var schemas = map[Dialect][]string{
	Postgres: {
		`CREATE TABLE IF NOT EXISTS elections (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			code VARCHAR(64) NOT NULL UNIQUE,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS candidates (
			id SERIAL PRIMARY KEY,
			election_id INTEGER NOT NULL REFERENCES elections(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			vision TEXT,
			mission TEXT,
			photo_path TEXT,
			cv_path TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_election_id ON candidates(election_id)`,
		`CREATE TABLE IF NOT EXISTS votes (
			id SERIAL PRIMARY KEY,
			election_id INTEGER NOT NULL REFERENCES elections(id) ON DELETE CASCADE,
			candidate_id INTEGER NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
			voter_ip VARCHAR(64) NOT NULL,
			voted_at TEXT NOT NULL,
			CONSTRAINT unique_vote UNIQUE (voter_ip, election_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_candidate_id ON votes(candidate_id)`,
	},
	SQLite: {
		`CREATE TABLE IF NOT EXISTS elections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			code VARCHAR(64) NOT NULL UNIQUE,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS candidates (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			election_id INTEGER NOT NULL REFERENCES elections(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			vision TEXT,
			mission TEXT,
			photo_path TEXT,
			cv_path TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_election_id ON candidates(election_id)`,
		`CREATE TABLE IF NOT EXISTS votes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			election_id INTEGER NOT NULL REFERENCES elections(id) ON DELETE CASCADE,
			candidate_id INTEGER NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
			voter_ip VARCHAR(64) NOT NULL,
			voted_at TEXT NOT NULL,
			CONSTRAINT unique_vote UNIQUE (voter_ip, election_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_candidate_id ON votes(candidate_id)`,
	},
	// MySQL has no CREATE INDEX IF NOT EXISTS, so indexes are declared inline
	MySQL: {
		`CREATE TABLE IF NOT EXISTS elections (
			id INT AUTO_INCREMENT PRIMARY KEY,
			title TEXT NOT NULL,
			code VARCHAR(64) NOT NULL UNIQUE,
			start_time VARCHAR(64) NOT NULL,
			end_time VARCHAR(255) NOT NULL,
			created_at VARCHAR(64) NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS candidates (
			id INT AUTO_INCREMENT PRIMARY KEY,
			election_id INT NOT NULL,
			name TEXT NOT NULL,
			vision TEXT,
			mission TEXT,
			photo_path TEXT,
			cv_path TEXT,
			INDEX idx_candidates_election_id (election_id),
			FOREIGN KEY (election_id) REFERENCES elections(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS votes (
			id INT AUTO_INCREMENT PRIMARY KEY,
			election_id INT NOT NULL,
			candidate_id INT NOT NULL,
			voter_ip VARCHAR(64) NOT NULL,
			voted_at VARCHAR(64) NOT NULL,
			UNIQUE KEY unique_vote (voter_ip, election_id),
			INDEX idx_votes_candidate_id (candidate_id),
			FOREIGN KEY (election_id) REFERENCES elections(id) ON DELETE CASCADE,
			FOREIGN KEY (candidate_id) REFERENCES candidates(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	},
}
