// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections, dialects and schema creation.

# Dialects

Three databases are supported: PostgreSQL (lib/pq), MySQL
(go-sql-driver/mysql) and SQLite (modernc.org/sqlite, pure Go).

	d, err := db.ParseDialect(cfg.DatabaseType)
	conn, err := db.Open(ctx, d, cfg.DSN())

Queries are written once with ? placeholders and passed through
Dialect.Rebind, which rewrites them to $1, $2... for PostgreSQL.
Dialect.InsertID returns generated ids (RETURNING on PostgreSQL,
LastInsertId elsewhere).

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn, d); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - elections: title, unique public code, start/end time
  - candidates: name, vision, mission, stored photo/CV names
  - votes: one row per voter per election

# Relationships

	elections 1──* candidates
	elections 1──* votes
	candidates 1──* votes

All foreign keys use ON DELETE CASCADE.

# Constraints

votes carries UNIQUE (voter_ip, election_id). Concurrent duplicate votes
are arbitrated by this constraint; IsUniqueViolation recognizes the
resulting error from every driver.
*/
package db
