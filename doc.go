// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Votio server.

Votio runs small elections: an organizer creates an election with a title,
a closing time and at least two candidates, shares its six-character code,
and voters cast one vote each (one per IP address). Results stay visible
for 24 hours after voting closes; after that the election is deleted the
next time someone opens it.

# Starting the Server

With the local defaults (MySQL on localhost:3306, database votioDb):

	go run .

Or choose another database:

	go run . -t sqlite -d "file:votio.db?_pragma=foreign_keys(1)"
	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

# Configuration

Settings are layered: defaults, then a YAML file (-c or CONFIG_FILE), then
a .env file, then environment variables, then flags.

  - PORT (-p): server port (default 3318)
  - DATABASE_TYPE (-t): mysql, postgres or sqlite
  - DATABASE_URL (-d): full DSN; otherwise built from DB_HOST, DB_PORT,
    DB_USER, DB_PASSWORD, DB_NAME
  - SECRET_KEY (-secret): signs flash cookies (default "dev")
  - UPLOAD_DIR (-uploads) or UPLOAD_BUCKET=gs://bucket/prefix
  - LOG_LEVEL (-log-level), LOG_FILE

# Architecture

  - election: lifecycle and vote integrity service
  - handlers: HTTP request handlers (elections, voting, results, uploads)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, flash cookies
  - models: Request/response types
  - auth: Election codes and voter identity
  - timepolicy: Asia/Jakarta timestamps and the voting window
  - uploads: Candidate photo and CV storage (disk or GCS)
  - metrics: Prometheus counters, served on /metrics
  - db: Connections, dialects and schema creation
  - cliparse: Configuration parsing
  - logging: slog setup with log rotation

See package documentation for each component.
*/
package main
