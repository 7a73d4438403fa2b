// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect identifies the SQL flavour of a connection
type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)

// ParseDialect validates a configured database type
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(s); d {
	case Postgres, MySQL, SQLite:
		return d, nil
	}
	return "", fmt.Errorf("unsupported database type %q", s)
}

// DriverName is the database/sql driver registered for the dialect
func (d Dialect) DriverName() string {
	return string(d)
}

// Rebind converts ? placeholders to the dialect's placeholder format.
// Queries in this module are written with ? placeholders.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	rebound, err := sq.Dollar.ReplacePlaceholders(query)
	if err != nil {
		// Only fails on malformed escape sequences, which our queries never contain
		return query
	}
	return rebound
}

// Querier is the subset of *sql.DB and *sql.Tx used by the repository
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// InsertID runs an INSERT and returns the generated id column.
// PostgreSQL has no LastInsertId so RETURNING is used there.
func (d Dialect) InsertID(ctx context.Context, q Querier, query string, args ...any) (int64, error) {
	if d == Postgres {
		var id int64
		err := q.QueryRowContext(ctx, d.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}

	res, err := q.ExecContext(ctx, d.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// IsUniqueViolation reports whether err is a unique or primary key
// constraint violation from any supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}
