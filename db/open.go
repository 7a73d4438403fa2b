// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Drivers for every supported dialect
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the database, verifies the connection and configures
// the pool for the dialect.
func Open(ctx context.Context, d Dialect, dsn string) (*sql.DB, error) {
	conn, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	switch d {
	case SQLite:
		// One writer at a time; SQLite would otherwise answer SQLITE_BUSY
		conn.SetMaxOpenConns(1)
	default:
		conn.SetMaxIdleConns(10)
		conn.SetMaxOpenConns(100)
		conn.SetConnMaxLifetime(time.Hour)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}
