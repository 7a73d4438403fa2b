// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/danielhkuo/votio/cliparse"
	"github.com/danielhkuo/votio/db"
	"github.com/danielhkuo/votio/timepolicy"
)

// Dialect is the dialect of databases returned by SetupTestDB
const Dialect = db.SQLite

var codeSeq atomic.Int64

// SetupTestDB creates a fresh SQLite database with the full schema.
// It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := cliparse.SQLiteDSN(filepath.Join(t.TempDir(), "votio_test.db"))
	conn, err := db.Open(context.Background(), Dialect, dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(context.Background(), conn, Dialect); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()

	cfg := cliparse.Defaults()
	cfg.DatabaseType = cliparse.DatabaseSQLite
	cfg.SecretKey = "test-secret-key"
	cfg.UploadDir = t.TempDir()
	return cfg
}

// EndIn formats now+d in the storage layout
func EndIn(d time.Duration) string {
	return timepolicy.Format(timepolicy.Now().Add(d))
}

// CreateTestElection inserts an election ending at endTime with the named
// candidates. It returns the election id, its code and the candidate ids.
func CreateTestElection(t *testing.T, conn *sql.DB, endTime string, names ...string) (electionID int64, code string, candidateIDs []int64) {
	t.Helper()

	ctx := context.Background()
	code = fmt.Sprintf("T%05X", codeSeq.Add(1))
	now := timepolicy.Format(timepolicy.Now())

	electionID, err := Dialect.InsertID(ctx, conn, `
		INSERT INTO elections (title, code, start_time, end_time, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		"Test Election", code, now, endTime, now)
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	for _, name := range names {
		id, err := Dialect.InsertID(ctx, conn, `
			INSERT INTO candidates (election_id, name, vision, mission)
			VALUES (?, ?, ?, ?)`,
			electionID, name, "Vision of "+name, "Mission of "+name)
		if err != nil {
			t.Fatalf("Failed to create test candidate: %v", err)
		}
		candidateIDs = append(candidateIDs, id)
	}

	return electionID, code, candidateIDs
}

// CastTestVote records a vote directly, bypassing the time window
func CastTestVote(t *testing.T, conn *sql.DB, electionID, candidateID int64, voterIP string) {
	t.Helper()

	_, err := conn.Exec(Dialect.Rebind(`
		INSERT INTO votes (election_id, candidate_id, voter_ip, voted_at)
		VALUES (?, ?, ?, ?)`),
		electionID, candidateID, voterIP, timepolicy.Format(timepolicy.Now()))
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
}

// CountRows returns the row count of table, optionally filtered by election
func CountRows(t *testing.T, conn *sql.DB, table string, electionID int64) int {
	t.Helper()

	column := "election_id"
	if table == "elections" {
		column = "id"
	}

	var n int
	err := conn.QueryRow(Dialect.Rebind(
		"SELECT COUNT(*) FROM "+table+" WHERE "+column+" = ?"), electionID).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
