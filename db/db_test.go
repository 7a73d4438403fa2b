package db

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

func TestParseDialect(t *testing.T) {
	for _, name := range []string{"postgres", "mysql", "sqlite"} {
		d, err := ParseDialect(name)
		if err != nil {
			t.Errorf("ParseDialect(%q) failed: %v", name, err)
		}
		if d.DriverName() != name {
			t.Errorf("expected driver %s, got %s", name, d.DriverName())
		}
	}

	if _, err := ParseDialect("oracle"); err == nil {
		t.Error("expected error for unknown dialect")
	}
}

func TestRebind(t *testing.T) {
	query := "SELECT id FROM votes WHERE election_id = ? AND voter_ip = ?"

	if got := Postgres.Rebind(query); got != "SELECT id FROM votes WHERE election_id = $1 AND voter_ip = $2" {
		t.Errorf("unexpected postgres rebind: %s", got)
	}
	if got := MySQL.Rebind(query); got != query {
		t.Errorf("mysql query should be unchanged, got %s", got)
	}
	if got := SQLite.Rebind(query); got != query {
		t.Errorf("sqlite query should be unchanged, got %s", got)
	}
}

func TestIsUniqueViolation_DriverErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", fmt.Errorf("boom"), false},
		{"postgres unique", &pq.Error{Code: "23505"}, true},
		{"postgres fk", &pq.Error{Code: "23503"}, false},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062}, true},
		{"mysql other", &mysql.MySQLError{Number: 1452}, false},
		{"wrapped", fmt.Errorf("insert vote: %w", &pq.Error{Code: "23505"}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err); got != tt.want {
				t.Errorf("IsUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestSchemaAndSQLiteConstraints(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "schema.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	conn, err := Open(ctx, SQLite, dsn)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()

	if err := CreateSchema(ctx, conn, SQLite); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}
	// Idempotent
	if err := CreateSchema(ctx, conn, SQLite); err != nil {
		t.Fatalf("second CreateSchema failed: %v", err)
	}

	electionID, err := SQLite.InsertID(ctx, conn,
		`INSERT INTO elections (title, code, start_time, end_time, created_at) VALUES (?, ?, ?, ?, ?)`,
		"Ketua", "ABC123", "2025-03-01 10:00:00", "2025-03-01 22:00:00", "2025-03-01 10:00:00")
	if err != nil {
		t.Fatalf("insert election failed: %v", err)
	}
	if electionID == 0 {
		t.Fatal("expected generated election id")
	}

	_, err = SQLite.InsertID(ctx, conn,
		`INSERT INTO elections (title, code, start_time, end_time, created_at) VALUES (?, ?, ?, ?, ?)`,
		"Other", "ABC123", "2025-03-01 10:00:00", "2025-03-01 22:00:00", "2025-03-01 10:00:00")
	if !IsUniqueViolation(err) {
		t.Errorf("expected unique violation on duplicate code, got %v", err)
	}

	candidateID, err := SQLite.InsertID(ctx, conn,
		`INSERT INTO candidates (election_id, name) VALUES (?, ?)`, electionID, "Ana")
	if err != nil {
		t.Fatalf("insert candidate failed: %v", err)
	}

	insertVote := `INSERT INTO votes (election_id, candidate_id, voter_ip, voted_at) VALUES (?, ?, ?, ?)`
	if _, err := conn.ExecContext(ctx, insertVote, electionID, candidateID, "1.2.3.4", "2025-03-01 11:00:00"); err != nil {
		t.Fatalf("insert vote failed: %v", err)
	}
	_, err = conn.ExecContext(ctx, insertVote, electionID, candidateID, "1.2.3.4", "2025-03-01 11:01:00")
	if !IsUniqueViolation(err) {
		t.Errorf("expected unique violation on second vote, got %v", err)
	}

	// Foreign keys cascade from elections
	if _, err := conn.ExecContext(ctx, `DELETE FROM elections WHERE id = ?`, electionID); err != nil {
		t.Fatalf("delete election failed: %v", err)
	}
	var remaining int
	if err := conn.QueryRowContext(ctx, `SELECT (SELECT COUNT(*) FROM candidates) + (SELECT COUNT(*) FROM votes)`).Scan(&remaining); err != nil {
		t.Fatal(err)
	}
	if remaining != 0 {
		t.Errorf("expected cascade delete, %d rows remain", remaining)
	}
}
