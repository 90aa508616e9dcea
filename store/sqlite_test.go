package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Paul4805/AI-Dashboard-Tool/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateUserAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, "alice", "hash1")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected non-zero user id")
	}

	user, err := s.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if user == nil || user.ID != id || user.PasswordHash != "hash1" {
		t.Fatalf("unexpected user: %+v", user)
	}

	missing, err := s.GetUserByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown user, got %+v", missing)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, "alice", "hash1"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	_, err := s.CreateUser(ctx, "alice", "hash2")
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	rows, err := s.ExecuteQuery(ctx, "SELECT COUNT(*) FROM users WHERE username = 'alice'")
	if err != nil {
		t.Fatalf("ExecuteQuery failed: %v", err)
	}
	if rows[0][0].(int64) != 1 {
		t.Fatalf("expected a single row for alice, got %v", rows[0][0])
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, "alice", "hash1")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if err := s.CreateSession(ctx, id, "tok1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	user, err := s.GetSessionUser(ctx, "tok1")
	if err != nil {
		t.Fatalf("GetSessionUser failed: %v", err)
	}
	if user == nil || user.Username != "alice" {
		t.Fatalf("unexpected session user: %+v", user)
	}

	// A second login replaces the first session.
	if err := s.CreateSession(ctx, id, "tok2", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	user, err = s.GetSessionUser(ctx, "tok1")
	if err != nil {
		t.Fatalf("GetSessionUser failed: %v", err)
	}
	if user != nil {
		t.Fatalf("expected old token to be invalidated")
	}
	user, err = s.GetSessionUser(ctx, "tok2")
	if err != nil {
		t.Fatalf("GetSessionUser failed: %v", err)
	}
	if user == nil {
		t.Fatalf("expected new token to resolve")
	}

	// Delete is idempotent.
	if err := s.DeleteSession(ctx, "tok2"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if err := s.DeleteSession(ctx, "tok2"); err != nil {
		t.Fatalf("second DeleteSession failed: %v", err)
	}
	user, err = s.GetSessionUser(ctx, "tok2")
	if err != nil {
		t.Fatalf("GetSessionUser failed: %v", err)
	}
	if user != nil {
		t.Fatalf("expected deleted token not to resolve")
	}
}

func TestSessionExpiry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, "alice", "hash1")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := s.CreateSession(ctx, id, "tok1", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	user, err := s.GetSessionUser(ctx, "tok1")
	if err != nil {
		t.Fatalf("GetSessionUser failed: %v", err)
	}
	if user != nil {
		t.Fatalf("expected expired token not to resolve")
	}

	// The expired row is filtered, not purged.
	rows, err := s.ExecuteQuery(ctx, "SELECT COUNT(*) FROM sessions")
	if err != nil {
		t.Fatalf("ExecuteQuery failed: %v", err)
	}
	if rows[0][0].(int64) != 1 {
		t.Fatalf("expected expired row to remain, got %v", rows[0][0])
	}
}

func TestDescribeSchema(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	desc, err := s.DescribeSchema(ctx)
	if err != nil {
		t.Fatalf("DescribeSchema failed: %v", err)
	}
	for _, want := range []string{"Table `users` has columns:", "`username` (TEXT)", "`id` (INTEGER)"} {
		if !strings.Contains(desc, want) {
			t.Fatalf("description missing %q:\n%s", want, desc)
		}
	}
}

func TestDescribeSchemaEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, stmt := range []string{
		"DROP TABLE query_history",
		"DROP TABLE sessions",
		"DROP TABLE users",
	} {
		if _, err := s.ExecuteQuery(ctx, stmt); err != nil {
			t.Fatalf("drop failed: %v", err)
		}
	}

	desc, err := s.DescribeSchema(ctx)
	if err != nil {
		t.Fatalf("DescribeSchema failed: %v", err)
	}
	if desc != "" {
		t.Fatalf("expected empty description, got %q", desc)
	}
}

func TestExecuteQuery(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.ExecuteQuery(ctx, "CREATE TABLE sales (region TEXT, amount INTEGER)"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := s.ExecuteQuery(ctx, "INSERT INTO sales VALUES ('north', 10), ('south', 20)"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	rows, err := s.ExecuteQuery(ctx, "SELECT region, amount FROM sales ORDER BY amount")
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "north" || rows[0][1].(int64) != 10 {
		t.Fatalf("unexpected first row: %v", rows[0])
	}

	if _, err := s.ExecuteQuery(ctx, "SELECT * FROM missing_table"); err == nil {
		t.Fatalf("expected error for missing table")
	}
}

func TestQueryHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, entry := range []*domain.QueryHistoryEntry{
		{ID: "qry_1", Question: "q1", GeneratedSQL: "SELECT 1", Format: "pie chart", Status: domain.QueryStatusOK},
		{ID: "qry_2", Question: "q2", Format: "bar graph", Status: domain.QueryStatusSQLFailed, Error: "no such table"},
	} {
		entry.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		if err := s.RecordQuery(ctx, entry); err != nil {
			t.Fatalf("RecordQuery failed: %v", err)
		}
	}

	entries, err := s.ListQueryHistory(ctx, 10)
	if err != nil {
		t.Fatalf("ListQueryHistory failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "qry_2" {
		t.Fatalf("expected newest first, got %+v", entries[0])
	}
	if entries[0].Error != "no such table" {
		t.Fatalf("expected error preserved, got %+v", entries[0])
	}

	limited, err := s.ListQueryHistory(ctx, 1)
	if err != nil {
		t.Fatalf("ListQueryHistory failed: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(limited))
	}
}
