package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Paul4805/AI-Dashboard-Tool/domain"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			expires_at DATETIME NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id)`,
		`CREATE TABLE IF NOT EXISTS query_history (
			id TEXT PRIMARY KEY,
			question TEXT NOT NULL,
			generated_sql TEXT,
			format TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_query_history_created ON query_history(created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateUser inserts a new user and returns its id.
func (s *SQLiteStore) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?)`,
		username, passwordHash)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, domain.ErrDuplicateUsername
		}
		return 0, err
	}
	return res.LastInsertId()
}

// GetUserByUsername retrieves a user by username. Returns nil when the
// user does not exist.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM users WHERE username = ?`,
		username).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateSession replaces any existing sessions for the user with a
// fresh one. The delete and insert are separate statements; two
// concurrent logins race and the final row wins.
func (s *SQLiteStore) CreateSession(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE user_id = ?`, userID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, user_id, expires_at) VALUES (?, ?, ?)`,
		token, userID, expiresAt)
	return err
}

// GetSessionUser resolves a session token to its user. Returns nil for
// an unknown or expired token. Expired rows are filtered out, not
// deleted.
func (s *SQLiteStore) GetSessionUser(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx,
		`SELECT u.id, u.username, u.password_hash
		 FROM sessions s JOIN users u ON u.id = s.user_id
		 WHERE s.session_id = ? AND s.expires_at > ?`,
		token, time.Now()).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteSession removes a session by token. Deleting a token that does
// not exist is not an error.
func (s *SQLiteStore) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE session_id = ?`, token)
	return err
}

// DescribeSchema renders every user table with its columns and
// declared types as a textual block for prompt construction. A store
// with no tables yields an empty string.
func (s *SQLiteStore) DescribeSchema(ctx context.Context) (string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", err
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	var description string
	for _, table := range tables {
		columns, err := s.describeColumns(ctx, table)
		if err != nil {
			return "", err
		}
		description += fmt.Sprintf("Table `%s` has columns:\n", table)
		description += columns
		description += "\n"
	}
	return description, nil
}

func (s *SQLiteStore) describeColumns(ctx context.Context, table string) (string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var block string
	for rows.Next() {
		var cid, notNull, pk int
		var name, colType string
		var defaultValue sql.NullString
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultValue, &pk); err != nil {
			return "", err
		}
		block += fmt.Sprintf("  - `%s` (%s)\n", name, colType)
	}
	return block, rows.Err()
}

// ExecuteQuery runs an arbitrary SQL statement and returns the raw
// result rows. The statement is executed verbatim; the caller owns any
// vetting of what it is allowed to do.
func (s *SQLiteStore) ExecuteQuery(ctx context.Context, query string) ([][]any, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results [][]any
	for rows.Next() {
		values := make([]any, len(cols))
		pointers := make([]any, len(cols))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		results = append(results, values)
	}
	return results, rows.Err()
}

// RecordQuery appends a query history entry.
func (s *SQLiteStore) RecordQuery(ctx context.Context, entry *domain.QueryHistoryEntry) error {
	var errStr sql.NullString
	if entry.Error != "" {
		errStr = sql.NullString{String: entry.Error, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO query_history (id, question, generated_sql, format, status, error, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Question, entry.GeneratedSQL, entry.Format, entry.Status, errStr, entry.CreatedAt)
	return err
}

// ListQueryHistory returns the most recent history entries, newest first.
func (s *SQLiteStore) ListQueryHistory(ctx context.Context, limit int) ([]domain.QueryHistoryEntry, error) {
	query := `SELECT id, question, generated_sql, format, status, error, created_at FROM query_history ORDER BY created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.QueryHistoryEntry
	for rows.Next() {
		var entry domain.QueryHistoryEntry
		var generatedSQL, errStr sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Question, &generatedSQL, &entry.Format, &entry.Status, &errStr, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if generatedSQL.Valid {
			entry.GeneratedSQL = generatedSQL.String
		}
		if errStr.Valid {
			entry.Error = errStr.String
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
