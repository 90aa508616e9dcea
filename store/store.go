// Package store defines the storage interface and implementations.
package store

import (
	"context"
	"time"

	"github.com/Paul4805/AI-Dashboard-Tool/domain"
)

// Store defines the interface for data persistence.
type Store interface {
	// User operations
	CreateUser(ctx context.Context, username, passwordHash string) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// Session operations. CreateSession deletes any existing sessions
	// for the user before inserting, so at most one session is live.
	CreateSession(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetSessionUser(ctx context.Context, token string) (*domain.User, error)
	DeleteSession(ctx context.Context, token string) error

	// Schema introspection and raw query execution
	DescribeSchema(ctx context.Context) (string, error)
	ExecuteQuery(ctx context.Context, query string) ([][]any, error)

	// Query history
	RecordQuery(ctx context.Context, entry *domain.QueryHistoryEntry) error
	ListQueryHistory(ctx context.Context, limit int) ([]domain.QueryHistoryEntry, error)

	// Lifecycle
	Close() error
}
