// Package store persists scan sessions and results in SQLite.
package store

import (
	"context"
	"errors"

	"github.com/filepurge/filepurge/internal/model"
)

// ErrNotFound is returned when a session or result does not exist.
var ErrNotFound = errors.New("not found")

// ResultFilter narrows ListResults output.
type ResultFilter struct {
	SessionID     string
	Action        model.Action
	AnomaliesOnly bool
	Category      string
	MinConfidence float64
	Limit         int
}

// Store is the scan history interface.
type Store interface {
	// SaveSession persists a session and its results in one transaction.
	// The session ID is assigned if empty.
	SaveSession(ctx context.Context, s *model.Session, results []model.Result) error

	// GetSession returns a session by ID.
	GetSession(ctx context.Context, id string) (*model.Session, error)

	// LatestSession returns the most recent session.
	LatestSession(ctx context.Context) (*model.Session, error)

	// ListSessions returns sessions, newest first.
	ListSessions(ctx context.Context, limit int) ([]model.Session, error)

	// ListResults returns results matching the filter.
	ListResults(ctx context.Context, f ResultFilter) ([]model.Result, error)

	// GetResult returns one result of a session by file path.
	GetResult(ctx context.Context, sessionID, path string) (*model.Result, error)

	// RecordDecision stores what the user did with a file.
	RecordDecision(ctx context.Context, sessionID, path string, d model.Decision) error

	// Close closes the store.
	Close() error
}
