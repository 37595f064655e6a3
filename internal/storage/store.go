// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/finplanner/internal/models"
)

// Store defines the interface for planner session storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Lookups of unknown sessions return an error wrapping models.ErrNotFound.
type Store interface {
	// CreateSession persists a new session holding only a profile.
	// The session.ID, CreatedAt and UpdatedAt fields are populated by the store.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a session with its expenses.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)

	// ReplaceExpenses discards any previously submitted expenses for the
	// session, stores the given ones and marks the session expenses-accepted.
	ReplaceExpenses(ctx context.Context, sessionID string, items []models.ExpenseItem) error

	// SaveRecommendation persists a recommendation the user chose to keep.
	// The rec.ID and CreatedAt fields are populated by the store.
	SaveRecommendation(ctx context.Context, rec *models.SavedRecommendation) error

	// ListRecommendations returns the saved recommendations of a session,
	// oldest first.
	ListRecommendations(ctx context.Context, sessionID string) ([]models.SavedRecommendation, error)

	// Close releases any resources held by the store.
	Close() error
}
