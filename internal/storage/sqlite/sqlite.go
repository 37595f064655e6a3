// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/finplanner/internal/models"
	"github.com/mmynk/finplanner/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas go in the DSN so every pooled connection gets them
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession persists a new session with its profile.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if session.CreatedAt == 0 {
		session.CreatedAt = now
	}
	session.UpdatedAt = session.CreatedAt

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, name, age, monthly_salary, expenses_accepted, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 0, ?, ?)`,
		session.ID, session.Profile.Name, session.Profile.Age, session.Profile.MonthlySalary,
		session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	session.Expenses = nil
	session.ExpensesAccepted = false
	return nil
}

// GetSession retrieves a session by ID, including its expenses in submission order.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session := &models.Session{}
	var accepted int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, age, monthly_salary, expenses_accepted, created_at, updated_at
		 FROM sessions WHERE id = ?`,
		sessionID,
	).Scan(
		&session.ID,
		&session.Profile.Name,
		&session.Profile.Age,
		&session.Profile.MonthlySalary,
		&accepted,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", sessionID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	session.ExpensesAccepted = accepted != 0

	rows, err := s.db.QueryContext(ctx,
		"SELECT grp, label, amount FROM expenses WHERE session_id = ? ORDER BY position",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.ExpenseItem
		var group string
		if err := rows.Scan(&group, &item.Label, &item.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		item.Group = models.ExpenseGroup(group)
		session.Expenses = append(session.Expenses, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return session, nil
}

// ReplaceExpenses swaps the session's expenses for the given ones in a single transaction.
func (s *SQLiteStore) ReplaceExpenses(ctx context.Context, sessionID string, items []models.ExpenseItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE sessions SET expenses_accepted = 1, updated_at = ? WHERE id = ?",
		time.Now().Unix(), sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", sessionID, models.ErrNotFound)
	}

	// Clear previous expenses
	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}

	for i, item := range items {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expenses (id, session_id, position, grp, label, amount) VALUES (?, ?, ?, ?, ?, ?)",
			uuid.New().String(), sessionID, i, string(item.Group), item.Label, item.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
