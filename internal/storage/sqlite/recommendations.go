package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/finplanner/internal/models"
)

// SaveRecommendation inserts a saved recommendation for an existing session.
func (s *SQLiteStore) SaveRecommendation(ctx context.Context, rec *models.SavedRecommendation) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO saved_recommendations (id, session_id, remaining, category_key, suggested_amount, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SessionID, rec.Remaining, rec.CategoryKey, rec.SuggestedAmount, rec.CreatedAt,
	)
	if err != nil {
		// The only foreign key is the session
		if strings.Contains(err.Error(), "FOREIGN KEY") {
			return fmt.Errorf("session %s: %w", rec.SessionID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to save recommendation: %w", err)
	}
	return nil
}

// ListRecommendations returns a session's saved recommendations, oldest first.
func (s *SQLiteStore) ListRecommendations(ctx context.Context, sessionID string) ([]models.SavedRecommendation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, remaining, category_key, suggested_amount, created_at
		 FROM saved_recommendations
		 WHERE session_id = ?
		 ORDER BY created_at, rowid`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer rows.Close()

	var recs []models.SavedRecommendation
	for rows.Next() {
		var rec models.SavedRecommendation
		if err := rows.Scan(
			&rec.ID,
			&rec.SessionID,
			&rec.Remaining,
			&rec.CategoryKey,
			&rec.SuggestedAmount,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recommendations: %w", err)
	}

	return recs, nil
}
