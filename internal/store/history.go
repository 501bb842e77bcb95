package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/abhisek/mora/internal/content"
)

// HistoryRepo persists append-only skill snapshots for trend
// analysis. Samples are write-once.
type HistoryRepo struct {
	db *sql.DB
}

// Append writes one sample.
func (r *HistoryRepo) Append(ctx context.Context, h content.HistorySample) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO skill_history (learner_id, concept_id, attempt_id, rating, uncertainty, mastery, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		h.LearnerID, h.ConceptID, h.AttemptID, h.Rating, h.Uncertainty, h.Mastery, h.CreatedAt)
	if err != nil {
		return fmt.Errorf("append history sample: %w", err)
	}
	return nil
}

// ForConcept returns a learner's samples on one concept, oldest
// first.
func (r *HistoryRepo) ForConcept(ctx context.Context, learnerID, conceptID string) ([]content.HistorySample, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT learner_id, concept_id, attempt_id, rating, uncertainty, mastery, created_at
		FROM skill_history
		WHERE learner_id = ? AND concept_id = ? ORDER BY created_at, id`,
		learnerID, conceptID)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []content.HistorySample
	for rows.Next() {
		var h content.HistorySample
		if err := rows.Scan(&h.LearnerID, &h.ConceptID, &h.AttemptID,
			&h.Rating, &h.Uncertainty, &h.Mastery, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history sample: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
