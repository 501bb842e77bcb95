package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abhisek/mora/internal/content"
)

// SkillRepo persists per-(learner, concept) skill states. States are
// created lazily: Get reports found=false and callers fill defaults.
type SkillRepo struct {
	db *sql.DB
}

// Get loads one skill state. found is false when the learner has
// never touched the concept.
func (r *SkillRepo) Get(ctx context.Context, learnerID, conceptID string) (state content.SkillState, found bool, err error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT learner_id, concept_id, rating, uncertainty, mastery, total_attempts, correct_attempts
		FROM skill_states WHERE learner_id = ? AND concept_id = ?`,
		learnerID, conceptID)

	err = row.Scan(&state.LearnerID, &state.ConceptID, &state.Rating,
		&state.Uncertainty, &state.Mastery, &state.TotalAttempts, &state.CorrectAttempts)
	if errors.Is(err, sql.ErrNoRows) {
		return content.SkillState{}, false, nil
	}
	if err != nil {
		return content.SkillState{}, false, fmt.Errorf("get skill state: %w", err)
	}
	return state, true, nil
}

// Save upserts a skill state.
func (r *SkillRepo) Save(ctx context.Context, s content.SkillState) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO skill_states (learner_id, concept_id, rating, uncertainty, mastery, total_attempts, correct_attempts)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (learner_id, concept_id) DO UPDATE SET
			rating = excluded.rating,
			uncertainty = excluded.uncertainty,
			mastery = excluded.mastery,
			total_attempts = excluded.total_attempts,
			correct_attempts = excluded.correct_attempts`,
		s.LearnerID, s.ConceptID, s.Rating, s.Uncertainty, s.Mastery, s.TotalAttempts, s.CorrectAttempts)
	if err != nil {
		return fmt.Errorf("save skill state: %w", err)
	}
	return nil
}

// All returns every skill state for a learner, keyed by concept.
func (r *SkillRepo) All(ctx context.Context, learnerID string) (map[string]content.SkillState, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT learner_id, concept_id, rating, uncertainty, mastery, total_attempts, correct_attempts
		FROM skill_states WHERE learner_id = ?`, learnerID)
	if err != nil {
		return nil, fmt.Errorf("query skill states: %w", err)
	}
	defer rows.Close()

	out := make(map[string]content.SkillState)
	for rows.Next() {
		var s content.SkillState
		if err := rows.Scan(&s.LearnerID, &s.ConceptID, &s.Rating,
			&s.Uncertainty, &s.Mastery, &s.TotalAttempts, &s.CorrectAttempts); err != nil {
			return nil, fmt.Errorf("scan skill state: %w", err)
		}
		out[s.ConceptID] = s
	}
	return out, rows.Err()
}
