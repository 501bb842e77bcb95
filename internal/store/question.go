package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/mora/internal/content"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// QuestionRepo persists generated questions.
type QuestionRepo struct {
	db *sql.DB
}

// Save inserts a question.
func (r *QuestionRepo) Save(ctx context.Context, q content.Question) error {
	options, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO questions (id, concept_id, text, type, options, answer, explanation, difficulty, estimated_p_correct, status, artifact)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.ConceptID, q.Text, string(q.Type), string(options), q.Answer,
		q.Explanation, q.Difficulty, q.EstimatedPCorrect, string(q.Status), q.Artifact)
	if err != nil {
		return fmt.Errorf("save question: %w", err)
	}
	return nil
}

// Get loads a question by ID.
func (r *QuestionRepo) Get(ctx context.Context, id string) (content.Question, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, concept_id, text, type, options, answer, explanation, difficulty, estimated_p_correct, status, artifact
		FROM questions WHERE id = ?`, id)

	var q content.Question
	var qType, options, status string
	err := row.Scan(&q.ID, &q.ConceptID, &q.Text, &qType, &options, &q.Answer,
		&q.Explanation, &q.Difficulty, &q.EstimatedPCorrect, &status, &q.Artifact)
	if errors.Is(err, sql.ErrNoRows) {
		return content.Question{}, fmt.Errorf("question %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return content.Question{}, fmt.Errorf("get question: %w", err)
	}
	q.Type = content.QuestionType(qType)
	q.Status = content.ValidationStatus(status)
	if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
		return content.Question{}, fmt.Errorf("unmarshal options: %w", err)
	}
	return q, nil
}

// SetStatus transitions a question's validation status. Rejected is
// terminal and cannot be left.
func (r *QuestionRepo) SetStatus(ctx context.Context, id string, status content.ValidationStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE questions SET status = ? WHERE id = ? AND status != ?`,
		string(status), id, string(content.StatusRejected))
	if err != nil {
		return fmt.Errorf("set question status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set question status: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("question %s: %w", id, ErrNotFound)
	}
	return nil
}
