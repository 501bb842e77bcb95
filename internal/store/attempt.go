package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abhisek/mora/internal/content"
)

// AttemptRepo persists submitted answers. Attempts are append-only.
type AttemptRepo struct {
	db *sql.DB
}

// Append records one attempt.
func (r *AttemptRepo) Append(ctx context.Context, a content.Attempt) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attempts (id, question_id, learner_id, session_id, concept_id, question_text,
			submitted, is_correct, partial_score, response_ms, rating_before, rating_after, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.QuestionID, a.LearnerID, a.SessionID, a.ConceptID, a.QuestionText,
		a.Submitted, a.IsCorrect, a.PartialScore, a.ResponseTime.Milliseconds(),
		a.RatingBefore, a.RatingAfter, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}
	return nil
}

const attemptColumns = `id, question_id, learner_id, session_id, concept_id, question_text,
	submitted, is_correct, partial_score, response_ms, rating_before, rating_after, created_at`

// Recent returns the learner's last n attempts, newest first.
func (r *AttemptRepo) Recent(ctx context.Context, learnerID string, n int) ([]content.Attempt, error) {
	return r.query(ctx, `
		SELECT `+attemptColumns+` FROM attempts
		WHERE learner_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		learnerID, n)
}

// RecentByConcept returns the learner's last n attempts on one
// concept, newest first.
func (r *AttemptRepo) RecentByConcept(ctx context.Context, learnerID, conceptID string, n int) ([]content.Attempt, error) {
	return r.query(ctx, `
		SELECT `+attemptColumns+` FROM attempts
		WHERE learner_id = ? AND concept_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		learnerID, conceptID, n)
}

// BySession returns every attempt in a session, newest first.
func (r *AttemptRepo) BySession(ctx context.Context, learnerID, sessionID string) ([]content.Attempt, error) {
	return r.query(ctx, `
		SELECT `+attemptColumns+` FROM attempts
		WHERE learner_id = ? AND session_id = ? ORDER BY created_at DESC, id DESC`,
		learnerID, sessionID)
}

// CorrectTexts returns the distinct text of every question the
// learner has ever answered correctly, for lifetime dedup.
func (r *AttemptRepo) CorrectTexts(ctx context.Context, learnerID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT question_text FROM attempts
		WHERE learner_id = ? AND is_correct = 1 AND question_text != ''`,
		learnerID)
	if err != nil {
		return nil, fmt.Errorf("query correct texts: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan text: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SessionTexts returns the distinct text of every question served in
// a session regardless of outcome, for in-session dedup.
func (r *AttemptRepo) SessionTexts(ctx context.Context, learnerID, sessionID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT question_text FROM attempts
		WHERE learner_id = ? AND session_id = ? AND question_text != ''`,
		learnerID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query session texts: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan text: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *AttemptRepo) query(ctx context.Context, q string, args ...any) ([]content.Attempt, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []content.Attempt
	for rows.Next() {
		var a content.Attempt
		var responseMs int64
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.LearnerID, &a.SessionID, &a.ConceptID,
			&a.QuestionText, &a.Submitted, &a.IsCorrect, &a.PartialScore, &responseMs,
			&a.RatingBefore, &a.RatingAfter, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.ResponseTime = time.Duration(responseMs) * time.Millisecond
		out = append(out, a)
	}
	return out, rows.Err()
}
