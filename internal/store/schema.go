package store

import (
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS concepts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		order_index INTEGER NOT NULL,
		prerequisites TEXT NOT NULL DEFAULT '[]',
		mastery_threshold REAL NOT NULL DEFAULT 0.75
	)`,

	`CREATE TABLE IF NOT EXISTS skill_states (
		learner_id TEXT NOT NULL,
		concept_id TEXT NOT NULL,
		rating REAL NOT NULL,
		uncertainty REAL NOT NULL,
		mastery REAL NOT NULL,
		total_attempts INTEGER NOT NULL DEFAULT 0,
		correct_attempts INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (learner_id, concept_id)
	)`,

	`CREATE TABLE IF NOT EXISTS skill_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		learner_id TEXT NOT NULL,
		concept_id TEXT NOT NULL,
		attempt_id TEXT NOT NULL DEFAULT '',
		rating REAL NOT NULL,
		uncertainty REAL NOT NULL,
		mastery REAL NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS questions (
		id TEXT PRIMARY KEY,
		concept_id TEXT NOT NULL,
		text TEXT NOT NULL,
		type TEXT NOT NULL,
		options TEXT NOT NULL DEFAULT '[]',
		answer TEXT NOT NULL,
		explanation TEXT NOT NULL DEFAULT '',
		difficulty REAL NOT NULL,
		estimated_p_correct REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		artifact TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS attempts (
		id TEXT PRIMARY KEY,
		question_id TEXT NOT NULL,
		learner_id TEXT NOT NULL,
		session_id TEXT NOT NULL DEFAULT '',
		concept_id TEXT NOT NULL,
		question_text TEXT NOT NULL DEFAULT '',
		submitted TEXT NOT NULL DEFAULT '',
		is_correct INTEGER NOT NULL,
		partial_score REAL NOT NULL DEFAULT 0,
		response_ms INTEGER NOT NULL DEFAULT 0,
		rating_before REAL NOT NULL,
		rating_after REAL NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE INDEX IF NOT EXISTS idx_attempts_learner
		ON attempts (learner_id, created_at DESC)`,

	`CREATE INDEX IF NOT EXISTS idx_attempts_learner_concept
		ON attempts (learner_id, concept_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS llm_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

func migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}
