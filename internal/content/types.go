// Package content defines the engine's internal question and attempt
// types, plus the ingestion boundary that normalizes untrusted
// generator output into them.
package content

import "time"

// QuestionType describes how a question is presented and answered.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeShortAnswer    QuestionType = "short_answer"
	TypeOpenProblem    QuestionType = "open_problem"
)

// ValidationStatus tracks a question through the validation pipeline.
// Rejected is terminal; rejected questions are never served.
type ValidationStatus string

const (
	StatusPending  ValidationStatus = "pending"
	StatusApproved ValidationStatus = "approved"
	StatusRejected ValidationStatus = "rejected"
)

// Question is a validated question ready to be served.
type Question struct {
	ID        string
	ConceptID string

	// Text is the question prompt.
	Text string

	Type QuestionType

	// Options is populated only for multiple choice, letter-prefixed
	// ("A) 6").
	Options []string

	// Answer is the intended correct answer. For multiple choice this is
	// letter-prefixed ("B) 7").
	Answer string

	// Explanation is a worked solution shown after answering.
	Explanation string

	// Difficulty is the Elo-scale difficulty this question targets.
	Difficulty float64

	// EstimatedPCorrect is the modeled success probability at generation
	// time.
	EstimatedPCorrect float64

	Status ValidationStatus

	// Artifact is an optional embedded visual (SVG) from a specialty
	// generator. Empty for LLM-generated questions.
	Artifact string
}

// Attempt records one submitted answer. Attempts are immutable once
// created.
type Attempt struct {
	ID         string
	QuestionID string
	LearnerID  string
	SessionID  string
	ConceptID  string

	QuestionText string
	Submitted    string
	IsCorrect    bool
	PartialScore float64

	// ResponseTime is how long the learner took to answer.
	ResponseTime time.Duration

	// RatingBefore and RatingAfter snapshot the skill rating around the
	// update this attempt caused.
	RatingBefore float64
	RatingAfter  float64

	CreatedAt time.Time
}

// SkillState is the per-(learner, concept) model state. Created lazily
// with defaults on first reference, never deleted.
type SkillState struct {
	LearnerID string
	ConceptID string

	Rating      float64
	Uncertainty float64

	// Mastery is the blended [0,1] mastery level.
	Mastery float64

	TotalAttempts   int
	CorrectAttempts int
}

// HistorySample is an append-only snapshot of skill state after an
// attempt, kept for trend analysis.
type HistorySample struct {
	LearnerID string
	ConceptID string
	AttemptID string

	Rating      float64
	Uncertainty float64
	Mastery     float64

	CreatedAt time.Time
}
