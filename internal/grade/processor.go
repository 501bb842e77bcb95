package grade

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mora/internal/content"
	"github.com/abhisek/mora/internal/elo"
	"github.com/abhisek/mora/internal/store"
)

// Processor grades an answer and applies the full attempt pipeline:
// skill update, mastery recompute, attempt record, history sample.
type Processor struct {
	grader *Grader
	store  *store.Store
	log    *slog.Logger
	params elo.Params
}

// NewProcessor wires the answer pipeline.
func NewProcessor(grader *Grader, st *store.Store, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{grader: grader, store: st, log: log, params: elo.DefaultParams()}
}

// Submission is one answer to process.
type Submission struct {
	LearnerID    string
	SessionID    string
	Question     content.Question
	Answer       string
	ResponseTime time.Duration
}

// Outcome reports the result of processing a submission.
type Outcome struct {
	Judgment

	AttemptID    string
	RatingBefore float64
	Rating       float64
	Mastery      float64
}

// Process grades the submission and updates persistent state. Skill
// states are created lazily with model defaults on first attempt.
func (p *Processor) Process(ctx context.Context, sub Submission) (Outcome, error) {
	j := p.grader.Grade(ctx, sub.Question, sub.Answer)

	state, found, err := p.store.Skills().Get(ctx, sub.LearnerID, sub.Question.ConceptID)
	if err != nil {
		return Outcome{}, fmt.Errorf("load skill state: %w", err)
	}
	if !found {
		state = content.SkillState{
			LearnerID:   sub.LearnerID,
			ConceptID:   sub.Question.ConceptID,
			Rating:      p.params.InitialRating,
			Uncertainty: p.params.InitialUncertainty,
		}
	}

	before := state.Rating
	state.Rating, state.Uncertainty = elo.UpdateSkill(
		state.Rating, state.Uncertainty, sub.Question.Difficulty, j.Correct, p.params)

	// Mastery blends the new rating with windowed accuracy on this
	// concept, counting the current result.
	recent, err := p.store.Attempts().RecentByConcept(
		ctx, sub.LearnerID, sub.Question.ConceptID, p.params.RecentWindow)
	if err != nil {
		return Outcome{}, fmt.Errorf("load recent attempts: %w", err)
	}
	correct := 0
	if j.Correct {
		correct++
	}
	for _, a := range recent {
		if a.IsCorrect {
			correct++
		}
	}
	accuracy := float64(correct) / float64(len(recent)+1)
	state.Mastery = elo.ComputeMastery(state.Rating, accuracy, p.params)

	state.TotalAttempts++
	if j.Correct {
		state.CorrectAttempts++
	}
	if err := p.store.Skills().Save(ctx, state); err != nil {
		return Outcome{}, fmt.Errorf("save skill state: %w", err)
	}

	attempt := content.Attempt{
		ID:           uuid.NewString(),
		QuestionID:   sub.Question.ID,
		LearnerID:    sub.LearnerID,
		SessionID:    sub.SessionID,
		ConceptID:    sub.Question.ConceptID,
		QuestionText: sub.Question.Text,
		Submitted:    sub.Answer,
		IsCorrect:    j.Correct,
		PartialScore: j.PartialScore,
		ResponseTime: sub.ResponseTime,
		RatingBefore: before,
		RatingAfter:  state.Rating,
		CreatedAt:    time.Now().UTC(),
	}
	if err := p.store.Attempts().Append(ctx, attempt); err != nil {
		return Outcome{}, fmt.Errorf("record attempt: %w", err)
	}

	if err := p.store.History().Append(ctx, content.HistorySample{
		LearnerID:   sub.LearnerID,
		ConceptID:   sub.Question.ConceptID,
		AttemptID:   attempt.ID,
		Rating:      state.Rating,
		Uncertainty: state.Uncertainty,
		Mastery:     state.Mastery,
		CreatedAt:   attempt.CreatedAt,
	}); err != nil {
		return Outcome{}, fmt.Errorf("record history: %w", err)
	}

	p.log.Info("attempt processed",
		"learner", sub.LearnerID,
		"concept", sub.Question.ConceptID,
		"correct", j.Correct,
		"rating", state.Rating,
		"mastery", state.Mastery)

	return Outcome{
		Judgment:     j,
		AttemptID:    attempt.ID,
		RatingBefore: before,
		Rating:       state.Rating,
		Mastery:      state.Mastery,
	}, nil
}
