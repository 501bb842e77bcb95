// Package question orchestrates next-question delivery: concept
// selection, difficulty targeting, generation, validation, dedup, and
// pre-caching.
package question

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/mora/internal/content"
	"github.com/abhisek/mora/internal/curriculum"
	"github.com/abhisek/mora/internal/distractor"
	"github.com/abhisek/mora/internal/elo"
	"github.com/abhisek/mora/internal/selector"
	"github.com/abhisek/mora/internal/specialty"
	"github.com/abhisek/mora/internal/store"
	"github.com/abhisek/mora/internal/validate"
)

// ErrExhaustedRetries is returned when every bounded generation
// attempt produced invalid or duplicate content.
var ErrExhaustedRetries = errors.New("question generation retries exhausted")

// maxGenerationAttempts bounds the validate-and-regenerate loop.
const maxGenerationAttempts = 2

// Service produces the next question for a learner.
type Service struct {
	graph     *curriculum.Graph
	generator Generator
	store     *store.Store
	precache  *Precache
	log       *slog.Logger

	eloParams elo.Params
	selParams selector.Params

	// Topic names the curriculum area, passed to the generator for
	// context.
	Topic string

	// rngSrc seeds specialty generators. Nil uses a random seed.
	rngSrc rand.Source

	// denied tracks concepts whose generation exhausted every retry.
	// The selector skips them for the rest of the process lifetime.
	denyMu sync.Mutex
	denied map[string]bool
}

// NewService wires the orchestrator.
func NewService(graph *curriculum.Graph, gen Generator, st *store.Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		graph:     graph,
		generator: gen,
		store:     st,
		precache:  NewPrecache(),
		log:       log,
		eloParams: elo.DefaultParams(),
		selParams: selector.DefaultParams(),
	}
}

// Served couples a question with the concept it practices.
type Served struct {
	Question content.Question
	Concept  curriculum.Concept
}

// Next returns the next question for the learner. It serves from the
// precache when the cached entry matches the selected concept, else
// generates fresh.
func (s *Service) Next(ctx context.Context, learnerID, sessionID, currentConceptID string, lastCorrect bool) (*Served, error) {
	concept, params, err := s.plan(ctx, learnerID, currentConceptID, lastCorrect)
	if err != nil {
		return nil, err
	}

	if q, ok := s.precache.Pop(learnerID, sessionID, concept.ID); ok {
		s.log.Info("precache hit", "learner", learnerID, "concept", concept.ID)
		return &Served{Question: q, Concept: concept}, nil
	}

	q, err := s.generate(ctx, learnerID, sessionID, concept, params)
	if err != nil {
		return nil, err
	}
	return &Served{Question: q, Concept: concept}, nil
}

// PrecacheNext generates the question a learner would get for the
// given branch outcome and caches it, while the learner is still
// answering.
func (s *Service) PrecacheNext(ctx context.Context, learnerID, sessionID, currentConceptID string, assumeCorrect bool) error {
	concept, params, err := s.plan(ctx, learnerID, currentConceptID, assumeCorrect)
	if err != nil {
		return err
	}
	q, err := s.generate(ctx, learnerID, sessionID, concept, params)
	if err != nil {
		return err
	}
	s.precache.Put(learnerID, sessionID, q)
	s.log.Info("precached question", "learner", learnerID, "concept", concept.ID)
	return nil
}

// plan runs selection and difficulty targeting from persisted state.
func (s *Service) plan(ctx context.Context, learnerID, currentConceptID string, lastCorrect bool) (curriculum.Concept, selector.QuestionParams, error) {
	attempts, err := s.store.Attempts().Recent(ctx, learnerID, s.selParams.Window)
	if err != nil {
		return curriculum.Concept{}, selector.QuestionParams{}, fmt.Errorf("load attempts: %w", err)
	}
	states, err := s.store.Skills().All(ctx, learnerID)
	if err != nil {
		return curriculum.Concept{}, selector.QuestionParams{}, fmt.Errorf("load skill states: %w", err)
	}

	analysis := selector.Analyze(attempts, s.selParams)
	concept := selector.NextConcept(selector.Input{
		Graph:            s.graph,
		States:           states,
		Analysis:         analysis,
		CurrentConceptID: currentConceptID,
		LastCorrect:      lastCorrect,
		Denylist:         s.deniedConcepts(),
	}, s.selParams)

	params := selector.ComputeQuestionParams(concept.ID, states, analysis, s.eloParams, s.selParams)
	return concept, params, nil
}

// generate produces, validates, dedups, and persists one question.
func (s *Service) generate(ctx context.Context, learnerID, sessionID string, concept curriculum.Concept, params selector.QuestionParams) (content.Question, error) {
	sessionTexts, err := s.store.Attempts().SessionTexts(ctx, learnerID, sessionID)
	if err != nil {
		return content.Question{}, fmt.Errorf("session dedup texts: %w", err)
	}
	correctTexts, err := s.store.Attempts().CorrectTexts(ctx, learnerID)
	if err != nil {
		return content.Question{}, fmt.Errorf("lifetime dedup texts: %w", err)
	}

	seen := make(map[string]bool, len(sessionTexts)+len(correctTexts))
	avoid := make([]string, 0, len(sessionTexts)+len(correctTexts))
	for _, t := range sessionTexts {
		seen[t] = true
		avoid = append(avoid, t)
	}
	for _, t := range correctTexts {
		if !seen[t] {
			seen[t] = true
			avoid = append(avoid, t)
		}
	}

	// Specialty concepts bypass the LLM and validation entirely.
	if gen := specialty.For(concept, s.rngSrc); gen != nil {
		q := gen.Generate(concept, avoid)
		return s.persist(ctx, q, params)
	}

	in := GenerateInput{
		Concept:          concept,
		Topic:            s.Topic,
		TargetDifficulty: params.TargetDifficulty,
		Type:             params.Type,
		Avoid:            avoid,
	}

	for attempt := 1; attempt <= maxGenerationAttempts; attempt++ {
		cand, err := s.generator.Generate(ctx, in)
		if err != nil {
			// Upstream unavailability propagates; the caller decides on
			// retry or fallback.
			return content.Question{}, err
		}

		if r := validate.Validate(cand); r != nil {
			s.log.Warn("validation rejected", "attempt", attempt, "rule", r.Rule, "reason", r.Reason)
			s.persistRejected(ctx, cand, concept.ID, params)
			continue
		}

		if seen[cand.Question] {
			s.log.Warn("dedup rejected", "attempt", attempt)
			continue
		}
		if similar, _, score := IsSimilarToAny(cand.Question, avoid, SimilarityThreshold); similar {
			s.log.Warn("similarity rejected", "attempt", attempt, "score", score)
			continue
		}

		return s.persist(ctx, s.build(cand, concept.ID, params), params)
	}

	s.denyConcept(concept.ID)
	s.log.Warn("concept denied after exhausted retries", "concept", concept.ID)
	return content.Question{}, ErrExhaustedRetries
}

// denyConcept marks a concept unservable so selection stops picking
// it. The selector's least-mastered fallback may still return a
// denied concept when nothing else is eligible.
func (s *Service) denyConcept(id string) {
	s.denyMu.Lock()
	defer s.denyMu.Unlock()
	if s.denied == nil {
		s.denied = make(map[string]bool)
	}
	s.denied[id] = true
}

func (s *Service) deniedConcepts() map[string]bool {
	s.denyMu.Lock()
	defer s.denyMu.Unlock()
	if len(s.denied) == 0 {
		return nil
	}
	out := make(map[string]bool, len(s.denied))
	for id := range s.denied {
		out[id] = true
	}
	return out
}

// build assembles a Question from a validated candidate, adding
// synthesized options for multiple choice when the generator did not
// provide enough.
func (s *Service) build(cand content.Candidate, conceptID string, params selector.QuestionParams) content.Question {
	q := content.Question{
		ConceptID:   conceptID,
		Text:        cand.Question,
		Type:        params.Type,
		Options:     cand.Options,
		Answer:      cand.Answer,
		Explanation: cand.Explanation,
		Status:      content.StatusApproved,
	}
	if q.Type == content.TypeMultipleChoice && len(q.Options) < 3 {
		src := s.rngSrc
		if src == nil {
			src = rand.NewPCG(rand.Uint64(), rand.Uint64())
		}
		q.Options, q.Answer = distractor.New(src).Assemble(cand.Answer, 4)
	}
	return q
}

func (s *Service) persist(ctx context.Context, q content.Question, params selector.QuestionParams) (content.Question, error) {
	q.ID = uuid.NewString()
	q.Difficulty = params.TargetDifficulty
	q.EstimatedPCorrect = elo.ProbabilityCorrect(params.RatingUsed, params.TargetDifficulty, s.eloParams.Scale)
	if q.Status == "" {
		q.Status = content.StatusApproved
	}
	if err := s.store.Questions().Save(ctx, q); err != nil {
		return content.Question{}, err
	}
	return q, nil
}

// persistRejected records rejected candidates so they are terminal
// and excluded from future selection.
func (s *Service) persistRejected(ctx context.Context, cand content.Candidate, conceptID string, params selector.QuestionParams) {
	q := content.Question{
		ID:          uuid.NewString(),
		ConceptID:   conceptID,
		Text:        cand.Question,
		Type:        params.Type,
		Options:     cand.Options,
		Answer:      cand.Answer,
		Explanation: cand.Explanation,
		Difficulty:  params.TargetDifficulty,
		Status:      content.StatusRejected,
	}
	if err := s.store.Questions().Save(ctx, q); err != nil {
		s.log.Warn("persist rejected question", "error", err)
	}
}
