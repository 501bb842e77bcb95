// Package grade processes submitted answers: grading, skill model
// updates, and attempt recording.
package grade

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/mora/internal/content"
	"github.com/abhisek/mora/internal/llm"
	"github.com/abhisek/mora/internal/match"
)

const gradingPrompt = `You are grading a learner's answer. Compare it to the correct answer.

Be generous with partial credit for answers that show understanding.
Award is_correct only when the answer is substantively right.`

var gradingSchema = &llm.Schema{
	Name:        "answer-grade",
	Description: "Judgment of a learner's free-form answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"is_correct": map[string]any{
				"type": "boolean",
			},
			"partial_score": map[string]any{
				"type":        "number",
				"description": "Credit from 0.0 to 1.0",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "One or two sentences on what was right or wrong",
			},
		},
		"required":             []any{"is_correct", "partial_score", "feedback"},
		"additionalProperties": false,
	},
}

// Judgment is the outcome of grading one answer.
type Judgment struct {
	Correct      bool
	Close        bool
	PartialScore float64
	Feedback     string
}

// Grader judges submitted answers. Multiple choice and short answer
// use deterministic matching; open problems go to the LLM with a
// fallback to exact matching when the provider fails.
type Grader struct {
	provider llm.Provider
	log      *slog.Logger
}

// NewGrader builds a grader. The provider may be nil, in which case
// open problems fall back to deterministic matching.
func NewGrader(provider llm.Provider, log *slog.Logger) *Grader {
	if log == nil {
		log = slog.Default()
	}
	return &Grader{provider: provider, log: log}
}

// Grade judges the submitted answer against the question.
func (g *Grader) Grade(ctx context.Context, q content.Question, submitted string) Judgment {
	if q.Type != content.TypeOpenProblem {
		r := match.CheckAnswer(submitted, q.Answer, q.Type, q.Options)
		return Judgment{Correct: r.Correct, Close: r.Close, PartialScore: score(r.Correct)}
	}

	if g.provider != nil {
		if j, err := g.gradeLLM(ctx, q, submitted); err == nil {
			return j
		} else {
			g.log.Warn("answer grading fell back to exact match", "error", err)
		}
	}

	r := match.CheckAnswer(submitted, q.Answer, content.TypeShortAnswer, nil)
	return Judgment{Correct: r.Correct, Close: r.Close, PartialScore: score(r.Correct)}
}

func (g *Grader) gradeLLM(ctx context.Context, q content.Question, submitted string) (Judgment, error) {
	ctx = llm.WithPurpose(ctx, "answer-grading")

	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", q.Text)
	fmt.Fprintf(&b, "Correct answer: %s\n", q.Answer)
	fmt.Fprintf(&b, "Learner answer: %s\n", submitted)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      gradingPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: b.String()}},
		Schema:      gradingSchema,
		MaxTokens:   512,
		Temperature: 0.3,
	})
	if err != nil {
		return Judgment{}, err
	}

	var out struct {
		IsCorrect    bool    `json:"is_correct"`
		PartialScore float64 `json:"partial_score"`
		Feedback     string  `json:"feedback"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Judgment{}, fmt.Errorf("decode grading response: %w", err)
	}

	j := Judgment{
		Correct:      out.IsCorrect,
		PartialScore: clampScore(out.PartialScore),
		Feedback:     out.Feedback,
	}
	if j.Correct && j.PartialScore == 0 {
		j.PartialScore = 1.0
	}
	return j, nil
}

func score(correct bool) float64 {
	if correct {
		return 1.0
	}
	return 0.0
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
