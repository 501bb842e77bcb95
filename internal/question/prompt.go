package question

import (
	"fmt"
	"strings"

	"github.com/abhisek/mora/internal/content"
	"github.com/abhisek/mora/internal/curriculum"
)

const systemPrompt = `You are a math tutor creating practice questions for young children.

Rules:
- Generate a single question for the given concept at the requested difficulty.
- Use plain ASCII text for all math. No LaTeX, no Unicode symbols. Use / for fractions, * for multiplication, and standard operators.
- The question text should be clear, self-contained, and age-appropriate.
- The question must not depend on any picture, drawing, or object the learner cannot see.
- The answer must be correct. Double-check the arithmetic before answering.
- The explanation should show the solution step by step, suitable for a child.
- For multiple choice, provide exactly 4 options where exactly one is correct. Distractors should reflect common mistakes, not random values.
- For short answer, return an empty options array.
- Do not repeat or closely paraphrase any question from the "avoid" list.`

// GenerateInput carries everything one generation call needs.
type GenerateInput struct {
	Concept curriculum.Concept

	// Topic is the curriculum area name for context.
	Topic string

	// TargetDifficulty is on the Elo scale.
	TargetDifficulty float64

	Type content.QuestionType

	// Avoid lists question texts the learner has already seen.
	Avoid []string
}

// maxAvoid bounds how many prior questions go into the prompt.
const maxAvoid = 40

func buildUserMessage(in GenerateInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Concept: %s\n", in.Concept.Name)
	fmt.Fprintf(&b, "Description: %s\n", in.Concept.Description)
	if in.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	}
	fmt.Fprintf(&b, "Difficulty rating: %.0f (on a scale where 800 suits a beginner and 1600 an expert)\n", in.TargetDifficulty)
	fmt.Fprintf(&b, "Format: %s\n", in.Type)

	b.WriteString("\nAvoid these already-seen questions:\n")
	b.WriteString(buildAvoid(in.Avoid, maxAvoid))

	return b.String()
}

// buildAvoid formats prior questions for the prompt, respecting the
// max limit. Returns "None" if there are none.
func buildAvoid(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
