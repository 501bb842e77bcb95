// Package specialty generates questions for concepts that need an
// embedded visual and therefore bypass the LLM pipeline entirely.
// Output is already valid and skips validation-retry cycling.
package specialty

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/abhisek/mora/internal/content"
	"github.com/abhisek/mora/internal/curriculum"
	"github.com/abhisek/mora/internal/distractor"
)

var clockKeywords = []string{
	"clock", "telling time", "tell time", "analog time",
	"read time", "reading time", "reading clocks", "analog clock",
}

var inequalityKeywords = []string{
	"inequality", "inequalities", "number line", "number lines",
}

// Generator produces a complete, pre-validated question for one
// family of concepts.
type Generator interface {
	// Name identifies the generator in logs and events.
	Name() string

	// Generate builds a question for the concept, avoiding the given
	// recently seen question texts when possible.
	Generate(c curriculum.Concept, recent []string) content.Question
}

// For returns the generator matching the concept's name or
// description keywords, or nil when the concept goes through the
// normal pipeline.
func For(c curriculum.Concept, src rand.Source) Generator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	text := strings.ToLower(c.Name + " " + c.Description)
	for _, kw := range clockKeywords {
		if strings.Contains(text, kw) {
			return &clockGenerator{rng: rand.New(src)}
		}
	}
	for _, kw := range inequalityKeywords {
		if strings.Contains(text, kw) {
			return &inequalityGenerator{rng: rand.New(src)}
		}
	}
	return nil
}

// assembleOptions letter-prefixes raw option texts, placing the
// correct value at a random position. Returns the options and the
// prefixed answer.
func assembleOptions(rng *rand.Rand, correct string, distractors []string) ([]string, string) {
	n := len(distractors) + 1
	correctIdx := rng.IntN(n)
	options := make([]string, 0, n)
	answer := ""
	di := 0
	for i := 0; i < n; i++ {
		text := correct
		if i != correctIdx {
			text = distractors[di]
			di++
		}
		opt := fmt.Sprintf("%s) %s", distractor.Letters[i], text)
		options = append(options, opt)
		if i == correctIdx {
			answer = opt
		}
	}
	return options, answer
}
