package question

import (
	"context"
	"fmt"

	"github.com/abhisek/mora/internal/content"
	"github.com/abhisek/mora/internal/llm"
)

// Generator produces one candidate question. Implemented by
// LLMGenerator; tests substitute their own.
type Generator interface {
	Generate(ctx context.Context, in GenerateInput) (content.Candidate, error)
}

// LLMGenerator asks the configured LLM provider for a question and
// normalizes its output at the ingestion boundary.
type LLMGenerator struct {
	provider llm.Provider

	// MaxTokens and Temperature are passed through to the provider.
	MaxTokens   int
	Temperature float64
}

// NewLLMGenerator creates a generator with default request limits.
func NewLLMGenerator(provider llm.Provider) *LLMGenerator {
	return &LLMGenerator{provider: provider, MaxTokens: 1024, Temperature: 0.7}
}

func (g *LLMGenerator) Generate(ctx context.Context, in GenerateInput) (content.Candidate, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(in)},
		},
		Schema:      Schema,
		MaxTokens:   g.MaxTokens,
		Temperature: g.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return content.Candidate{}, fmt.Errorf("LLM generation failed: %w", err)
	}

	cand, err := content.NormalizeJSON(resp.Content)
	if err != nil {
		return content.Candidate{}, fmt.Errorf("normalize LLM response: %w", err)
	}
	return cand, nil
}
