package content

import (
	"encoding/json"
	"testing"
)

func TestNormalize_WellFormed(t *testing.T) {
	c := Normalize(map[string]any{
		"question":       "What is 2 + 2?",
		"correct_answer": "4",
		"options":        []any{"A) 3", "B) 4", "C) 5", "D) 6"},
		"explanation":    "2 + 2 = 4",
	})
	if c.Question != "What is 2 + 2?" || c.Answer != "4" {
		t.Errorf("unexpected candidate: %+v", c)
	}
	if len(c.Options) != 4 {
		t.Errorf("options = %v", c.Options)
	}
}

func TestNormalize_CoercesOddShapes(t *testing.T) {
	c := Normalize(map[string]any{
		"question":       "  What is 3 + 5?  ",
		"correct_answer": float64(8), // numeric answer from loose JSON
		"options":        []any{float64(7), float64(8), nil, map[string]any{}},
		"explanation":    42, // numeric explanation renders as text
	})
	if c.Answer != "8" {
		t.Errorf("Answer = %q, want %q", c.Answer, "8")
	}
	if c.Question != "What is 3 + 5?" {
		t.Errorf("Question = %q", c.Question)
	}
	if len(c.Options) != 2 {
		t.Errorf("Options = %v, want the two coercible entries", c.Options)
	}
	if c.Explanation != "42" {
		t.Errorf("Explanation = %q, want %q", c.Explanation, "42")
	}
	if c = Normalize(map[string]any{"explanation": struct{}{}}); c.Explanation != "" {
		t.Errorf("Explanation = %q, want empty for uncoercible type", c.Explanation)
	}
}

func TestNormalize_MissingFields(t *testing.T) {
	c := Normalize(map[string]any{})
	if c.Question != "" || c.Answer != "" || c.Options != nil || c.Explanation != "" {
		t.Errorf("missing fields should default empty, got %+v", c)
	}
}

func TestNormalizeJSON(t *testing.T) {
	c, err := NormalizeJSON(json.RawMessage(`{"question":"What is 5 - 2?","correct_answer":3.5}`))
	if err != nil {
		t.Fatalf("NormalizeJSON: %v", err)
	}
	if c.Answer != "3.5" {
		t.Errorf("Answer = %q", c.Answer)
	}

	if _, err := NormalizeJSON(json.RawMessage(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
