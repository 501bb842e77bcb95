package content

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Candidate is a raw question shape from the external content source,
// normalized into a strict schema. All fields are safe (possibly empty)
// strings; nothing downstream needs to re-check shapes.
type Candidate struct {
	Question    string
	Answer      string
	Options     []string
	Explanation string

	// Artifact carries an embedded visual from specialty generators.
	Artifact string
}

// NormalizeJSON decodes untrusted generator JSON into a Candidate.
// Unexpected shapes are coerced to safe defaults field by field; only
// undecodable JSON is an error.
func NormalizeJSON(raw json.RawMessage) (Candidate, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return Candidate{}, fmt.Errorf("decode candidate: %w", err)
	}
	return Normalize(m), nil
}

// Normalize coerces an arbitrary map into a Candidate. Missing and
// mistyped fields become empty defaults rather than errors; the
// validator downstream decides whether the result is usable.
func Normalize(m map[string]any) Candidate {
	return Candidate{
		Question:    coerceString(m["question"]),
		Answer:      coerceString(m["correct_answer"]),
		Options:     coerceStrings(m["options"]),
		Explanation: coerceString(m["explanation"]),
	}
}

// coerceString renders scalar values as trimmed strings. Numbers keep
// integer formatting when exact ("8", not "8.000000"). Anything else
// becomes the empty string.
func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// coerceStrings coerces a value into a slice of non-empty strings.
func coerceStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := coerceString(it); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
