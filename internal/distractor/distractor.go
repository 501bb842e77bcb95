// Package distractor synthesizes plausible wrong options for multiple
// choice questions. The generator is deterministic given its random
// source, which keeps tests reproducible.
package distractor

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
)

var letterPrefixRe = regexp.MustCompile(`^[A-Da-d][).\s]+\s*`)

// Letters are the sequential option labels.
var Letters = []string{"A", "B", "C", "D", "E", "F"}

// fallbacks is the fixed vocabulary used when strategies run dry.
var fallbacks = []string{"0", "1", "false", "no", "unknown"}

var wordToNum = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// Synthesizer generates distractors using the supplied random source.
type Synthesizer struct {
	rng *rand.Rand
}

// New creates a Synthesizer. A nil source falls back to a fixed seed,
// which is fine for interactive use and deterministic for tests.
func New(src rand.Source) *Synthesizer {
	if src == nil {
		src = rand.NewPCG(1, 2)
	}
	return &Synthesizer{rng: rand.New(src)}
}

// Synthesize returns exactly count unique distractors for the given
// correct answer, none equal to the answer itself.
func (s *Synthesizer) Synthesize(correct string, count int) []string {
	correct = strings.TrimSpace(letterPrefixRe.ReplaceAllString(strings.TrimSpace(correct), ""))

	var candidates []string
	if num, ok := parseNumber(correct); ok {
		candidates = s.numericDistractors(num)
	} else {
		candidates = s.textDistractors(correct)
	}

	out := dedupe(candidates, correct, count)

	// Strategies exhausted: fixed vocabulary, then unique placeholders.
	for _, fb := range fallbacks {
		if len(out) >= count {
			break
		}
		if fb != correct && !contains(out, fb) {
			out = append(out, fb)
		}
	}
	for len(out) < count {
		p := fmt.Sprintf("option_%04d", s.rng.IntN(9000)+1000)
		if p != correct && !contains(out, p) {
			out = append(out, p)
		}
	}

	return out[:count]
}

// Assemble builds a full option list: count options with the correct
// answer at a uniformly random position, all letter-prefixed. Returns
// the options and the letter-prefixed correct answer.
func (s *Synthesizer) Assemble(correct string, count int) (options []string, answer string) {
	correct = strings.TrimSpace(letterPrefixRe.ReplaceAllString(strings.TrimSpace(correct), ""))
	distractors := s.Synthesize(correct, count-1)

	correctIdx := s.rng.IntN(count)
	options = make([]string, 0, count)
	di := 0
	for i := 0; i < count; i++ {
		text := correct
		if i != correctIdx {
			text = distractors[di]
			di++
		}
		options = append(options, fmt.Sprintf("%s) %s", Letters[i], text))
	}
	return options, fmt.Sprintf("%s) %s", Letters[correctIdx], correct)
}

// numericDistractors applies the step, multiplicative, and random
// nearby strategies. Negative results are discarded (most answers at
// this level are counts or ages).
func (s *Synthesizer) numericDistractors(correct float64) []string {
	var out []string
	isInt := correct == float64(int64(correct))

	var step float64
	switch {
	case absF(correct) < 10 && isInt:
		step = 1
	case absF(correct) < 10:
		step = 0.5
	default:
		step = maxF(1, float64(int(absF(correct)*0.1)))
	}

	add := func(v float64) {
		if v != correct && v >= 0 {
			out = append(out, formatNumber(v, isInt))
		}
	}

	for _, delta := range []float64{step, -step, step * 2, -step * 2} {
		add(correct + delta)
	}

	if correct != 0 {
		add(correct * 2)
		add(correct * 0.5)
	}

	// One small randomized perturbation for answers big enough that
	// ±1 alone looks too uniform.
	if absF(correct) > 5 {
		sign := float64(s.rng.IntN(2)*2 - 1)
		add(correct + sign*float64(s.rng.IntN(3)+1))
	}

	// Several random nearby values.
	spread := int(maxF(5, absF(correct)))
	for i := 0; i < 3; i++ {
		add(correct + float64(s.rng.IntN(2*spread+1)-spread))
	}

	return out
}

// textDistractors handles booleans, multi-value answers, and number
// words.
func (s *Synthesizer) textDistractors(correct string) []string {
	lower := strings.ToLower(correct)

	switch lower {
	case "true":
		return []string{"False"}
	case "false":
		return []string{"True"}
	case "yes":
		return []string{"No"}
	case "no":
		return []string{"Yes"}
	}

	if strings.Contains(correct, ",") {
		if d := multiValueDistractors(correct); len(d) > 0 {
			return d
		}
	}

	if n, ok := wordToNum[lower]; ok {
		return []string{strconv.Itoa(n + 1), strconv.Itoa(n - 1)}
	}

	return nil
}

// multiValueDistractors perturbs comma-separated answers like "2, 3"
// or "x = 2, y = 3": per-component offsets, swapped order, and
// single-component subsets.
func multiValueDistractors(correct string) []string {
	parts := strings.Split(correct, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 {
		return nil
	}

	nums := make([]float64, 0, len(parts))
	for _, p := range parts {
		m := numberRe.FindString(p)
		if m == "" {
			return nil
		}
		n, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return nil
		}
		nums = append(nums, n)
	}

	var out []string
	for _, offset := range []float64{1, -1} {
		variant := make([]string, len(parts))
		for i, p := range parts {
			v := nums[i] + offset
			if idx := strings.Index(p, "="); idx >= 0 {
				variant[i] = fmt.Sprintf("%s = %s", strings.TrimSpace(p[:idx]), formatNumber(v, v == float64(int64(v))))
			} else {
				variant[i] = formatNumber(v, v == float64(int64(v)))
			}
		}
		if joined := strings.Join(variant, ", "); joined != correct {
			out = append(out, joined)
		}
	}

	if len(parts) == 2 {
		if swapped := parts[1] + ", " + parts[0]; swapped != correct {
			out = append(out, swapped)
		}
	}
	for _, p := range parts[:2] {
		if p != correct {
			out = append(out, p)
		}
	}

	return out
}

var numberRe = regexp.MustCompile(`-?\d+\.?\d*`)

// parseNumber parses plain numbers and "a/b" fractions.
func parseNumber(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if strings.Count(text, "/") == 1 {
		parts := strings.SplitN(text, "/", 2)
		num, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		den, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 == nil && err2 == nil && den != 0 {
			return num / den, true
		}
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	return f, err == nil
}

func formatNumber(v float64, isInt bool) string {
	if isInt || v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func dedupe(candidates []string, correct string, limit int) []string {
	seen := map[string]bool{correct: true}
	var out []string
	for _, c := range candidates {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
		if len(out) >= limit {
			break
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
