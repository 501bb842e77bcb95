// Package match grades submitted answers against a question's intended
// answer.
package match

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/abhisek/mora/internal/content"
)

// Result is the outcome of an answer check. Close marks near misses
// (numeric within 1%, or high character overlap) that are still wrong.
type Result struct {
	Correct bool
	Close   bool
}

var (
	// Keep / % $ so fractions, percentages, and currency survive
	// normalization.
	punctRe        = regexp.MustCompile(`[^\w\s.\-/%$]`)
	letterPrefixRe = regexp.MustCompile(`^[A-Da-d][).\s]+\s*`)
)

// CheckAnswer compares a submitted answer to the intended answer.
// options is consulted only for multiple choice, to resolve a letter to
// its option text.
func CheckAnswer(submitted, intended string, qType content.QuestionType, options []string) Result {
	if strings.TrimSpace(submitted) == "" || strings.TrimSpace(intended) == "" {
		return Result{}
	}

	sub := normalize(submitted)
	want := normalize(intended)

	if qType == content.TypeMultipleChoice {
		return checkMultipleChoice(submitted, intended, options)
	}

	if sub == want {
		return Result{Correct: true}
	}

	// A numeric mismatch is not final: the string checks below can
	// still flag it close ("101" vs "100" shares every digit).
	if sNum, sok := parseNumber(sub); sok {
		if cNum, cok := parseNumber(want); cok {
			diff := sNum - cNum
			if diff < 0 {
				diff = -diff
			}
			if diff < 1e-9 {
				return Result{Correct: true}
			}
			if cNum != 0 && diff/absFloat(cNum) < 0.01 {
				return Result{Close: true}
			}
		}
	}

	// Containment counts when the strings are nearly the same length:
	// "paris" vs "paris france" should not pass, "triangles" vs
	// "triangle" should. The ratio must strictly exceed 0.8.
	if strings.Contains(sub, want) || strings.Contains(want, sub) {
		shorter, longer := len(sub), len(want)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		if longer > 0 && float64(shorter)/float64(longer) > 0.8 {
			return Result{Correct: true}
		}
	}

	return Result{Close: overlapClose(sub, want)}
}

// checkMultipleChoice resolves letters and option text in either
// direction. Unresolvable combinations are simply wrong.
func checkMultipleChoice(submitted, intended string, options []string) Result {
	sLetter, sHas := extractLetter(submitted)
	cLetter, cHas := extractLetter(intended)

	if sHas && cHas {
		return Result{Correct: sLetter == cLetter}
	}

	sub := normalize(stripLabel(submitted))
	want := normalize(stripLabel(intended))

	// Letter on one side only: map it through the options list.
	if sHas != cHas && len(options) > 0 {
		letter := sLetter
		text := want
		if cHas {
			letter = cLetter
			text = sub
		}
		idx := int(letter - 'A')
		if idx >= 0 && idx < len(options) {
			return Result{Correct: normalize(stripLabel(options[idx])) == text}
		}
		return Result{}
	}

	return Result{Correct: sub == want}
}

// normalize lowercases and strips incidental punctuation.
func normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = punctRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// stripLabel removes a leading option label like "B) ".
func stripLabel(text string) string {
	return strings.TrimSpace(letterPrefixRe.ReplaceAllString(strings.TrimSpace(text), ""))
}

// extractLetter pulls a single choice letter (A-D) from an answer.
func extractLetter(text string) (byte, bool) {
	t := strings.ToUpper(strings.TrimSpace(text))
	if len(t) == 1 && t[0] >= 'A' && t[0] <= 'D' {
		return t[0], true
	}
	if len(t) >= 2 && t[0] >= 'A' && t[0] <= 'D' {
		switch t[1] {
		case '.', ')', ' ':
			return t[0], true
		}
	}
	return 0, false
}

// parseNumber parses a normalized string as a number. Fractions ("3/4")
// and thousands separators are handled.
func parseNumber(text string) (float64, bool) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
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

// overlapClose reports whether the submitted answer shares most of the
// intended answer's character set.
func overlapClose(sub, want string) bool {
	if sub == "" || want == "" {
		return false
	}
	wantSet := make(map[rune]bool)
	for _, r := range want {
		wantSet[r] = true
	}
	subSet := make(map[rune]bool)
	for _, r := range sub {
		subSet[r] = true
	}
	common := 0
	for r := range wantSet {
		if subSet[r] {
			common++
		}
	}
	return float64(common)/float64(len(wantSet)) > 0.7
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
