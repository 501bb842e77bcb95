package validate

import (
	"strconv"
	"strings"

	"github.com/abhisek/mora/internal/content"
)

// verifyMath runs the three independent math checks: the stated
// answer against the question, the explanation's final result against
// the answer, and every arithmetic fragment inside the explanation.
// Values that cannot be extracted are unverifiable and accepted.
func verifyMath(c content.Candidate) *Rejection {
	resolved := resolveAnswerText(c.Answer, c.Options)
	stated, statedOK := parseNumeric(resolved)

	if statedOK {
		if computed, ok := ComputeFromQuestion(c.Question); ok && !withinTolerance(computed, stated) {
			return reject("math_answer",
				"question computes to %s, but stated answer is %s",
				formatNum(computed), resolved)
		}
	}

	if statedOK && c.Explanation != "" {
		if final, ok := finalStatedResult(c.Explanation); ok && !withinTolerance(final, stated) {
			return reject("math_explanation",
				"explanation concludes %s, but stated answer is %s",
				formatNum(final), resolved)
		}
	}

	if c.Explanation != "" {
		if expr, want, got, bad := checkFragments(c.Explanation); bad {
			return reject("math_fragment",
				"explanation states %s = %s, but it computes to %s",
				strings.TrimSpace(expr), formatNum(want), formatNum(got))
		}
	}

	return nil
}

// resolveAnswerText maps an MCQ answer to its text value: "D) 9"
// becomes "9", a bare letter is looked up in the options list.
func resolveAnswerText(answer string, options []string) string {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return answer
	}

	stripped := strings.TrimSpace(letterPrefixRe.ReplaceAllString(answer, ""))
	if stripped != "" && stripped != answer {
		return stripped
	}

	if len(options) > 0 && len(answer) == 1 {
		upper := strings.ToUpper(answer)
		if upper >= "A" && upper <= "D" {
			idx := int(upper[0] - 'A')
			if idx < len(options) {
				return strings.TrimSpace(letterPrefixRe.ReplaceAllString(options[idx], ""))
			}
		}
	}

	return answer
}

// parseNumeric parses plain numbers and single-slash fractions.
func parseNumeric(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if strings.Count(text, "/") == 1 {
		parts := strings.SplitN(text, "/", 2)
		num, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		den, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil || den == 0 {
			return 0, false
		}
		return num / den, true
	}
	v, err := strconv.ParseFloat(text, 64)
	return v, err == nil
}

func withinTolerance(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

func formatNum(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
