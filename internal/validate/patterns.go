package validate

import (
	"regexp"
	"strconv"
	"strings"
)

// Unicode dash and operator variants normalized before matching.
var dashRe = regexp.MustCompile(`[−–—]`)

var comparisonWords = []string{
	"which is bigger", "which is larger", "which is smaller",
	"which is greater", "which is less", "which is more",
	"compare", "order",
}

// pattern pairs a phrasing regex with the formula applied to its
// capture groups. The table is ordered and the first match wins.
type pattern struct {
	re      *regexp.Regexp
	compute func(nums []float64) (float64, bool)
}

var questionPatterns = []pattern{
	// "multiply A by B, then divide by C"
	{
		regexp.MustCompile(`multiply\s+(\d+)\s+by\s+(\d+),?\s*(?:and\s+)?then\s+divide\s+(?:it\s+|the\s+result\s+)?by\s+(\d+)`),
		func(n []float64) (float64, bool) {
			if n[2] == 0 {
				return 0, false
			}
			return n[0] * n[1] / n[2], true
		},
	},
	// "A plus B [plus C]"
	{
		regexp.MustCompile(`(\d+)\s+plus\s+(\d+)(?:\s+plus\s+(\d+))?`),
		func(n []float64) (float64, bool) {
			sum := 0.0
			for _, v := range n {
				sum += v
			}
			return sum, true
		},
	},
	// "A minus B"
	{
		regexp.MustCompile(`(\d+)\s+minus\s+(\d+)`),
		func(n []float64) (float64, bool) { return n[0] - n[1], true },
	},
	// "A times B"
	{
		regexp.MustCompile(`(\d+)\s+times\s+(\d+)`),
		func(n []float64) (float64, bool) { return n[0] * n[1], true },
	},
	// "A divided by B"
	{
		regexp.MustCompile(`(\d+)\s+divided\s+by\s+(\d+)`),
		func(n []float64) (float64, bool) {
			if n[1] == 0 {
				return 0, false
			}
			return n[0] / n[1], true
		},
	},
	// "N more than M" is M + N
	{
		regexp.MustCompile(`(\d+)\s+more\s+than\s+(\d+)`),
		func(n []float64) (float64, bool) { return n[1] + n[0], true },
	},
	// "N less than M" is M - N
	{
		regexp.MustCompile(`(\d+)\s+less\s+than\s+(\d+)`),
		func(n []float64) (float64, bool) { return n[1] - n[0], true },
	},
	// "subtract A from B" is B - A
	{
		regexp.MustCompile(`subtract\s+(\d+)\s+from\s+(\d+)`),
		func(n []float64) (float64, bool) { return n[1] - n[0], true },
	},
	// "add A and B" / "sum of A and B"
	{
		regexp.MustCompile(`(?:add|sum\s+of)\s+(\d+)\s+and\s+(\d+)`),
		func(n []float64) (float64, bool) { return n[0] + n[1], true },
	},
	// "product of A and B"
	{
		regexp.MustCompile(`product\s+of\s+(\d+)\s+and\s+(\d+)`),
		func(n []float64) (float64, bool) { return n[0] * n[1], true },
	},
	// "difference between/of A and B" is |A - B|
	{
		regexp.MustCompile(`difference\s+(?:between|of)\s+(\d+)\s+and\s+(\d+)`),
		func(n []float64) (float64, bool) {
			d := n[0] - n[1]
			if d < 0 {
				d = -d
			}
			return d, true
		},
	},
	// "__ + A = B" or "? + A = B" is B - A
	{
		regexp.MustCompile(`(?:_+|\?)\s*\+\s*(\d+)\s*=\s*(\d+)`),
		func(n []float64) (float64, bool) { return n[1] - n[0], true },
	},
	// "A + __ = B" is B - A
	{
		regexp.MustCompile(`(\d+)\s*\+\s*(?:_+|\?)\s*=\s*(\d+)`),
		func(n []float64) (float64, bool) { return n[1] - n[0], true },
	},
	// "__ - A = B" is B + A
	{
		regexp.MustCompile(`(?:_+|\?)\s*-\s*(\d+)\s*=\s*(\d+)`),
		func(n []float64) (float64, bool) { return n[1] + n[0], true },
	},
	// "A - __ = B" is A - B
	{
		regexp.MustCompile(`(\d+)\s*-\s*(?:_+|\?)\s*=\s*(\d+)`),
		func(n []float64) (float64, bool) { return n[0] - n[1], true },
	},
	// "has N ... gives away M" possession and removal word problems
	{
		regexp.MustCompile(`(?:has|had)\s+(\d+)\b.*?\b(?:gives?\s+away|gave\s+away|gives?|gave|loses?|lost|eats?|ate|uses?|used)\s+(\d+)`),
		func(n []float64) (float64, bool) { return n[0] - n[1], true },
	},
	// "has N ... gets/finds/buys M more" accumulation word problems
	{
		regexp.MustCompile(`(?:has|had)\s+(\d+)\b.*?\b(?:gets?|got|finds?|found|buys?|bought|receives?|received)\s+(\d+)`),
		func(n []float64) (float64, bool) { return n[0] + n[1], true },
	},
}

var directExprRe = regexp.MustCompile(`(\d+(?:\s*[+\-*/]\s*\d+)+)`)

// ComputeFromQuestion tries to extract a verifiable numeric result
// from the question text. ok=false means the question cannot be
// parsed and verification is skipped.
func ComputeFromQuestion(question string) (float64, bool) {
	q := normalizeText(question)

	// Comparison questions pick between values, they do not compute.
	for _, w := range comparisonWords {
		if strings.Contains(q, w) {
			return 0, false
		}
	}

	if m := directExprRe.FindString(q); m != "" {
		if v, ok := EvalExpr(m); ok {
			return v, true
		}
	}

	for _, p := range questionPatterns {
		m := p.re.FindStringSubmatch(q)
		if m == nil {
			continue
		}
		var nums []float64
		for _, g := range m[1:] {
			if g == "" {
				continue
			}
			n, err := strconv.ParseFloat(g, 64)
			if err != nil {
				return 0, false
			}
			nums = append(nums, n)
		}
		if v, ok := p.compute(nums); ok {
			return v, true
		}
		return 0, false
	}

	return 0, false
}

func normalizeText(text string) string {
	q := strings.ToLower(strings.TrimSpace(text))
	q = dashRe.ReplaceAllString(q, "-")
	q = strings.ReplaceAll(q, "×", "*")
	q = strings.ReplaceAll(q, "÷", "/")
	return q
}
