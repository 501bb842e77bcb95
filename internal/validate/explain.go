package validate

import (
	"regexp"
	"strconv"
)

// Result phrases that state a final value in prose. Position-ordered
// against "=" notation; the last occurrence wins.
var resultPhraseRes = []*regexp.Regexp{
	regexp.MustCompile(`to\s+get\s+(-?\d+(?:\.\d+)?)`),
	regexp.MustCompile(`which\s+is\s+(-?\d+(?:\.\d+)?)`),
	regexp.MustCompile(`the\s+result\s+is\s+(-?\d+(?:\.\d+)?)`),
	regexp.MustCompile(`leaving\s+(-?\d+(?:\.\d+)?)`),
	regexp.MustCompile(`you\s+get\s+(-?\d+(?:\.\d+)?)`),
	regexp.MustCompile(`equals\s+(-?\d+(?:\.\d+)?)`),
}

var equalsResultRe = regexp.MustCompile(`=\s*(-?\d+(?:\.\d+)?)`)

// arithmetic fragments like "4 - 2 = 3" embedded in prose.
var fragmentRe = regexp.MustCompile(`(\d+(?:\.\d+)?(?:\s*[+\-*/]\s*\d+(?:\.\d+)?)+)\s*=\s*(-?\d+(?:\.\d+)?)`)

// finalStatedResult extracts the last numeric result the explanation
// states, from "=" notation and prose result phrases combined.
func finalStatedResult(explanation string) (float64, bool) {
	text := normalizeText(explanation)

	lastPos := -1
	var lastVal float64

	consider := func(loc []int, raw string) {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return
		}
		if loc[0] > lastPos {
			lastPos = loc[0]
			lastVal = v
		}
	}

	for _, loc := range equalsResultRe.FindAllStringSubmatchIndex(text, -1) {
		consider(loc, text[loc[2]:loc[3]])
	}
	for _, re := range resultPhraseRes {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			consider(loc, text[loc[2]:loc[3]])
		}
	}

	return lastVal, lastPos >= 0
}

// checkFragments recomputes every "A op B = N" fragment in the
// explanation. The first disagreement is returned; values that cannot
// be evaluated are skipped.
func checkFragments(explanation string) (expr string, stated, computed float64, bad bool) {
	text := normalizeText(explanation)
	for _, m := range fragmentRe.FindAllStringSubmatch(text, -1) {
		got, ok := EvalExpr(m[1])
		if !ok {
			continue
		}
		want, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		if diff := got - want; diff > tolerance || diff < -tolerance {
			return m[1], want, got, true
		}
	}
	return "", 0, 0, false
}
