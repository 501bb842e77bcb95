package question

import (
	"regexp"
	"strings"
)

// SimilarityThreshold is the normalized-text ratio above which two
// questions count as the same question rephrased.
const SimilarityThreshold = 0.7

var (
	numberPlaceholderRe = regexp.MustCompile(`\d+\.?\d*`)
	singleLetterRe      = regexp.MustCompile(`\b[a-z]\b`)
	spaceRe             = regexp.MustCompile(`\s+`)
)

// normalizeQuestionText strips the parts that vary between instances
// of the same template: numbers become "?" and single-letter variable
// names are dropped, while content words ("stickers", "apples") are
// kept.
func normalizeQuestionText(text string) string {
	text = strings.ToLower(text)
	text = numberPlaceholderRe.ReplaceAllString(text, "?")
	text = singleLetterRe.ReplaceAllString(text, "")
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// textSimilarity scores two question texts in [0,1] after
// normalization, using a longest-common-subsequence ratio.
func textSimilarity(a, b string) float64 {
	na, nb := normalizeQuestionText(a), normalizeQuestionText(b)
	if na == "" || nb == "" {
		return 0
	}
	lcs := lcsLength(na, nb)
	return 2 * float64(lcs) / float64(len(na)+len(nb))
}

// IsSimilarToAny reports whether text is too close to any of the
// excluded questions, with the closest match and its score.
func IsSimilarToAny(text string, exclude []string, threshold float64) (similar bool, closest string, score float64) {
	for _, e := range exclude {
		if s := textSimilarity(text, e); s > score {
			score, closest = s, e
		}
	}
	return score >= threshold, closest, score
}

func lcsLength(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
