package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuestionTextMasksNumbers(t *testing.T) {
	got := normalizeQuestionText("What is 5 + 3?")
	want := normalizeQuestionText("What is 12 + 97?")
	assert.Equal(t, want, got)
}

func TestNormalizeQuestionTextDropsSingleLetters(t *testing.T) {
	a := normalizeQuestionText("Solve for x: x + 2 = 5")
	b := normalizeQuestionText("Solve for y: y + 8 = 9")
	assert.Equal(t, a, b)
}

func TestTextSimilarityIdentical(t *testing.T) {
	s := textSimilarity("count the apples", "count the apples")
	assert.InDelta(t, 1.0, s, 1e-9)
}

func TestTextSimilarityDisjoint(t *testing.T) {
	s := textSimilarity("zzzz", "qqqq")
	assert.InDelta(t, 0.0, s, 1e-9)
}

func TestIsSimilarToAnyFlagsNumberVariants(t *testing.T) {
	prior := []string{
		"What is 5 + 3?",
		"How many sides does a triangle have?",
	}
	similar, closest, score := IsSimilarToAny("What is 9 + 2?", prior, SimilarityThreshold)
	assert.True(t, similar)
	assert.Equal(t, "What is 5 + 3?", closest)
	assert.GreaterOrEqual(t, score, SimilarityThreshold)
}

func TestIsSimilarToAnyPassesDistinctQuestions(t *testing.T) {
	prior := []string{
		"What is 5 + 3?",
	}
	similar, _, _ := IsSimilarToAny(
		"Sara has 4 apples and eats 1. How many apples are left?", prior, SimilarityThreshold)
	assert.False(t, similar)
}

func TestIsSimilarToAnyEmptyPrior(t *testing.T) {
	similar, closest, score := IsSimilarToAny("What is 5 + 3?", nil, SimilarityThreshold)
	assert.False(t, similar)
	assert.Empty(t, closest)
	assert.Zero(t, score)
}
