package match

import (
	"testing"

	"github.com/abhisek/mora/internal/content"
)

func TestCheckAnswer_ShortAnswerNumeric(t *testing.T) {
	tests := []struct {
		submitted string
		intended  string
		correct   bool
		close     bool
	}{
		{"100", "100", true, false},
		{"101", "100", false, true}, // numeric miss, flagged close by digit overlap
		{"110", "100", false, true}, // 10% off numerically, same digit set
		{"200", "100", false, false},
		{"0.5", "1/2", true, false},
		{"3.50", "3.5", true, false},
		{"1,000", "1000", true, false},
	}
	for _, tt := range tests {
		got := CheckAnswer(tt.submitted, tt.intended, content.TypeShortAnswer, nil)
		if got.Correct != tt.correct || got.Close != tt.close {
			t.Errorf("CheckAnswer(%q, %q) = %+v, want correct=%v close=%v",
				tt.submitted, tt.intended, got, tt.correct, tt.close)
		}
	}
}

func TestCheckAnswer_ShortAnswerText(t *testing.T) {
	tests := []struct {
		submitted string
		intended  string
		correct   bool
	}{
		{"Triangle", "triangle", true},
		{"triangles", "triangle", true},   // containment, ratio 8/9 > 0.8
		{"a triangle", "triangle", false}, // ratio exactly 0.8, not strictly above
		{"triangle", "a very long description of a triangle", false},
		{"$5", "$5", true},
		{"50%", "50%", true},
	}
	for _, tt := range tests {
		got := CheckAnswer(tt.submitted, tt.intended, content.TypeShortAnswer, nil)
		if got.Correct != tt.correct {
			t.Errorf("CheckAnswer(%q, %q).Correct = %v, want %v",
				tt.submitted, tt.intended, got.Correct, tt.correct)
		}
	}
}

func TestCheckAnswer_CloseByOverlap(t *testing.T) {
	got := CheckAnswer("trianlge", "triangle", content.TypeShortAnswer, nil)
	if got.Correct {
		t.Error("transposed letters should not be correct")
	}
	if !got.Close {
		t.Error("transposed letters should be close")
	}
}

func TestCheckAnswer_MultipleChoice(t *testing.T) {
	options := []string{"A) 4", "B) 6", "C) 8", "D) 10"}

	tests := []struct {
		submitted string
		intended  string
		correct   bool
	}{
		{"B", "B", true},
		{"b", "B) 6", true},
		{"C", "B", false},
		{"6", "B", true}, // text resolved through options
		{"B", "6", true}, // letter resolved through options
		{"8", "B", false},
		{"6", "6", true},
	}
	for _, tt := range tests {
		got := CheckAnswer(tt.submitted, tt.intended, content.TypeMultipleChoice, options)
		if got.Correct != tt.correct {
			t.Errorf("CheckAnswer(%q, %q) = %+v, want correct=%v",
				tt.submitted, tt.intended, got, tt.correct)
		}
		if got.Close {
			t.Errorf("MCQ answers are never close: %q vs %q", tt.submitted, tt.intended)
		}
	}
}

func TestCheckAnswer_MCQLetterWithoutOptions(t *testing.T) {
	// Letter vs text with no options list cannot be resolved.
	got := CheckAnswer("6", "B", content.TypeMultipleChoice, nil)
	if got.Correct {
		t.Error("unresolvable letter/text combination should be wrong")
	}
}

func TestCheckAnswer_Empty(t *testing.T) {
	if got := CheckAnswer("", "4", content.TypeShortAnswer, nil); got.Correct || got.Close {
		t.Errorf("empty submission = %+v", got)
	}
	if got := CheckAnswer("4", "", content.TypeShortAnswer, nil); got.Correct || got.Close {
		t.Errorf("empty intended = %+v", got)
	}
}
