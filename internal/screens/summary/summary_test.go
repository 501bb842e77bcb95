package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
)

func testSummary() *Summary {
	return &Summary{
		Duration:       15 * time.Minute,
		TotalQuestions: 14,
		TotalCorrect:   11,
		ConceptResults: []ConceptResult{
			{
				ConceptID:    "addition-within-20",
				ConceptName:  "Addition Within 20",
				Attempted:    6,
				Correct:      5,
				RatingBefore: 800,
				RatingAfter:  842,
				Mastery:      0.55,
			},
			{
				ConceptID:    "subtraction-within-20",
				ConceptName:  "Subtraction Within 20",
				Attempted:    3,
				Correct:      1,
				RatingBefore: 810,
				RatingAfter:  786,
				Mastery:      0.40,
			},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty summary view")
	}
	if !strings.Contains(view, "Addition Within 20") {
		t.Error("expected concept name in view")
	}
	if !strings.Contains(view, "79%") {
		t.Error("expected accuracy in view")
	}
}

func TestSummaryScreen_Accuracy(t *testing.T) {
	sum := testSummary()
	if got := sum.Accuracy(); got < 0.78 || got > 0.79 {
		t.Errorf("Accuracy = %f, want ~0.786", got)
	}

	empty := &Summary{}
	if empty.Accuracy() != 0 {
		t.Errorf("empty summary accuracy = %f, want 0", empty.Accuracy())
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (pop)")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
