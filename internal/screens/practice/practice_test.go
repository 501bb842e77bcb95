package practice

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mora/internal/content"
	"github.com/abhisek/mora/internal/curriculum"
	"github.com/abhisek/mora/internal/grade"
	"github.com/abhisek/mora/internal/question"
	"github.com/abhisek/mora/internal/router"
	"github.com/abhisek/mora/internal/screens/summary"
)

func testServed(qType content.QuestionType) *question.Served {
	q := content.Question{
		ID:        "q1",
		ConceptID: "addition-within-20",
		Text:      "What is 3 + 4?",
		Type:      qType,
		Answer:    "7",
	}
	if qType == content.TypeMultipleChoice {
		q.Answer = "B) 7"
		q.Options = []string{"A) 6", "B) 7", "C) 8", "D) 9"}
	}
	return &question.Served{
		Question: q,
		Concept:  curriculum.Concept{ID: "addition-within-20", Name: "Addition Within 20"},
	}
}

func gradedMsg(correct bool) answerGradedMsg {
	return answerGradedMsg{Outcome: grade.Outcome{
		Judgment:     grade.Judgment{Correct: correct},
		RatingBefore: 800,
		Rating:       816,
		Mastery:      0.42,
	}}
}

func TestQuestionReadyEntersAsking(t *testing.T) {
	p := New(nil, nil, "default")

	_, _ = p.Update(questionReadyMsg{Served: testServed(content.TypeShortAnswer)})

	if p.phase != phaseAsking {
		t.Errorf("phase = %d, want asking", p.phase)
	}
	if p.mcActive {
		t.Error("short answer question should not activate choice mode")
	}
	if p.displayText != "What is 3 + 4?" {
		t.Errorf("displayText = %q", p.displayText)
	}
}

func TestQuestionReadyMultipleChoice(t *testing.T) {
	p := New(nil, nil, "default")

	_, _ = p.Update(questionReadyMsg{Served: testServed(content.TypeMultipleChoice)})

	if !p.mcActive {
		t.Error("expected choice mode for multiple choice question")
	}
	if p.mcSelected != 0 {
		t.Errorf("mcSelected = %d, want 0", p.mcSelected)
	}
}

func TestQuestionReadyStripsArtifactMarker(t *testing.T) {
	p := New(nil, nil, "default")
	served := testServed(content.TypeShortAnswer)
	served.Question.Text = "What time is it? [3:00]"
	served.Question.Artifact = "<svg></svg>"

	_, _ = p.Update(questionReadyMsg{Served: served})

	if p.displayText != "What time is it?" {
		t.Errorf("displayText = %q, want marker stripped", p.displayText)
	}
}

func TestAnswerGradedTallies(t *testing.T) {
	p := New(nil, nil, "default")
	_, _ = p.Update(questionReadyMsg{Served: testServed(content.TypeShortAnswer)})

	_, _ = p.Update(gradedMsg(true))

	if p.phase != phaseFeedback {
		t.Errorf("phase = %d, want feedback", p.phase)
	}
	if p.answered != 1 || p.correct != 1 {
		t.Errorf("answered/correct = %d/%d, want 1/1", p.answered, p.correct)
	}
	tally := p.tallies["addition-within-20"]
	if tally == nil {
		t.Fatal("expected tally for the concept")
	}
	if tally.ratingBefore != 800 || tally.ratingAfter != 816 {
		t.Errorf("rating tally = %f -> %f, want 800 -> 816", tally.ratingBefore, tally.ratingAfter)
	}
}

func TestRatingBeforeFixedOnFirstAttempt(t *testing.T) {
	p := New(nil, nil, "default")
	_, _ = p.Update(questionReadyMsg{Served: testServed(content.TypeShortAnswer)})
	_, _ = p.Update(gradedMsg(true))

	_, _ = p.Update(questionReadyMsg{Served: testServed(content.TypeShortAnswer)})
	second := gradedMsg(false)
	second.Outcome.RatingBefore = 816
	second.Outcome.Rating = 790
	_, _ = p.Update(second)

	tally := p.tallies["addition-within-20"]
	if tally.ratingBefore != 800 {
		t.Errorf("ratingBefore = %f, want the session-start 800", tally.ratingBefore)
	}
	if tally.ratingAfter != 790 {
		t.Errorf("ratingAfter = %f, want 790", tally.ratingAfter)
	}
}

func TestSessionDoneReplacesWithSummary(t *testing.T) {
	p := New(nil, nil, "default")
	_, _ = p.Update(questionReadyMsg{Served: testServed(content.TypeShortAnswer)})
	_, _ = p.Update(gradedMsg(true))

	_, cmd := p.Update(sessionDoneMsg{})
	if cmd == nil {
		t.Fatal("expected a command on session done")
	}
	msg := cmd()
	rep, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("message = %T, want ReplaceScreenMsg", msg)
	}
	if _, ok := rep.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("replacement screen = %T, want summary", rep.Screen)
	}
}

func TestEscOpensQuitConfirm(t *testing.T) {
	p := New(nil, nil, "default")
	_, _ = p.Update(questionReadyMsg{Served: testServed(content.TypeShortAnswer)})

	_, _ = p.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if p.phase != phaseQuitConfirm {
		t.Errorf("phase = %d, want quit confirm", p.phase)
	}

	// n resumes the question.
	_, _ = p.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	if p.phase != phaseAsking {
		t.Errorf("phase = %d, want asking after declining", p.phase)
	}
}

func TestQuitConfirmEndsSession(t *testing.T) {
	p := New(nil, nil, "default")
	_, _ = p.Update(questionReadyMsg{Served: testServed(content.TypeShortAnswer)})
	_, _ = p.Update(tea.KeyPressMsg{Code: tea.KeyEscape})

	_, cmd := p.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if cmd == nil {
		t.Fatal("expected a command on confirm")
	}
	if _, ok := cmd().(sessionDoneMsg); !ok {
		t.Error("expected sessionDoneMsg")
	}
}

func TestChoiceNavigation(t *testing.T) {
	p := New(nil, nil, "default")
	_, _ = p.Update(questionReadyMsg{Served: testServed(content.TypeMultipleChoice)})

	_, _ = p.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if p.mcSelected != 1 {
		t.Errorf("mcSelected = %d, want 1 after down", p.mcSelected)
	}
	_, _ = p.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if p.mcSelected != 0 {
		t.Errorf("mcSelected = %d, want 0 after up", p.mcSelected)
	}
}

func TestViewRendersQuestion(t *testing.T) {
	p := New(nil, nil, "default")
	_, _ = p.Update(questionReadyMsg{Served: testServed(content.TypeMultipleChoice)})

	view := p.View(80, 24)
	if !strings.Contains(view, "What is 3 + 4?") {
		t.Error("expected question text in view")
	}
	if !strings.Contains(view, "B) 7") {
		t.Error("expected options in view")
	}
}

func TestViewRendersFeedback(t *testing.T) {
	p := New(nil, nil, "default")
	_, _ = p.Update(questionReadyMsg{Served: testServed(content.TypeShortAnswer)})
	_, _ = p.Update(gradedMsg(true))

	view := p.View(80, 24)
	if !strings.Contains(view, "Correct") {
		t.Error("expected correctness feedback in view")
	}
}
