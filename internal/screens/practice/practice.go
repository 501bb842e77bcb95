// Package practice implements the interactive question-answer loop.
package practice

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/mora/internal/content"
	"github.com/abhisek/mora/internal/grade"
	"github.com/abhisek/mora/internal/question"
	"github.com/abhisek/mora/internal/router"
	"github.com/abhisek/mora/internal/screen"
	"github.com/abhisek/mora/internal/screens/summary"
	"github.com/abhisek/mora/internal/ui/components"
	"github.com/abhisek/mora/internal/ui/layout"
)

// sessionLength is the number of questions per session.
const sessionLength = 10

// answerMarkerRe strips the bracketed answer key specialty generators
// embed in the prompt for dedup purposes.
var answerMarkerRe = regexp.MustCompile(`\s*\[[^\]]*\]\s*$`)

type phase int

const (
	phaseLoading phase = iota
	phaseAsking
	phaseFeedback
	phaseQuitConfirm
)

type conceptTally struct {
	name         string
	attempted    int
	correct      int
	ratingBefore float64
	ratingAfter  float64
	mastery      float64
	ratingSet    bool
}

// PracticeScreen runs one practice session.
type PracticeScreen struct {
	questions *question.Service
	processor *grade.Processor
	learnerID string
	sessionID string

	phase         phase
	served        *question.Served
	outcome       *grade.Outcome
	artifactPath  string
	displayText   string
	errMsg        string
	lastConceptID string
	lastCorrect   bool

	answered  int
	correct   int
	startTime time.Time
	askedAt   time.Time

	input      components.TextInput
	mcActive   bool
	mcSelected int

	tallies map[string]*conceptTally
	order   []string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates a practice screen for the given learner.
func New(qs *question.Service, proc *grade.Processor, learnerID string) *PracticeScreen {
	return &PracticeScreen{
		questions: qs,
		processor: proc,
		learnerID: learnerID,
		sessionID: uuid.NewString(),
		input:     components.NewTextInput("Type your answer...", false, 40),
		tallies:   make(map[string]*conceptTally),
	}
}

func (p *PracticeScreen) Init() tea.Cmd {
	p.startTime = time.Now()
	return tea.Batch(p.fetchQuestion(), p.input.Init())
}

func (p *PracticeScreen) Title() string {
	return "Practice"
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	switch p.phase {
	case phaseQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionReadyMsg:
		return p.handleQuestionReady(msg)
	case answerGradedMsg:
		return p.handleAnswerGraded(msg)
	case precacheDoneMsg:
		return p, nil
	case sessionDoneMsg:
		return p.handleSessionDone()
	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	if p.phase == phaseAsking && !p.mcActive {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PracticeScreen) handleQuestionReady(msg questionReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		p.errMsg = msg.Err.Error()
		return p, nil
	}

	p.served = msg.Served
	p.outcome = nil
	p.askedAt = time.Now()
	p.phase = phaseAsking

	q := msg.Served.Question
	p.displayText = q.Text
	p.artifactPath = ""
	if q.Artifact != "" {
		p.displayText = answerMarkerRe.ReplaceAllString(q.Text, "")
		p.artifactPath = p.saveArtifact(q)
	}

	if q.Type == content.TypeMultipleChoice && len(q.Options) > 0 {
		p.mcActive = true
		p.mcSelected = 0
		return p, nil
	}
	p.mcActive = false
	p.input = components.NewTextInput("Type your answer...", false, 40)
	return p, p.input.Init()
}

func (p *PracticeScreen) handleAnswerGraded(msg answerGradedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		p.errMsg = msg.Err.Error()
		return p, nil
	}

	out := msg.Outcome
	p.outcome = &out
	p.answered++
	if out.Correct {
		p.correct++
	}

	concept := p.served.Concept
	t, ok := p.tallies[concept.ID]
	if !ok {
		t = &conceptTally{name: concept.Name}
		p.tallies[concept.ID] = t
		p.order = append(p.order, concept.ID)
	}
	if !t.ratingSet {
		t.ratingBefore = out.RatingBefore
		t.ratingSet = true
	}
	t.attempted++
	if out.Correct {
		t.correct++
	}
	t.ratingAfter = out.Rating
	t.mastery = out.Mastery

	p.lastConceptID = concept.ID
	p.lastCorrect = out.Correct
	p.phase = phaseFeedback

	if p.answered >= sessionLength {
		return p, nil
	}
	// Warm the next question while the learner reads feedback.
	return p, p.precacheNext()
}

func (p *PracticeScreen) handleSessionDone() (screen.Screen, tea.Cmd) {
	sum := &summary.Summary{
		Duration:       time.Since(p.startTime),
		TotalQuestions: p.answered,
		TotalCorrect:   p.correct,
	}
	for _, id := range p.order {
		t := p.tallies[id]
		sum.ConceptResults = append(sum.ConceptResults, summary.ConceptResult{
			ConceptID:    id,
			ConceptName:  t.name,
			Attempted:    t.attempted,
			Correct:      t.correct,
			RatingBefore: t.ratingBefore,
			RatingAfter:  t.ratingAfter,
			Mastery:      t.mastery,
		})
	}
	// Swap in the summary so popping it returns to the menu.
	return p, func() tea.Msg { return router.ReplaceScreenMsg{Screen: summary.New(sum)} }
}

func (p *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if p.errMsg != "" {
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch p.phase {
	case phaseQuitConfirm:
		switch key {
		case "y", "Y":
			return p, func() tea.Msg { return sessionDoneMsg{} }
		case "n", "N", "esc":
			p.phase = phaseAsking
		}
		return p, nil

	case phaseFeedback:
		if p.answered >= sessionLength {
			return p, func() tea.Msg { return sessionDoneMsg{} }
		}
		p.phase = phaseLoading
		return p, p.fetchQuestion()

	case phaseAsking:
		switch key {
		case "esc":
			p.phase = phaseQuitConfirm
			return p, nil
		case "enter":
			return p.submitAnswer()
		}

		if p.mcActive {
			options := p.served.Question.Options
			switch key {
			case "1", "2", "3", "4":
				idx := int(key[0] - '1')
				if idx < len(options) {
					p.mcSelected = idx
					return p.submitAnswer()
				}
			case "up", "k":
				if p.mcSelected > 0 {
					p.mcSelected--
				}
			case "down", "j":
				if p.mcSelected < len(options)-1 {
					p.mcSelected++
				}
			}
			return p, nil
		}

		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}

	return p, nil
}

func (p *PracticeScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	if p.served == nil {
		return p, nil
	}

	var answer string
	if p.mcActive {
		options := p.served.Question.Options
		if p.mcSelected >= 0 && p.mcSelected < len(options) {
			answer = options[p.mcSelected]
		}
	} else {
		answer = p.input.Value()
		if answer == "" {
			return p, nil
		}
	}

	sub := grade.Submission{
		LearnerID:    p.learnerID,
		SessionID:    p.sessionID,
		Question:     p.served.Question,
		Answer:       answer,
		ResponseTime: time.Since(p.askedAt),
	}
	return p, func() tea.Msg {
		out, err := p.processor.Process(context.Background(), sub)
		return answerGradedMsg{Outcome: out, Err: err}
	}
}

func (p *PracticeScreen) fetchQuestion() tea.Cmd {
	learner, session := p.learnerID, p.sessionID
	conceptID, lastCorrect := p.lastConceptID, p.lastCorrect
	return func() tea.Msg {
		served, err := p.questions.Next(context.Background(), learner, session, conceptID, lastCorrect)
		return questionReadyMsg{Served: served, Err: err}
	}
}

func (p *PracticeScreen) precacheNext() tea.Cmd {
	learner, session := p.learnerID, p.sessionID
	conceptID, lastCorrect := p.lastConceptID, p.lastCorrect
	return func() tea.Msg {
		_ = p.questions.PrecacheNext(context.Background(), learner, session, conceptID, lastCorrect)
		return precacheDoneMsg{}
	}
}

// saveArtifact writes the question's embedded SVG to a temp file and
// returns its path, or "" on failure.
func (p *PracticeScreen) saveArtifact(q content.Question) string {
	path := filepath.Join(os.TempDir(), "mora-figure.svg")
	if err := os.WriteFile(path, []byte(q.Artifact), 0o644); err != nil {
		return ""
	}
	return path
}
