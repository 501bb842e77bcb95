// Package progress shows per-concept skill state across the
// curriculum.
package progress

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mora/internal/content"
	"github.com/abhisek/mora/internal/curriculum"
	"github.com/abhisek/mora/internal/elo"
	"github.com/abhisek/mora/internal/router"
	"github.com/abhisek/mora/internal/screen"
	"github.com/abhisek/mora/internal/store"
	"github.com/abhisek/mora/internal/ui/components"
	"github.com/abhisek/mora/internal/ui/layout"
	"github.com/abhisek/mora/internal/ui/theme"
)

type statesLoadedMsg struct {
	States map[string]content.SkillState
	Err    error
}

// ProgressScreen lists every concept with its rating and mastery.
type ProgressScreen struct {
	graph     *curriculum.Graph
	store     *store.Store
	learnerID string

	states       map[string]content.SkillState
	cursor       int
	scrollOffset int
	errMsg       string
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates a progress screen for the given learner.
func New(graph *curriculum.Graph, st *store.Store, learnerID string) *ProgressScreen {
	return &ProgressScreen{graph: graph, store: st, learnerID: learnerID}
}

func (s *ProgressScreen) Init() tea.Cmd {
	return func() tea.Msg {
		states, err := s.store.Skills().All(context.Background(), s.learnerID)
		return statesLoadedMsg{States: states, Err: err}
	}
}

func (s *ProgressScreen) Title() string {
	return "Progress"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statesLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.states = msg.States
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < s.graph.Len()-1 {
				s.cursor++
			}
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n  Error: %s", s.errMsg))
	}
	if s.states == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading progress...")
	}

	concepts := s.graph.All()
	s.adjustScroll(height)

	var lines []string
	for i, c := range concepts {
		if i < s.scrollOffset {
			continue
		}
		if len(lines) >= height {
			break
		}
		lines = append(lines, s.renderConceptRow(c, i == s.cursor, width))
	}
	return strings.Join(lines, "\n")
}

func (s *ProgressScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *ProgressScreen) renderConceptRow(c curriculum.Concept, selected bool, width int) string {
	state, attempted := s.states[c.ID]

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	nameWidth := 28
	name := c.Name
	if len(name) > nameWidth {
		name = name[:nameWidth-1] + "…"
	}

	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		nameStyle = nameStyle.Foreground(theme.Primary).Bold(true)
	} else if attempted && elo.IsMastered(state.Mastery, c.Threshold()) {
		nameStyle = nameStyle.Foreground(theme.Success)
	} else if !attempted {
		nameStyle = nameStyle.Foreground(theme.TextDim)
	}

	var detail string
	if attempted {
		bar := components.NewProgressBar("", state.Mastery, true, 26)
		detail = fmt.Sprintf("%s  %s",
			bar.View(),
			lipgloss.NewStyle().Foreground(theme.TextDim).
				Render(fmt.Sprintf("rating %.0f  %d/%d",
					state.Rating, state.CorrectAttempts, state.TotalAttempts)))
	} else {
		detail = lipgloss.NewStyle().Foreground(theme.TextDim).Render("not started")
	}

	return fmt.Sprintf("  %s%s  %s",
		cursor,
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		detail)
}
