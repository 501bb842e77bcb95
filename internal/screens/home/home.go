// Package home is the entry screen with the main menu.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mora/internal/curriculum"
	"github.com/abhisek/mora/internal/elo"
	"github.com/abhisek/mora/internal/grade"
	"github.com/abhisek/mora/internal/question"
	"github.com/abhisek/mora/internal/router"
	"github.com/abhisek/mora/internal/screen"
	"github.com/abhisek/mora/internal/screens/practice"
	"github.com/abhisek/mora/internal/screens/progress"
	"github.com/abhisek/mora/internal/store"
	"github.com/abhisek/mora/internal/ui/components"
	"github.com/abhisek/mora/internal/ui/theme"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu          components.Menu
	masteredCount int
	totalAttempts int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen wired to the practice and progress
// screens.
func New(qs *question.Service, proc *grade.Processor, graph *curriculum.Graph, st *store.Store, learnerID string) *HomeScreen {
	var masteredCount, totalAttempts int
	if states, err := st.Skills().All(context.Background(), learnerID); err == nil {
		for _, c := range graph.All() {
			s, ok := states[c.ID]
			if !ok {
				continue
			}
			totalAttempts += s.TotalAttempts
			if elo.IsMastered(s.Mastery, c.Threshold()) {
				masteredCount++
			}
		}
	}

	items := []components.MenuItem{
		{Label: "PRACTICE", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: practice.New(qs, proc, learnerID)}
			}
		}},
		{Label: "PROGRESS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: progress.New(graph, st, learnerID)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:          components.NewMenu(items),
		masteredCount: masteredCount,
		totalAttempts: totalAttempts,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(renderBanner(width, height))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("adaptive math practice"))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Mastered: %d        Attempts: %d",
		h.masteredCount, h.totalAttempts)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(stats))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	return b.String()
}

func (h *HomeScreen) Title() string {
	return "Home"
}
