package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codequiz/internal/progression"
	"github.com/abhisek/codequiz/internal/router"
	"github.com/abhisek/codequiz/internal/screen"
	"github.com/abhisek/codequiz/internal/screens/history"
	"github.com/abhisek/codequiz/internal/screens/quiz"
	"github.com/abhisek/codequiz/internal/ui/components"
	"github.com/abhisek/codequiz/internal/ui/layout"
	"github.com/abhisek/codequiz/internal/ui/theme"
)

// HomeScreen lists the levels with their gate status.
type HomeScreen struct {
	deps     quiz.Deps
	menu     components.Menu
	statuses []progression.LevelStatus
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps quiz.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.refresh()
	return h
}

// refresh re-reads the gate so unlocks from the last quiz show up.
func (h *HomeScreen) refresh() {
	tracker := h.deps.Tracker
	h.statuses = tracker.Gate().Overview(tracker.State())

	items := make([]components.MenuItem, 0, len(h.statuses)+2)
	for _, st := range h.statuses {
		lvl := st.Level
		items = append(items, components.MenuItem{
			Label:    levelLabel(st),
			Detail:   levelDetail(st),
			Disabled: !st.CanEnter,
			Action: func() tea.Cmd {
				if !tracker.Select(lvl.ID) {
					return nil
				}
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: quiz.NewForLevel(h.deps, lvl)}
				}
			},
		})
	}
	if h.deps.Events != nil {
		items = append(items, components.MenuItem{Label: "History", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(h.deps.Events)}
			}
		}})
	}
	items = append(items, components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
		return tea.Quit
	}})

	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) && !items[selected].Disabled {
		h.menu.Selected = selected
	}
}

func levelLabel(st progression.LevelStatus) string {
	mark := "○"
	switch {
	case st.Completed:
		mark = "✓"
	case !st.Unlocked:
		mark = "🔒"
	}
	return fmt.Sprintf("%s %-13s %s", mark, st.Level.Name, st.Level.ProblemType.DisplayName())
}

func levelDetail(st progression.LevelStatus) string {
	if !st.Unlocked {
		return st.Reason
	}
	var parts []string
	if st.CompletionRate > 0 {
		parts = append(parts, fmt.Sprintf("%d%% complete", st.CompletionRate))
	}
	if st.Level.MaxAttempts < progression.Unlimited {
		parts = append(parts, fmt.Sprintf("%d/%d attempts left", st.AttemptsRemaining, st.Level.MaxAttempts))
	}
	return strings.Join(parts, " · ")
}

func (h *HomeScreen) subtitle() string {
	pass := progression.DefaultPassAccuracy
	if h.deps.Tracker != nil {
		pass = h.deps.Tracker.PassAccuracy()
	}
	return fmt.Sprintf("Clear a level with %d%% or better to unlock the next", pass)
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes level status when a quiz returns to home.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
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
	b.WriteString(theme.Title.Width(width).Render("C O D E Q U I Z"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(h.subtitle()))
	b.WriteString("\n\n")

	menu := theme.Card.Render(strings.TrimRight(h.menu.View(), "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))
	return b.String()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start level"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
