package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codequiz/internal/problem"
	"github.com/abhisek/codequiz/internal/router"
	"github.com/abhisek/codequiz/internal/screen"
	"github.com/abhisek/codequiz/internal/store"
	"github.com/abhisek/codequiz/internal/ui/layout"
	"github.com/abhisek/codequiz/internal/ui/theme"
)

// Limit caps how many past quizzes are listed.
const Limit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	HintXP   int
	Err      error
}

// HistoryScreen lists finished quizzes from the journal.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionSummaryRecord
	hintXP    int
	selected  int
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{eventRepo: eventRepo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		sessions, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: Limit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		hintXP, err := repo.TotalHintXP(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Sessions: sessions, HintXP: hintXP}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.hintXP = msg.HintXP
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Pick a level to start!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, rec := range s.sessions {
		line := FormatRecord(rec)
		style := theme.Unselected
		prefix := "    "
		if i == s.selected {
			style = theme.Selected
			prefix = "  ▸ "
		}
		b.WriteString(style.Render(prefix + line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.XP.Render(fmt.Sprintf("  Total XP spent on hints: %d", s.hintXP)))
	return b.String()
}

// FormatRecord renders one finished quiz as a single line.
func FormatRecord(rec store.SessionSummaryRecord) string {
	name := rec.ProblemType
	if t, err := problem.ParseType(rec.ProblemType); err == nil {
		name = t.DisplayName()
	}
	level := rec.Level
	if level == "" {
		level = "practice"
	}
	return fmt.Sprintf("%s  %-16s %-12s %2d/%-2d  %3d%%  %d:%02d  hints −%d XP",
		rec.Timestamp.Format("Jan 02 15:04"),
		name, level,
		rec.CorrectAnswers, rec.ProblemsServed, rec.Accuracy,
		rec.DurationSecs/60, rec.DurationSecs%60,
		rec.HintXP)
}
