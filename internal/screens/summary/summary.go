package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codequiz/internal/problem"
	"github.com/abhisek/codequiz/internal/progression"
	"github.com/abhisek/codequiz/internal/router"
	"github.com/abhisek/codequiz/internal/screen"
	"github.com/abhisek/codequiz/internal/session"
	"github.com/abhisek/codequiz/internal/ui/layout"
	"github.com/abhisek/codequiz/internal/ui/theme"
)

// Missed is one incorrectly answered problem.
type Missed struct {
	Prompt        string
	YourAnswer    string
	CorrectAnswer string
}

// Result is everything the summary screen shows about a finished quiz.
type Result struct {
	Type     problem.Type
	Stats    session.Stats
	Duration time.Duration

	XPEarned   int
	HintXP     int
	XPBalance  int
	HintsShown int

	// LevelName is empty for free play.
	LevelName string
	Attempt   *progression.AttemptResult
	// UnlockedNames are the display names of newly unlocked levels.
	UnlockedNames []string
	// AttemptErr explains why the attempt could not be recorded.
	AttemptErr string

	Missed []Missed
}

// SummaryScreen displays the result of a finished quiz.
type SummaryScreen struct {
	result Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result Result) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func center(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	var b strings.Builder

	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "Quiz complete!"))
	b.WriteString("\n")
	sub := r.Type.DisplayName()
	if r.LevelName != "" {
		sub = r.LevelName + " · " + sub
	}
	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.TextDim), sub))
	b.WriteString("\n\n")

	mins := int(r.Duration.Minutes())
	secs := int(r.Duration.Seconds()) % 60
	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Duration: %d:%02d    Avg per problem: %.1fs",
			mins, secs, r.Stats.AverageTimePerProblem.Seconds())))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Answered: %d        Correct: %d        Accuracy: %d%%",
		r.Stats.TotalAnswers, r.Stats.CorrectAnswers, r.Stats.Accuracy)
	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.Text), statsLine))
	b.WriteString("\n\n")

	xpLine := fmt.Sprintf("XP earned: +%d    Hints: %d (−%d XP)    Balance: %d XP",
		r.XPEarned, r.HintsShown, r.HintXP, r.XPBalance)
	b.WriteString(center(width, theme.XP, xpLine))
	b.WriteString("\n\n")

	if line, style := s.levelLine(); line != "" {
		b.WriteString(center(width, style, line))
		b.WriteString("\n\n")
	}

	if len(r.Missed) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 60)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Review")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, m := range r.Missed {
			line := fmt.Sprintf("%s\n  you: %s    answer: %s", m.Prompt, m.YourAnswer, m.CorrectAnswer)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// levelLine describes the level outcome.
func (s *SummaryScreen) levelLine() (string, lipgloss.Style) {
	r := s.result
	switch {
	case r.LevelName == "":
		return "", lipgloss.Style{}
	case r.AttemptErr != "":
		return "Attempt not recorded: " + r.AttemptErr, theme.Incorrect
	case r.Attempt == nil:
		return "", lipgloss.Style{}
	case r.Attempt.NewlyDone && len(r.UnlockedNames) > 0:
		return fmt.Sprintf("%s cleared! Unlocked: %s", r.LevelName, strings.Join(r.UnlockedNames, ", ")), theme.Correct
	case r.Attempt.NewlyDone:
		return fmt.Sprintf("%s cleared!", r.LevelName), theme.Correct
	case r.Attempt.Passed:
		return fmt.Sprintf("%s passed again", r.LevelName), theme.Correct
	}

	line := fmt.Sprintf("%s not cleared yet", r.LevelName)
	if r.Attempt.AttemptsLeft < progression.Unlimited {
		line += fmt.Sprintf(" (%d attempts left)", r.Attempt.AttemptsLeft)
	}
	return line, theme.Hint
}
