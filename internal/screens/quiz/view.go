package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codequiz/internal/problem"
	"github.com/abhisek/codequiz/internal/ui/components"
	"github.com/abhisek/codequiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	if s.showingFeedback {
		return s.renderFeedback(width)
	}
	return s.renderProblem(width)
}

// renderProblem renders the active problem with its input and hints.
func (s *QuizScreen) renderProblem(width int) string {
	p := s.problem
	if p.ID == "" {
		return renderLoading(width)
	}

	var b strings.Builder

	progress := s.deps.Sessions.Progress()
	stats, _ := s.deps.Sessions.Stats()
	mins := int(s.elapsed.Minutes())
	secs := int(s.elapsed.Seconds()) % 60

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %s", p.Type.DisplayName(), p.Category))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d  %d:%02d",
			progress.Current, progress.Total,
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			stats.CorrectAnswers, mins, secs))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n  ")
	b.WriteString(components.NewProgressBar("", progress.Percentage, false, max(width-4, 4)).View())
	b.WriteString("\n\n")

	promptWidth := min(width-8, 76)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(promptWidth).Foreground(theme.Text).Bold(true).Render(p.Prompt)))
	b.WriteString("\n\n")

	if code := renderCode(p); code != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, code))
		b.WriteString("\n\n")
	}

	if s.isTextType() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Answer: "+s.input.View()))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
	}
	b.WriteString("\n")

	if panel := s.renderHints(promptWidth); panel != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, panel))
	}

	return b.String()
}

// renderCode renders a numbered code snippet.
func renderCode(p problem.Problem) string {
	lines := p.CodeLines()
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.LineNumber.Render(fmt.Sprintf("%3d ", i+1)))
		b.WriteString(line)
	}
	return theme.CodeBlock.Render(b.String())
}

// renderHints renders the revealed hint steps when the panel is visible.
func (s *QuizScreen) renderHints(width int) string {
	st := s.hints.State()
	if !st.Visible {
		return ""
	}

	var b strings.Builder
	texts := s.problem.HintsUpTo(st.CurrentStep)
	if len(texts) == 0 {
		b.WriteString("No hints for this problem.")
	}
	for i, text := range texts {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Hint %d/%d: %s", i+1, s.hints.Config().MaxSteps, text)
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Spent on hints: %d XP", st.TotalXPDeducted)))

	return theme.HintBox.Width(width).Render(b.String())
}

// renderFeedback renders the result of the last answer.
func (s *QuizScreen) renderFeedback(width int) string {
	p := s.problem
	var b strings.Builder
	b.WriteString("\n\n")

	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.lastCorrect {
		b.WriteString(centered.Foreground(theme.Success).Bold(true).Render("Correct!"))
	} else {
		b.WriteString(centered.Foreground(theme.Error).Bold(true).Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(centered.Foreground(theme.TextDim).
			Render(fmt.Sprintf("Your answer: %s    Correct answer: %s", s.lastAnswer, displayAnswer(p))))
	}
	b.WriteString("\n\n")

	if p.Explanation != "" {
		exp := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Render(p.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	}

	next := "Press any key to continue..."
	if s.lastWasFinal {
		next = "That was the last one. Press any key for your results..."
	}
	b.WriteString(centered.Foreground(theme.TextDim).Render(next))
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered.Foreground(theme.Text).Bold(true).Render("Leave this quiz?"))
	b.WriteString("\n")
	b.WriteString(centered.Foreground(theme.TextDim).Render("Unfinished quizzes do not count as a level attempt."))
	b.WriteString("\n\n")
	b.WriteString(centered.Foreground(theme.Success).Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(centered.Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}

// renderLoading renders the state before the first problem is ready.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Preparing your quiz...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
