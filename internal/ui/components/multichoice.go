package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codequiz/internal/ui/theme"
)

// MultiChoice is an option selector used for multiple-choice and O/X
// problems. Each option can be picked with arrows + Enter or directly
// with its shortcut key.
type MultiChoice struct {
	Options []string
	// Shortcuts holds one key per option. Defaults to "1", "2", ...
	Shortcuts    []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewMultiChoice creates a new selector. correctIndex is revealed after
// submission; pass -1 to reveal nothing.
func NewMultiChoice(options []string, correctIndex int) MultiChoice {
	shortcuts := make([]string, len(options))
	for i := range options {
		shortcuts[i] = strconv.Itoa(i + 1)
	}
	return MultiChoice{
		Options:      options,
		Shortcuts:    shortcuts,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	default:
		for i, sc := range m.Shortcuts {
			if sc == key || (len(key) == 1 && sc == upper(key)) {
				m.Selected = i
				m.Submitted = true
				m.ChosenIndex = i
				break
			}
		}
	}

	return m, nil
}

func upper(s string) string {
	if s >= "a" && s <= "z" {
		return string(s[0] - 'a' + 'A')
	}
	return s
}

// View renders the options.
func (m MultiChoice) View() string {
	var s string
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, m.Shortcuts[i], opt)

		if m.Submitted {
			switch i {
			case m.CorrectIndex:
				s += theme.Correct.Render(line) + "\n"
			case m.ChosenIndex:
				s += theme.Incorrect.Render(line) + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
		} else {
			if i == m.Selected {
				s += theme.Selected.Render(line) + "\n"
			} else {
				s += theme.Unselected.Render(line) + "\n"
			}
		}
	}

	return s
}

// Chosen returns the submitted option text.
func (m MultiChoice) Chosen() (string, bool) {
	if !m.Submitted || m.ChosenIndex < 0 || m.ChosenIndex >= len(m.Options) {
		return "", false
	}
	return m.Options[m.ChosenIndex], true
}
