package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codequiz/internal/router"
	"github.com/abhisek/codequiz/internal/screen"
	"github.com/abhisek/codequiz/internal/screens/home"
	"github.com/abhisek/codequiz/internal/screens/quiz"
	"github.com/abhisek/codequiz/internal/ui/layout"
)

// Options configures the application.
type Options struct {
	Deps quiz.Deps

	// Initial is shown above the home screen at startup, e.g. a quiz
	// started from the command line.
	Initial screen.Screen
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   quiz.Deps
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	var above []screen.Screen
	if opts.Initial != nil {
		above = append(above, opts.Initial)
	}
	return AppModel{
		router: router.New(home.New(opts.Deps), above...),
		deps:   opts.Deps,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if g, ok := m.router.Active().(screen.EscapeGuard); ok && g.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.balance(), m.levelName(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) balance() int {
	if m.deps.Wallet == nil {
		return 0
	}
	return m.deps.Wallet.Balance()
}

func (m AppModel) levelName() string {
	if m.deps.Tracker == nil {
		return ""
	}
	id := m.deps.Tracker.State().CurrentLevel
	if lvl, ok := m.deps.Tracker.Gate().Catalog().Level(id); ok {
		return lvl.Name
	}
	return ""
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	return err
}
