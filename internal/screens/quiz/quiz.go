package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/codequiz/internal/hint"
	"github.com/abhisek/codequiz/internal/problem"
	"github.com/abhisek/codequiz/internal/progression"
	"github.com/abhisek/codequiz/internal/router"
	"github.com/abhisek/codequiz/internal/screen"
	"github.com/abhisek/codequiz/internal/screens/summary"
	"github.com/abhisek/codequiz/internal/store"
	"github.com/abhisek/codequiz/internal/ui/components"
	"github.com/abhisek/codequiz/internal/ui/layout"
)

// QuizScreen drives one quiz session for any problem type.
type QuizScreen struct {
	deps  Deps
	ptype problem.Type
	count int
	level *progression.Level

	hints  *hint.Engine
	choice components.MultiChoice
	input  components.TextInput

	sessionID    string
	problem      problem.Problem
	hintsShown   int
	missed       []summary.Missed
	elapsed      time.Duration
	errMsg       string
	lastAnswer   string
	lastCorrect  bool
	lastWasFinal bool
	feedbackSeq  int
	finished     bool

	showingFeedback    bool
	showingQuitConfirm bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscapeGuard = (*QuizScreen)(nil)

// New creates a free-play quiz of count problems of type t.
func New(deps Deps, t problem.Type, count int) *QuizScreen {
	return &QuizScreen{
		deps:  deps,
		ptype: t,
		count: count,
		hints: hint.NewEngine(deps.hintConfig(t)),
	}
}

// NewForLevel creates a quiz shaped by a progression level. Finishing it
// records an attempt with the tracker.
func NewForLevel(deps Deps, lvl progression.Level) *QuizScreen {
	s := New(deps, lvl.ProblemType, lvl.ProblemCount)
	s.level = &lvl
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	sess, err := s.deps.Sessions.CreateSession(s.ptype, s.count)
	if err != nil {
		s.errMsg = err.Error()
		s.deps.logger().Warn("create session failed",
			zap.String("type", string(s.ptype)), zap.Error(err))
		return nil
	}

	s.sessionID = sess.ID
	if s.deps.Wallet != nil {
		s.deps.Wallet.ResetSession()
	}
	s.deps.journal(store.ActionStart, func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:      sess.ID,
			Action:         store.ActionStart,
			ProblemType:    string(s.ptype),
			Level:          s.levelID(),
			ProblemsServed: sess.Total(),
		})
	})

	return tea.Batch(s.setupProblem(), tickCmd())
}

func (s *QuizScreen) Title() string {
	if s.level != nil {
		return s.level.Name
	}
	return s.ptype.DisplayName()
}

// HandlesEscape keeps Esc inside the quiz so it can ask for confirmation.
func (s *QuizScreen) HandlesEscape() bool {
	return s.errMsg == "" && !s.finished
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.showingFeedback {
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}

	var hints []layout.KeyHint
	if s.hasHints() {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: s.hintAction()})
	}
	if s.hints.State().Visible {
		hints = append(hints, layout.KeyHint{Key: "Shift+Tab", Description: "Hide hint"})
	}
	switch s.ptype {
	case problem.TypeOX:
		hints = append(hints, layout.KeyHint{Key: "O/X", Description: "Answer"})
	case problem.TypeMultipleChoice:
		hints = append(hints, layout.KeyHint{Key: "1-4", Description: "Answer"})
	default:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: s.submitLabel()})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *QuizScreen) hintAction() string {
	st := s.hints.State()
	switch {
	case !st.Visible && st.UsedSteps > 0:
		return "Show hint"
	case !st.Visible:
		return fmt.Sprintf("Hint (−%d XP)", s.hints.Deduct(1))
	case s.hints.IsLastStep():
		return "No more hints"
	default:
		return fmt.Sprintf("Next hint (−%d XP)", s.hints.Deduct(st.CurrentStep+1))
	}
}

// submitLabel reflects whether the in-flight answer ends the session.
func (s *QuizScreen) submitLabel() string {
	if s.deps.Sessions.IsCurrentProblemLast() {
		return "Finish"
	}
	return "Submit"
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if s.finished || s.errMsg != "" {
			return s, nil
		}
		s.elapsed = s.deps.Sessions.Elapsed()
		return s, tickCmd()

	case feedbackDoneMsg:
		if !s.showingFeedback || msg.seq != s.feedbackSeq {
			return s, nil
		}
		return s.advance()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.isTextType() && !s.showingFeedback && !s.showingQuitConfirm {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.finished {
		return s, nil
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			return s.abandon()
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if s.showingFeedback {
		return s.advance()
	}

	switch key {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil
	case "tab":
		s.revealHint()
		return s, nil
	case "shift+tab":
		s.hints.Hide()
		return s, nil
	}

	if s.isTextType() {
		if key == "enter" {
			answer := strings.TrimSpace(s.input.Value())
			if answer == "" {
				return s, nil
			}
			return s.submit(answer)
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	s.choice, _ = s.choice.Update(msg)
	if s.choice.Submitted {
		return s.submit(s.choiceAnswer())
	}
	return s, nil
}

// revealHint shows the hint panel or advances it, charging the wallet for
// every newly revealed step.
func (s *QuizScreen) revealHint() {
	if !s.hasHints() {
		return
	}
	var charged bool
	if !s.hints.State().Visible {
		charged = s.hints.Show()
	} else {
		charged = s.hints.Next()
	}
	if !charged {
		return
	}

	step := s.hints.State().CurrentStep
	cost := s.hints.Deduct(step)
	s.hintsShown++
	if s.deps.Wallet != nil {
		s.deps.Wallet.Spend(cost)
	}
	if s.deps.Hints != nil {
		s.deps.Hints.HintCharged(s.ptype, cost)
	}
	s.deps.journal("hint", func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendHintEvent(ctx, store.HintEventData{
			SessionID:   s.sessionID,
			ProblemID:   s.problem.ID,
			ProblemType: string(s.ptype),
			Step:        step,
			XPDeducted:  cost,
		})
	})
}

// submit checks and records an answer for the current problem.
func (s *QuizScreen) submit(answer string) (screen.Screen, tea.Cmd) {
	// Must be read before SubmitAnswer: it decides whether this answer
	// finishes the quiz.
	s.lastWasFinal = s.deps.Sessions.IsCurrentProblemLast()

	correct := s.problem.Check(answer)
	if !s.deps.Sessions.SubmitAnswer(answer, correct) {
		return s, nil
	}
	s.lastAnswer = answer
	s.lastCorrect = correct

	if correct {
		if s.deps.Wallet != nil {
			s.deps.Wallet.AwardCorrect()
		}
	} else {
		s.missed = append(s.missed, summary.Missed{
			Prompt:        s.problem.Prompt,
			YourAnswer:    answer,
			CorrectAnswer: displayAnswer(s.problem),
		})
	}
	if s.isTextType() {
		s.input.Submit(correct)
	}

	var timeMs int64
	if cur, ok := s.deps.Sessions.CurrentSession(); ok && len(cur.Answers) > 0 {
		timeMs = cur.Answers[len(cur.Answers)-1].TimeSpent.Milliseconds()
	}
	s.deps.journal("answer", func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:   s.sessionID,
			ProblemID:   s.problem.ID,
			ProblemType: string(s.ptype),
			UserAnswer:  answer,
			Correct:     correct,
			TimeMs:      timeMs,
		})
	})

	s.showingFeedback = true
	s.feedbackSeq++
	seq := s.feedbackSeq
	return s, tea.Tick(FeedbackDelay, func(time.Time) tea.Msg {
		return feedbackDoneMsg{seq: seq}
	})
}

// hasHints reports whether the current problem has any hint text.
func (s *QuizScreen) hasHints() bool {
	return len(s.problem.Hints) > 0
}

// newHintEngine sizes the step budget to the problem's hint texts so every
// charged step reveals a new one.
func (s *QuizScreen) newHintEngine(p problem.Problem) *hint.Engine {
	cfg := s.deps.hintConfig(p.Type)
	if n := len(p.Hints); n > 0 && n < cfg.MaxSteps {
		cfg.MaxSteps = n
	}
	return hint.NewEngine(cfg)
}

// advance leaves the feedback view for the next problem or the summary.
func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	s.showingFeedback = false
	s.hints.Reset()

	if s.deps.Sessions.GoToNextProblem() {
		return s, s.setupProblem()
	}
	return s.finish()
}

// setupProblem prepares the input widget for the current problem.
func (s *QuizScreen) setupProblem() tea.Cmd {
	p, ok := s.deps.Sessions.CurrentProblem()
	if !ok {
		return nil
	}
	s.problem = p
	s.hints = s.newHintEngine(p)

	switch p.Type {
	case problem.TypeOX:
		s.choice = components.NewMultiChoice([]string{"True", "False"}, oxCorrectIndex(p))
		s.choice.Shortcuts = []string{"O", "X"}
	case problem.TypeMultipleChoice:
		s.choice = components.NewMultiChoice(p.Choices, p.CorrectChoiceIndex())
	case problem.TypeDebugging:
		s.input = components.NewTextInput("Line number of the bug", true, 4)
		return s.input.Model.Focus()
	default:
		s.input = components.NewTextInput("Type your answer...", false, 64)
		return s.input.Model.Focus()
	}
	return nil
}

// finish journals the result, records the level attempt and shows the
// summary in place of the quiz.
func (s *QuizScreen) finish() (screen.Screen, tea.Cmd) {
	s.finished = true

	stats, _ := s.deps.Sessions.Stats()
	duration := s.deps.Sessions.Elapsed()

	result := summary.Result{
		Type:       s.ptype,
		Stats:      stats,
		Duration:   duration,
		HintsShown: s.hintsShown,
		Missed:     s.missed,
	}
	if w := s.deps.Wallet; w != nil {
		result.XPEarned = w.SessionEarned()
		result.HintXP = w.SessionSpent()
		result.XPBalance = w.Balance()
	}

	if s.level != nil && s.deps.Tracker != nil {
		result.LevelName = s.level.Name
		attempt, err := s.deps.Tracker.RecordAttempt(s.level.ID, stats.Accuracy)
		if err != nil {
			result.AttemptErr = err.Error()
			s.deps.logger().Warn("record attempt failed",
				zap.String("level", string(s.level.ID)), zap.Error(err))
		} else {
			result.Attempt = &attempt
			catalog := s.deps.Tracker.Gate().Catalog()
			for _, id := range attempt.Unlocked {
				if lvl, ok := catalog.Level(id); ok {
					result.UnlockedNames = append(result.UnlockedNames, lvl.Name)
				}
			}
		}
	}

	s.deps.journal(store.ActionEnd, func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:      s.sessionID,
			Action:         store.ActionEnd,
			ProblemType:    string(s.ptype),
			Level:          s.levelID(),
			ProblemsServed: stats.TotalAnswers,
			CorrectAnswers: stats.CorrectAnswers,
			Accuracy:       stats.Accuracy,
			DurationSecs:   int(duration.Seconds()),
		})
	})
	s.deps.Sessions.ClearSession()

	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(result)}
	}
}

// abandon leaves an unfinished quiz. The level attempt is not spent.
func (s *QuizScreen) abandon() (screen.Screen, tea.Cmd) {
	s.finished = true
	stats, _ := s.deps.Sessions.Stats()
	s.deps.journal(store.ActionAbandon, func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:      s.sessionID,
			Action:         store.ActionAbandon,
			ProblemType:    string(s.ptype),
			Level:          s.levelID(),
			ProblemsServed: stats.TotalAnswers,
			CorrectAnswers: stats.CorrectAnswers,
			Accuracy:       stats.Accuracy,
			DurationSecs:   int(s.deps.Sessions.Elapsed().Seconds()),
		})
	})
	s.deps.Sessions.ClearSession()
	return s, func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *QuizScreen) levelID() string {
	if s.level == nil {
		return ""
	}
	return string(s.level.ID)
}

func (s *QuizScreen) isTextType() bool {
	return s.ptype == problem.TypeFillBlank || s.ptype == problem.TypeDebugging
}

func (s *QuizScreen) choiceAnswer() string {
	if s.ptype == problem.TypeOX {
		if s.choice.ChosenIndex == 0 {
			return "O"
		}
		return "X"
	}
	answer, _ := s.choice.Chosen()
	return answer
}

func oxCorrectIndex(p problem.Problem) int {
	if p.Check("O") {
		return 0
	}
	return 1
}

// displayAnswer renders the canonical answer for feedback.
func displayAnswer(p problem.Problem) string {
	switch p.Type {
	case problem.TypeOX:
		if p.Check("O") {
			return "O (true)"
		}
		return "X (false)"
	case problem.TypeDebugging:
		return "line " + p.Answer
	}
	return p.Answer
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
