package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codequiz/internal/problem"
	"github.com/abhisek/codequiz/internal/progression"
	"github.com/abhisek/codequiz/internal/router"
	"github.com/abhisek/codequiz/internal/session"
)

func testResult() Result {
	return Result{
		Type: problem.TypeOX,
		Stats: session.Stats{
			CorrectAnswers:        7,
			TotalAnswers:          10,
			Accuracy:              70,
			TotalTimeSpent:        2 * time.Minute,
			AverageTimePerProblem: 12 * time.Second,
		},
		Duration:      3 * time.Minute,
		XPEarned:      70,
		HintXP:        15,
		XPBalance:     155,
		HintsShown:    2,
		LevelName:     "Beginner",
		Attempt:       &progression.AttemptResult{Level: progression.LevelBeginner, Accuracy: 70, Passed: true, NewlyDone: true},
		UnlockedNames: []string{"Elementary"},
		Missed: []Missed{
			{Prompt: "A nil map can be written to.", YourAnswer: "O", CorrectAnswer: "X"},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult())
	if s.Title() != "Quiz Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testResult())
	view := s.View(100, 30)

	for _, want := range []string{"Accuracy: 70%", "Correct: 7", "Unlocked: Elementary", "−15 XP", "nil map"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_AttemptsLeft(t *testing.T) {
	r := testResult()
	r.LevelName = "Challenge"
	r.UnlockedNames = nil
	r.Attempt = &progression.AttemptResult{Level: progression.LevelChallenge, Accuracy: 40, AttemptsLeft: 2}

	view := New(r).View(100, 30)
	if !strings.Contains(view, "2 attempts left") {
		t.Error("expected remaining attempts for a limited level")
	}
}

func TestSummaryScreen_FreePlayHasNoLevelLine(t *testing.T) {
	r := testResult()
	r.LevelName = ""
	r.Attempt = nil

	view := New(r).View(100, 30)
	if strings.Contains(view, "cleared") {
		t.Error("free play summary should not mention levels")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, key := range []rune{tea.KeyEnter, tea.KeyEscape} {
		s := New(testResult())
		_, cmd := s.Update(tea.KeyPressMsg{Code: key})
		if cmd == nil {
			t.Fatalf("expected a command on key %v", key)
		}
		if _, ok := cmd().(router.PopToRootMsg); !ok {
			t.Errorf("key %v: expected PopToRootMsg", key)
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testResult())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
