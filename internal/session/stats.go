package session

import (
	"math"
	"time"
)

// Progress is the learner's position within the session, for display.
type Progress struct {
	Current    int // 1-based, clamped to Total
	Total      int
	Percentage int // round(Current / Total * 100)
}

// Stats aggregates the answers of a session. It is derived, never stored.
type Stats struct {
	CorrectAnswers        int
	TotalAnswers          int
	Accuracy              int // percent, rounded
	TotalTimeSpent        time.Duration
	AverageTimePerProblem time.Duration
}

// ComputeStats derives aggregate statistics from a list of answers.
func ComputeStats(answers []AnswerRecord) Stats {
	var st Stats
	st.TotalAnswers = len(answers)
	for _, a := range answers {
		if a.IsCorrect {
			st.CorrectAnswers++
		}
		st.TotalTimeSpent += a.TimeSpent
	}
	if st.TotalAnswers > 0 {
		st.Accuracy = percent(st.CorrectAnswers, st.TotalAnswers)
		st.AverageTimePerProblem = st.TotalTimeSpent / time.Duration(st.TotalAnswers)
	}
	return st
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
