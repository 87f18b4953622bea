package quiz

import "time"

// timerTickMsg is sent every second to refresh the elapsed time.
type timerTickMsg time.Time

// feedbackDoneMsg ends the feedback display for the answer numbered seq.
type feedbackDoneMsg struct {
	seq int
}

// FeedbackDelay is how long answer feedback stays up before the quiz
// advances on its own.
const FeedbackDelay = 3 * time.Second
