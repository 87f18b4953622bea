// Package metrics exposes quiz activity as Prometheus counters.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/codequiz/internal/problem"
	"github.com/abhisek/codequiz/internal/session"
)

// Recorder collects quiz metrics on its own registry. It implements
// session.Observer so a Manager can report to it directly.
type Recorder struct {
	registry *prometheus.Registry

	sessionsCreated   *prometheus.CounterVec
	sessionsCompleted *prometheus.CounterVec
	answers           *prometheus.CounterVec
	hintSteps         *prometheus.CounterVec
	hintXP            *prometheus.CounterVec
	sessionDuration   *prometheus.HistogramVec
}

var _ session.Observer = (*Recorder)(nil)

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		sessionsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "codequiz_sessions_created_total",
				Help: "Total number of quiz sessions created",
			},
			[]string{"type"},
		),
		sessionsCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "codequiz_sessions_completed_total",
				Help: "Total number of quiz sessions completed",
			},
			[]string{"type"},
		),
		answers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "codequiz_answers_total",
				Help: "Total number of submitted answers",
			},
			[]string{"type", "result"},
		),
		hintSteps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "codequiz_hint_steps_total",
				Help: "Total number of charged hint steps",
			},
			[]string{"type"},
		),
		hintXP: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "codequiz_hint_xp_deducted_total",
				Help: "Total XP deducted for hints",
			},
			[]string{"type"},
		),
		sessionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "codequiz_session_duration_seconds",
				Help:    "Duration of completed quiz sessions",
				Buckets: []float64{30, 60, 120, 300, 600, 1200},
			},
			[]string{"type"},
		),
	}

	r.registry.MustRegister(
		r.sessionsCreated,
		r.sessionsCompleted,
		r.answers,
		r.hintSteps,
		r.hintXP,
		r.sessionDuration,
	)
	return r
}

// Registry returns the registry the collectors live on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) SessionCreated(s session.TestSession) {
	r.sessionsCreated.WithLabelValues(string(s.Type)).Inc()
}

func (r *Recorder) AnswerSubmitted(s session.TestSession, a session.AnswerRecord) {
	result := "incorrect"
	if a.IsCorrect {
		result = "correct"
	}
	r.answers.WithLabelValues(string(s.Type), result).Inc()
}

func (r *Recorder) SessionCompleted(s session.TestSession) {
	r.sessionsCompleted.WithLabelValues(string(s.Type)).Inc()
	if len(s.Answers) > 0 {
		// Amortized time times the answer count is the elapsed time at
		// the final answer.
		n := len(s.Answers)
		total := s.Answers[n-1].TimeSpent * time.Duration(n)
		r.sessionDuration.WithLabelValues(string(s.Type)).Observe(total.Seconds())
	}
}

// HintCharged records one charged hint step and its XP cost.
func (r *Recorder) HintCharged(t problem.Type, xp int) {
	r.hintSteps.WithLabelValues(string(t)).Inc()
	r.hintXP.WithLabelValues(string(t)).Add(float64(xp))
}
