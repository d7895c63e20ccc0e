package session

import (
	"slices"
	"time"

	"github.com/abhisek/stemarcade/internal/problemgen"
	"github.com/abhisek/stemarcade/internal/scoring"
)

// Phase is the lifecycle position of a session.
type Phase int

const (
	PhaseMenu      Phase = iota // No session running
	PhaseActive                 // Waiting for an answer
	PhaseResult                 // Showing the outcome of the last answer
	PhaseCompleted              // All questions answered or time expired
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseActive:
		return "active"
	case PhaseResult:
		return "result"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// State is the complete session state. Score, Streak, BestStreak, Answered
// and Correct come from the embedded ledger.
type State struct {
	Phase Phase

	// Questions are generated once at start and never change.
	Questions []*problemgen.Question

	CurrentIndex int

	scoring.Ledger

	// Remaining is the number of whole seconds left on the clock.
	Remaining int

	// Selected is the value submitted for the current question, nil until
	// an answer is submitted.
	Selected *string

	// LastOutcome is the grading of the current question, nil until an
	// answer is submitted.
	LastOutcome *scoring.Outcome

	// Expired is set when the session ended because the clock ran out.
	Expired bool

	SessionID string
	StartedAt time.Time
	Config    Config
}

// NewState returns a state in the Menu phase.
func NewState() State {
	return State{Phase: PhaseMenu}
}

// CurrentQuestion returns the question at CurrentIndex, or nil outside a session.
func (s *State) CurrentQuestion() *problemgen.Question {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	return s.Questions[s.CurrentIndex]
}

// CompletionRatio is the share of questions that received an answer.
func (s *State) CompletionRatio() float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	return float64(s.Answered) / float64(len(s.Questions))
}

// Elapsed returns the whole seconds consumed from the budget.
func (s *State) Elapsed() int {
	return max(s.Config.Duration-s.Remaining, 0)
}

// Clone returns a copy that shares no mutable memory with s. Questions
// themselves are immutable and shared.
func (s State) Clone() State {
	s.Questions = slices.Clone(s.Questions)
	s.Config = s.Config.clone()
	if s.Selected != nil {
		v := *s.Selected
		s.Selected = &v
	}
	if s.LastOutcome != nil {
		o := *s.LastOutcome
		s.LastOutcome = &o
	}
	return s
}
