package session

import (
	"time"

	"github.com/abhisek/stemarcade/internal/problemgen"
	"github.com/abhisek/stemarcade/internal/scoring"
)

// The transition functions below are pure: they never start clocks,
// notify listeners, or persist anything. On error the state is unchanged.

// Begin starts a session with pre-built questions. Allowed from Menu and
// Completed.
func (s *State) Begin(cfg Config, questions []*problemgen.Question, sessionID string, now time.Time) error {
	if s.Phase != PhaseMenu && s.Phase != PhaseCompleted {
		return &PreconditionError{Op: "start", Phase: s.Phase}
	}
	*s = State{
		Phase:     PhaseActive,
		Questions: questions,
		Remaining: cfg.Duration,
		SessionID: sessionID,
		StartedAt: now,
		Config:    cfg.clone(),
	}
	return nil
}

// Submit grades value against the current question and moves to Result.
// Allowed only in Active, so an answer can never be scored twice.
func (s *State) Submit(value string) (scoring.Outcome, error) {
	q := s.CurrentQuestion()
	if s.Phase != PhaseActive || q == nil {
		return scoring.Outcome{}, &PreconditionError{Op: "submit answer", Phase: s.Phase}
	}
	out := s.Ledger.Apply(problemgen.CheckAnswer(value, q), s.Config.BaseScore, s.Config.StreakBonus)
	s.Selected = &value
	s.LastOutcome = &out
	s.Phase = PhaseResult
	return out, nil
}

// Advance moves from Result to the next question, or to Completed after
// the last one. It reports whether the session completed.
func (s *State) Advance() (bool, error) {
	if s.Phase != PhaseResult {
		return false, &PreconditionError{Op: "advance", Phase: s.Phase}
	}
	s.Selected = nil
	s.LastOutcome = nil
	if s.CurrentIndex+1 >= len(s.Questions) {
		s.Phase = PhaseCompleted
		return true, nil
	}
	s.CurrentIndex++
	s.Phase = PhaseActive
	return false, nil
}

// Tick records the seconds left. Ticks outside a running session are ignored.
func (s *State) Tick(remaining int) {
	if s.Phase == PhaseActive || s.Phase == PhaseResult {
		s.Remaining = max(remaining, 0)
	}
}

// Expire ends a running session because the clock ran out. The question on
// screen, if unanswered, is not counted.
func (s *State) Expire() error {
	if s.Phase != PhaseActive && s.Phase != PhaseResult {
		return &PreconditionError{Op: "expire", Phase: s.Phase}
	}
	s.Phase = PhaseCompleted
	s.Remaining = 0
	s.Expired = true
	return nil
}

// Reset abandons any session and returns to Menu.
func (s *State) Reset() {
	*s = NewState()
}
