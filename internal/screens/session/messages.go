package session

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stemarcade/internal/rewards"
	"github.com/abhisek/stemarcade/internal/scoring"
	sess "github.com/abhisek/stemarcade/internal/session"
)

// Engine events, delivered to the program by the Listener below.

// TickMsg carries the seconds left on the session clock.
type TickMsg struct{ Remaining int }

// OutcomeMsg carries the grading of the last answer.
type OutcomeMsg struct{ Outcome scoring.Outcome }

// PhaseMsg reports a lifecycle transition.
type PhaseMsg struct{ Phase sess.Phase }

// CompletedMsg carries the final summary of a session.
type CompletedMsg struct{ Summary sess.ProgressSummary }

// CelebrateMsg carries a reward signal.
type CelebrateMsg struct{ Celebration rewards.Celebration }

// Listener forwards engine events to send, normally tea.Program.Send.
func Listener(send func(tea.Msg)) sess.Listener {
	return sess.ListenerFuncs{
		Tick:        func(r int) { send(TickMsg{Remaining: r}) },
		Outcome:     func(o scoring.Outcome) { send(OutcomeMsg{Outcome: o}) },
		PhaseChange: func(p sess.Phase) { send(PhaseMsg{Phase: p}) },
		Completed:   func(s sess.ProgressSummary) { send(CompletedMsg{Summary: s}) },
		Celebrate:   func(c rewards.Celebration) { send(CelebrateMsg{Celebration: c}) },
	}
}

// Replies to engine calls made from commands.

type startedMsg struct{ err error }

type snapshotMsg struct {
	state sess.State
	err   error
}

type submittedMsg struct{ err error }

type advancedMsg struct{ err error }
