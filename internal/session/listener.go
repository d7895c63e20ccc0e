package session

import (
	"github.com/abhisek/stemarcade/internal/rewards"
	"github.com/abhisek/stemarcade/internal/scoring"
)

// Listener observes an Engine. Callbacks run on the engine goroutine and
// must not call back into the engine synchronously.
type Listener interface {
	OnTick(remaining int)
	OnOutcome(outcome scoring.Outcome)
	OnPhaseChange(phase Phase)
	OnCompleted(summary ProgressSummary)
	OnCelebrate(c rewards.Celebration)
}

// ListenerFuncs adapts optional functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Tick        func(remaining int)
	Outcome     func(outcome scoring.Outcome)
	PhaseChange func(phase Phase)
	Completed   func(summary ProgressSummary)
	Celebrate   func(c rewards.Celebration)
}

func (l ListenerFuncs) OnTick(remaining int) {
	if l.Tick != nil {
		l.Tick(remaining)
	}
}

func (l ListenerFuncs) OnOutcome(outcome scoring.Outcome) {
	if l.Outcome != nil {
		l.Outcome(outcome)
	}
}

func (l ListenerFuncs) OnPhaseChange(phase Phase) {
	if l.PhaseChange != nil {
		l.PhaseChange(phase)
	}
}

func (l ListenerFuncs) OnCompleted(summary ProgressSummary) {
	if l.Completed != nil {
		l.Completed(summary)
	}
}

func (l ListenerFuncs) OnCelebrate(c rewards.Celebration) {
	if l.Celebrate != nil {
		l.Celebrate(c)
	}
}

// NopListener ignores every event.
type NopListener struct{}

func (NopListener) OnTick(int)                      {}
func (NopListener) OnOutcome(scoring.Outcome)       {}
func (NopListener) OnPhaseChange(Phase)             {}
func (NopListener) OnCompleted(ProgressSummary)     {}
func (NopListener) OnCelebrate(rewards.Celebration) {}
