package session

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/stemarcade/internal/problemgen"
)

// ProgressStore receives the summary of every completed session.
type ProgressStore interface {
	RecordProgress(ctx context.Context, summary ProgressSummary) error
}

// ProgressStores fans a summary out to several stores. Every store is
// called even if an earlier one fails.
type ProgressStores []ProgressStore

func (ps ProgressStores) RecordProgress(ctx context.Context, summary ProgressSummary) error {
	var errs []error
	for _, s := range ps {
		if err := s.RecordProgress(ctx, summary); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AnswerRecord describes one graded answer.
type AnswerRecord struct {
	SessionID     string
	Game          string
	QuestionIndex int
	Kind          problemgen.Kind
	Difficulty    problemgen.Difficulty
	QuestionText  string
	CorrectAnswer string
	Selected      string
	Correct       bool
	Points        int
	Streak        int
	Timestamp     time.Time
}

// AnswerRecorder receives every graded answer.
type AnswerRecorder interface {
	RecordAnswer(ctx context.Context, rec AnswerRecord) error
}

// Session lifecycle actions written to the event log.
const (
	ActionStart  = "start"
	ActionEnd    = "end"
	ActionExpire = "expire"
	ActionReset  = "reset"
)

// SessionEvent marks a lifecycle change of a session.
type SessionEvent struct {
	SessionID     string
	Action        string
	Game          string
	QuestionCount int
	Timestamp     time.Time
}

// SessionEventRecorder receives session lifecycle events.
type SessionEventRecorder interface {
	RecordSessionEvent(ctx context.Context, ev SessionEvent) error
}
