// Package rewards decides when a session deserves a celebration and how
// rare it is.
package rewards

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Celebration is a reward signal for the front-end. Notable is the signal
// effects subscribe to: every correct answer and every session that ran to
// its last question. Streak milestones and completions are also persisted.
type Celebration struct {
	Notable   bool
	Kind      Kind
	Rarity    Rarity
	Reason    string
	SessionID string
	At        time.Time
}

// Sink persists streak milestones and completions.
type Sink interface {
	RecordCelebration(ctx context.Context, c Celebration) error
}

// Service produces celebrations for one engine and tracks the milestones
// and completion earned in the current session.
type Service struct {
	sink   Sink
	logger *slog.Logger
	now    func() time.Time

	// SessionCelebrations accumulates persisted celebrations of the current session.
	SessionCelebrations []Celebration
}

// NewService creates a Service. sink may be nil.
func NewService(sink Sink, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{sink: sink, logger: logger, now: time.Now}
}

// ForAnswer returns the celebration for a graded answer. ok is false for
// incorrect answers, which are never celebrated.
func (s *Service) ForAnswer(ctx context.Context, sessionID string, correct bool, streak int) (Celebration, bool) {
	if !correct {
		return Celebration{}, false
	}
	if IsStreakMilestone(streak) {
		return s.award(ctx, Celebration{
			Notable:   true,
			Kind:      KindStreak,
			Rarity:    StreakRarity(streak),
			Reason:    fmt.Sprintf("%d correct in a row!", streak),
			SessionID: sessionID,
		}), true
	}
	return Celebration{
		Notable:   true,
		Kind:      KindCorrect,
		Rarity:    RarityCommon,
		Reason:    "Correct!",
		SessionID: sessionID,
		At:        s.now(),
	}, true
}

// ForCompletion returns the celebration for a finished session. A session
// cut short by the clock is still recorded but is not notable.
func (s *Service) ForCompletion(ctx context.Context, sessionID string, correct, total int, expired bool) Celebration {
	accuracy := 0.0
	if total > 0 {
		accuracy = float64(correct) / float64(total)
	}
	reason := fmt.Sprintf("Session complete (%.0f%% accuracy)", accuracy*100)
	if expired {
		reason = fmt.Sprintf("Time's up (%.0f%% accuracy)", accuracy*100)
	}
	return s.award(ctx, Celebration{
		Notable:   !expired,
		Kind:      KindCompletion,
		Rarity:    CompletionRarity(accuracy),
		Reason:    reason,
		SessionID: sessionID,
	})
}

// ResetSession clears the session accumulator. Called at session start.
func (s *Service) ResetSession() {
	s.SessionCelebrations = nil
}

func (s *Service) award(ctx context.Context, c Celebration) Celebration {
	c.At = s.now()
	s.SessionCelebrations = append(s.SessionCelebrations, c)
	if s.sink != nil {
		if err := s.sink.RecordCelebration(ctx, c); err != nil {
			s.logger.Warn("record celebration", "session_id", c.SessionID, "kind", c.Kind, "error", err)
		}
	}
	return c
}
