package store

import "time"

// QueryOpts configures queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	Game  string    // only this game ("" = all)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// SummaryRecord is a stored progress summary.
type SummaryRecord struct {
	Sequence          int64
	SessionID         string
	Game              string
	Player            string
	FinalScore        int
	QuestionsAnswered int
	QuestionsTotal    int
	CorrectAnswers    int
	BestStreak        int
	CompletionRatio   float64
	ElapsedSeconds    int
	Expired           bool
	Timestamp         time.Time
}

// GameTotals aggregates the stored summaries of one game.
type GameTotals struct {
	Game          string
	Sessions      int
	TotalScore    int
	BestScore     int
	AvgCompletion float64
}

// KindAccuracy aggregates answers by question kind.
type KindAccuracy struct {
	Kind     string
	Answered int
	Correct  int
}

// Accuracy returns Correct/Answered, or 0 when nothing was answered.
func (k KindAccuracy) Accuracy() float64 {
	if k.Answered == 0 {
		return 0
	}
	return float64(k.Correct) / float64(k.Answered)
}

// SessionEventRecord is a stored session lifecycle event.
type SessionEventRecord struct {
	Sequence      int64
	SessionID     string
	Action        string
	Game          string
	QuestionCount int
	Timestamp     time.Time
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UnixMilli()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
