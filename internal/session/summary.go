package session

import "time"

// ProgressSummary is emitted once when a session completes, whether by
// answering every question or by running out of time.
type ProgressSummary struct {
	SessionID         string
	Game              string
	Player            string
	FinalScore        int
	QuestionsAnswered int
	QuestionsTotal    int
	CorrectAnswers    int
	BestStreak        int
	CompletionRatio   float64 // QuestionsAnswered / QuestionsTotal
	ElapsedSeconds    int
	Expired           bool
	Timestamp         time.Time
}

// Accuracy is correct answers over answered questions.
func (p ProgressSummary) Accuracy() float64 {
	if p.QuestionsAnswered == 0 {
		return 0
	}
	return float64(p.CorrectAnswers) / float64(p.QuestionsAnswered)
}

// BuildSummary creates a ProgressSummary from a completed state.
func BuildSummary(s *State, player string, now time.Time) ProgressSummary {
	return ProgressSummary{
		SessionID:         s.SessionID,
		Game:              s.Config.Game,
		Player:            player,
		FinalScore:        s.Score,
		QuestionsAnswered: s.Answered,
		QuestionsTotal:    len(s.Questions),
		CorrectAnswers:    s.Correct,
		BestStreak:        s.BestStreak,
		CompletionRatio:   s.CompletionRatio(),
		ElapsedSeconds:    s.Elapsed(),
		Expired:           s.Expired,
		Timestamp:         now,
	}
}
