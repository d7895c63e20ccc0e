// Package scoring implements the points and streak economy.
package scoring

// Outcome is the result of grading one answer.
type Outcome struct {
	Correct bool
	Points  int // points awarded for this answer
	Streak  int // streak after this answer
}

// ApplyOutcome grades a single answer. A correct answer earns
// base + bonus*streak and extends the streak; an incorrect one earns
// nothing and resets it. Negative base or bonus are treated as zero.
func ApplyOutcome(correct bool, streak, base, bonus int) Outcome {
	if !correct {
		return Outcome{}
	}
	points := max(base, 0) + max(bonus, 0)*max(streak, 0)
	return Outcome{Correct: true, Points: points, Streak: max(streak, 0) + 1}
}

// Ledger accumulates a session's score. The zero value is an empty ledger.
type Ledger struct {
	Score      int
	Streak     int
	BestStreak int
	Answered   int
	Correct    int
}

// Apply grades an answer against the current streak and folds the result
// into the ledger. Score never decreases.
func (l *Ledger) Apply(correct bool, base, bonus int) Outcome {
	out := ApplyOutcome(correct, l.Streak, base, bonus)
	l.Score += out.Points
	l.Streak = out.Streak
	l.BestStreak = max(l.BestStreak, l.Streak)
	l.Answered++
	if correct {
		l.Correct++
	}
	return out
}

// Accuracy returns Correct/Answered, or 0 before any answer.
func (l Ledger) Accuracy() float64 {
	if l.Answered == 0 {
		return 0
	}
	return float64(l.Correct) / float64(l.Answered)
}
