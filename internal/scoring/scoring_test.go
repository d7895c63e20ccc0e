package scoring

import "testing"

func TestApplyOutcome(t *testing.T) {
	tests := []struct {
		name        string
		correct     bool
		streak      int
		base, bonus int
		want        Outcome
	}{
		{"first correct", true, 0, 10, 2, Outcome{Correct: true, Points: 10, Streak: 1}},
		{"streak bonus", true, 3, 10, 2, Outcome{Correct: true, Points: 16, Streak: 4}},
		{"incorrect resets", false, 7, 10, 2, Outcome{}},
		{"negative inputs clamp", true, 2, -5, -1, Outcome{Correct: true, Points: 0, Streak: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyOutcome(tt.correct, tt.streak, tt.base, tt.bonus)
			if got != tt.want {
				t.Errorf("ApplyOutcome() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLedger_ThreeCorrectScenario(t *testing.T) {
	var l Ledger
	wantScores := []int{10, 22, 36}
	for i, want := range wantScores {
		l.Apply(true, 10, 2)
		if l.Score != want {
			t.Fatalf("after answer %d score = %d, want %d", i+1, l.Score, want)
		}
	}
	if l.Streak != 3 || l.BestStreak != 3 || l.Correct != 3 || l.Answered != 3 {
		t.Errorf("ledger = %+v", l)
	}
	if l.Accuracy() != 1 {
		t.Errorf("Accuracy() = %v, want 1", l.Accuracy())
	}
}

func TestLedger_ScoreMonotonicStreakResets(t *testing.T) {
	var l Ledger
	pattern := []bool{true, true, false, true, false, false, true, true, true}
	prev := 0
	for i, correct := range pattern {
		l.Apply(correct, 10, 2)
		if l.Score < prev {
			t.Fatalf("answer %d: score dropped from %d to %d", i+1, prev, l.Score)
		}
		if !correct && l.Streak != 0 {
			t.Fatalf("answer %d: streak = %d after incorrect answer", i+1, l.Streak)
		}
		prev = l.Score
	}
	if l.BestStreak != 3 {
		t.Errorf("BestStreak = %d, want 3", l.BestStreak)
	}
	if l.Answered != len(pattern) || l.Correct != 6 {
		t.Errorf("Answered = %d Correct = %d", l.Answered, l.Correct)
	}
}

func TestLedger_AccuracyEmpty(t *testing.T) {
	if got := (Ledger{}).Accuracy(); got != 0 {
		t.Errorf("Accuracy() = %v, want 0", got)
	}
}
