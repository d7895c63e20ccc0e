package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stemarcade/internal/rewards"
	"github.com/abhisek/stemarcade/internal/router"
	"github.com/abhisek/stemarcade/internal/session"
)

func testSummary(expired bool) session.ProgressSummary {
	return session.ProgressSummary{
		SessionID:         "s1",
		Game:              "pattern-master",
		FinalScore:        36,
		QuestionsAnswered: 3,
		QuestionsTotal:    3,
		CorrectAnswers:    3,
		BestStreak:        3,
		CompletionRatio:   1,
		ElapsedSeconds:    75,
		Expired:           expired,
		Timestamp:         time.Unix(0, 0),
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(false), "Pattern Master", nil, nil)
	if s.Title() != "Game Over" {
		t.Errorf("Title = %q, want %q", s.Title(), "Game Over")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	completion := &rewards.Celebration{Notable: true, Kind: rewards.KindCompletion, Rarity: rewards.RarityLegendary, Reason: "Session complete (100% accuracy)"}
	s := New(testSummary(false), "Pattern Master", completion, nil)
	view := s.View(100, 40)
	for _, want := range []string{"Game complete!", "36 points", "1:15", "Session complete (100% accuracy)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_ExpiredHeadline(t *testing.T) {
	view := New(testSummary(true), "", nil, nil).View(100, 40)
	if !strings.Contains(view, "Time's up!") {
		t.Error("expired summary should say time is up")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, code := range []rune{tea.KeyEnter, tea.KeyEscape} {
		s := New(testSummary(false), "", nil, nil)
		_, cmd := s.Update(tea.KeyPressMsg{Code: code})
		if cmd == nil {
			t.Fatalf("key %v: expected a command", code)
		}
		if _, ok := cmd().(router.PopToRootMsg); !ok {
			t.Errorf("key %v: expected PopToRootMsg", code)
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary(false), "", nil, nil)
	if hints := s.KeyHints(); len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
