package rewards

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockSink records celebrations for rewards tests.
type mockSink struct {
	recorded []Celebration
	err      error
}

func (m *mockSink) RecordCelebration(_ context.Context, c Celebration) error {
	m.recorded = append(m.recorded, c)
	return m.err
}

func newTestService() (*Service, *mockSink) {
	sink := &mockSink{}
	svc := NewService(sink, nil)
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc, sink
}

func TestForAnswer_Incorrect(t *testing.T) {
	svc, sink := newTestService()
	if _, ok := svc.ForAnswer(context.Background(), "s1", false, 0); ok {
		t.Error("incorrect answer should not be celebrated")
	}
	if len(sink.recorded) != 0 {
		t.Errorf("recorded %d celebrations, want 0", len(sink.recorded))
	}
}

func TestForAnswer_PlainCorrect(t *testing.T) {
	svc, sink := newTestService()
	c, ok := svc.ForAnswer(context.Background(), "s1", true, 3)
	if !ok {
		t.Fatal("correct answer should be celebrated")
	}
	if !c.Notable || c.Kind != KindCorrect {
		t.Errorf("celebration = %+v, want notable correct", c)
	}
	if len(sink.recorded) != 0 {
		t.Error("plain correct answers are not persisted")
	}
	if len(svc.SessionCelebrations) != 0 {
		t.Errorf("SessionCelebrations = %d, want 0", len(svc.SessionCelebrations))
	}
}

func TestForAnswer_StreakMilestones(t *testing.T) {
	svc, sink := newTestService()
	var notable []int
	for streak := 1; streak <= 30; streak++ {
		c, _ := svc.ForAnswer(context.Background(), "s1", true, streak)
		if !c.Notable {
			t.Errorf("streak %d: correct answer not notable", streak)
		}
		if c.Kind == KindStreak {
			notable = append(notable, streak)
		}
	}
	want := []int{5, 10, 15, 20, 25, 30}
	if len(notable) != len(want) {
		t.Fatalf("milestones = %v, want %v", notable, want)
	}
	for i := range want {
		if notable[i] != want[i] {
			t.Errorf("milestones = %v, want %v", notable, want)
			break
		}
	}
	if len(sink.recorded) != len(want) {
		t.Errorf("persisted %d, want %d", len(sink.recorded), len(want))
	}
	if sink.recorded[1].Rarity != RarityRare {
		t.Errorf("streak 10 rarity = %s, want rare", sink.recorded[1].Rarity)
	}
	if len(svc.SessionCelebrations) != len(want) {
		t.Errorf("SessionCelebrations = %d, want %d", len(svc.SessionCelebrations), len(want))
	}
	svc.ResetSession()
	if len(svc.SessionCelebrations) != 0 {
		t.Error("ResetSession did not clear accumulator")
	}
}

func TestForCompletion(t *testing.T) {
	svc, sink := newTestService()
	c := svc.ForCompletion(context.Background(), "s9", 9, 10, false)
	if !c.Notable || c.Kind != KindCompletion || c.Rarity != RarityLegendary {
		t.Errorf("celebration = %+v", c)
	}
	if c.Reason != "Session complete (90% accuracy)" {
		t.Errorf("Reason = %q", c.Reason)
	}
	if c.At.IsZero() || len(sink.recorded) != 1 || sink.recorded[0].SessionID != "s9" {
		t.Errorf("recorded = %+v", sink.recorded)
	}

	if got := svc.ForCompletion(context.Background(), "s0", 0, 0, false).Rarity; got != RarityCommon {
		t.Errorf("empty session rarity = %s, want common", got)
	}
}

func TestForCompletion_SinkErrorIsNotFatal(t *testing.T) {
	svc, sink := newTestService()
	sink.err = errors.New("disk full")
	c := svc.ForCompletion(context.Background(), "s1", 1, 2, false)
	if c.Rarity != RarityRare {
		t.Errorf("Rarity = %s, want rare", c.Rarity)
	}
}

func TestNoSink(t *testing.T) {
	svc := NewService(nil, nil)
	c := svc.ForCompletion(context.Background(), "s1", 2, 4, false)
	if !c.Notable {
		t.Error("completion should be notable without a sink")
	}
}

func TestForCompletion_ExpiredNotNotable(t *testing.T) {
	svc, sink := newTestService()
	c := svc.ForCompletion(context.Background(), "s3", 0, 10, true)
	if c.Notable {
		t.Errorf("expired session celebration = %+v, want not notable", c)
	}
	if c.Kind != KindCompletion || c.Rarity != RarityCommon {
		t.Errorf("celebration = %+v", c)
	}
	if c.Reason != "Time's up (0% accuracy)" {
		t.Errorf("Reason = %q", c.Reason)
	}
	if len(sink.recorded) != 1 {
		t.Errorf("recorded %d, want 1", len(sink.recorded))
	}
}
