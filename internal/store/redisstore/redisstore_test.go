package redisstore

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/abhisek/stemarcade/internal/session"
)

func newTestStore(t *testing.T, opts ...Option) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, opts...), mr
}

func TestRecordProgress_RecentNewestFirst(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"s1", "s2", "s3"} {
		sum := session.ProgressSummary{SessionID: id, Game: "pattern-master", Player: "ada", FinalScore: 10 * (i + 1)}
		if err := s.RecordProgress(ctx, sum); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}
	if !mr.Exists("stemarcade:progress") {
		t.Fatal("expected progress list key")
	}

	recent, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].SessionID != "s3" || recent[1].SessionID != "s2" {
		t.Errorf("recent = %+v", recent)
	}
}

func TestRecordProgress_TrimsList(t *testing.T) {
	s, _ := newTestStore(t, WithKeepRecent(2))
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		if err := s.RecordProgress(ctx, session.ProgressSummary{SessionID: id}); err != nil {
			t.Fatal(err)
		}
	}
	recent, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[1].SessionID != "b" {
		t.Errorf("recent = %+v", recent)
	}
}

func TestLeaderboard_KeepsBestScore(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	records := []session.ProgressSummary{
		{SessionID: "1", Game: "code-creator", Player: "ada", FinalScore: 40},
		{SessionID: "2", Game: "code-creator", Player: "ada", FinalScore: 25},
		{SessionID: "3", Game: "code-creator", Player: "bob", FinalScore: 30},
		{SessionID: "4", Game: "fraction-pizza", Player: "cy", FinalScore: 90},
		{SessionID: "5", Game: "code-creator", FinalScore: 5},
	}
	for _, r := range records {
		if err := s.RecordProgress(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	top, err := s.Top(ctx, "code-creator", 5)
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry{{"ada", 40}, {"bob", 30}, {"anonymous", 5}}
	if len(top) != len(want) {
		t.Fatalf("top = %+v, want %+v", top, want)
	}
	for i := range want {
		if top[i] != want[i] {
			t.Errorf("top[%d] = %+v, want %+v", i, top[i], want[i])
		}
	}

	all, err := s.Top(ctx, AllGames, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0] != (Entry{"cy", 90}) {
		t.Errorf("overall top = %+v", all)
	}
}

func TestReset(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()
	if err := s.RecordProgress(ctx, session.ProgressSummary{SessionID: "1", Game: "g", Player: "p", FinalScore: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"stemarcade:progress", "stemarcade:leaderboard:g", "stemarcade:leaderboard:all"} {
		if mr.Exists(k) {
			t.Errorf("key %s survived reset", k)
		}
	}
}

func TestRecordProgress_ServerDown(t *testing.T) {
	s, mr := newTestStore(t)
	mr.Close()
	err := s.RecordProgress(context.Background(), session.ProgressSummary{SessionID: "x"})
	if err == nil {
		t.Fatal("expected error with redis down")
	}
}

func TestEmptyQueries(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	if got, err := s.Recent(ctx, 0); err != nil || got != nil {
		t.Errorf("Recent(0) = %v, %v", got, err)
	}
	top, err := s.Top(ctx, "nothing", 3)
	if err != nil || len(top) != 0 {
		t.Errorf("Top on empty board = %v, %v", top, err)
	}
}
