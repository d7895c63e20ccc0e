package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stemarcade/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
	closed  int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }
func (s *stubScreen) Close()                                  { s.closed++ }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPopClosesScreen(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
	if s2.closed != 1 {
		t.Errorf("popped screen closed %d times, want 1", s2.closed)
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
	if s1.closed != 0 {
		t.Error("root screen must not be closed by Pop")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)
	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Update(ReplaceScreenMsg{Screen: s3})

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
	if !s3.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
	if s2.closed != 1 {
		t.Errorf("replaced screen closed %d times, want 1", s2.closed)
	}
}

func TestPopToRoot(t *testing.T) {
	root := &stubScreen{title: "root"}
	r := New(root)
	a := &stubScreen{title: "a"}
	b := &stubScreen{title: "b"}
	r.Push(a)
	r.Push(b)

	r.Update(PopToRootMsg{})

	if r.Depth() != 1 || r.Active() != root {
		t.Fatalf("depth = %d, active = %q; want root only", r.Depth(), r.Active().Title())
	}
	if a.closed != 1 || b.closed != 1 {
		t.Errorf("closed counts a=%d b=%d, want 1 each", a.closed, b.closed)
	}
}

func TestCloseAll(t *testing.T) {
	root := &stubScreen{title: "root"}
	r := New(root)
	top := &stubScreen{title: "top"}
	r.Push(top)

	r.CloseAll()

	if root.closed != 1 || top.closed != 1 {
		t.Errorf("closed counts root=%d top=%d, want 1 each", root.closed, top.closed)
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	r := New(&stubScreen{title: "only"})
	if cmd := r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"}); cmd != nil {
		t.Error("stub screen returns no command")
	}
	if got := r.View(10, 10); got != "only" {
		t.Errorf("View = %q, want %q", got, "only")
	}
}
