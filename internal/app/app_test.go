package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stemarcade/internal/config"
	"github.com/abhisek/stemarcade/internal/router"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	presets, err := config.LoadPresets("")
	if err != nil {
		t.Fatalf("parse presets: %v", err)
	}
	return Options{Player: "ada", Presets: presets}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := newAppModel(testOptions(t), &sender{})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAppModel_WelcomeThenHome(t *testing.T) {
	m := newAppModel(testOptions(t), &sender{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(AppModel)

	if got := m.router.Active().Title(); got != "Welcome" {
		t.Fatalf("first screen = %q, want Welcome", got)
	}
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected transition")
	}
	msg := cmd()
	if _, ok := msg.(router.ReplaceScreenMsg); !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	m.Update(msg)

	if got := m.router.Active().Title(); got != "Home" {
		t.Fatalf("screen after welcome = %q, want Home", got)
	}
	m.View()
	if !strings.Contains(m.router.View(100, 30), "FRACTION PIZZA") {
		t.Error("home view should list the fraction pizza game")
	}
}

func TestAppModel_HomeHistoryFollowsSource(t *testing.T) {
	m := newAppModel(testOptions(t), &sender{})
	m.Update(m.router.Update(tea.KeyPressMsg{Code: tea.KeyEnter})())
	if !strings.Contains(m.router.View(100, 30), "HISTORY") {
		t.Error("home should list HISTORY even when disabled")
	}
}

func TestSender_DropsBeforeProgram(t *testing.T) {
	var s sender
	s.Send(struct{}{}) // no program yet: must not panic

	var got []tea.Msg
	s.send = func(m tea.Msg) { got = append(got, m) }
	s.Send("hello")
	if len(got) != 1 {
		t.Errorf("delivered %d messages, want 1", len(got))
	}
}
