package session

import (
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/stemarcade/internal/clock"
	"github.com/abhisek/stemarcade/internal/problemgen"
	"github.com/abhisek/stemarcade/internal/rewards"
	"github.com/abhisek/stemarcade/internal/router"
	"github.com/abhisek/stemarcade/internal/screens/summary"
	sess "github.com/abhisek/stemarcade/internal/session"
)

func fixedQuestions(n int) []*problemgen.Question {
	qs := make([]*problemgen.Question, n)
	for i := range qs {
		ans := strconv.Itoa(i + 2)
		qs[i] = &problemgen.Question{
			Kind:       problemgen.KindArithmetic,
			Text:       fmt.Sprintf("What is %d + 1?", i+1),
			Answer:     ans,
			AnswerType: problemgen.AnswerTypeInteger,
			Choices:    []string{"0", ans, "100", "101"},
			Difficulty: problemgen.DifficultyEasy,
		}
	}
	return qs
}

// manualTicker fires only when the test sends on ch.
type manualTicker struct{ ch chan time.Time }

func (m *manualTicker) C() <-chan time.Time { return m.ch }
func (m *manualTicker) Stop()               {}

// harness runs the screen the way tea.Program would, but synchronously:
// commands are executed inline and engine events are read from msgs.
type harness struct {
	t      *testing.T
	screen *SessionScreen
	engine *sess.Engine
	msgs   chan tea.Msg
	ticker *manualTicker
	nav    []tea.Msg
}

func newHarness(t *testing.T, n, duration int, source sess.QuestionSource) *harness {
	t.Helper()
	h := &harness{
		t:      t,
		msgs:   make(chan tea.Msg, 256),
		ticker: &manualTicker{ch: make(chan time.Time)},
	}
	if source == nil {
		source = func(sess.Config) ([]*problemgen.Question, error) { return fixedQuestions(n), nil }
	}
	h.engine = sess.NewEngine(
		sess.WithListener(Listener(func(m tea.Msg) { h.msgs <- m })),
		sess.WithQuestionSource(source),
		sess.WithClockOptions(clock.WithTicker(func(time.Duration) clock.Ticker { return h.ticker })),
	)
	t.Cleanup(h.engine.Close)

	cfg := sess.Config{Game: "test", QuestionCount: n, Duration: duration, BaseScore: 10, StreakBonus: 2}
	h.screen = New(h.engine, "Test Game", cfg)
	h.run(h.screen.Init())
	return h
}

// run executes cmd and feeds its message back until the chain ends.
// Navigation messages are recorded instead of fed.
func (h *harness) run(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		switch msg.(type) {
		case nil:
			return
		case router.PopScreenMsg, router.ReplaceScreenMsg, router.PushScreenMsg:
			h.nav = append(h.nav, msg)
			return
		}
		cmd = h.feed(msg)
	}
}

func (h *harness) feed(msg tea.Msg) tea.Cmd {
	s, cmd := h.screen.Update(msg)
	h.screen = s.(*SessionScreen)
	return cmd
}

// waitFor feeds engine events until match accepts one.
func (h *harness) waitFor(what string, match func(tea.Msg) bool) {
	h.t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-h.msgs:
			h.run(h.feed(msg))
			if match(msg) {
				return
			}
		case <-deadline:
			h.t.Fatalf("timed out waiting for %s", what)
		}
	}
}

func (h *harness) waitPhase(p sess.Phase) {
	h.t.Helper()
	h.waitFor(p.String(), func(m tea.Msg) bool {
		pm, ok := m.(PhaseMsg)
		return ok && pm.Phase == p
	})
}

func (h *harness) waitCompleted() {
	h.t.Helper()
	h.waitFor("completion", func(m tea.Msg) bool {
		_, ok := m.(CompletedMsg)
		return ok
	})
}

func (h *harness) press(r rune) {
	h.run(h.feed(tea.KeyPressMsg{Code: r, Text: string(r)}))
}

func (h *harness) pressCode(code rune) {
	h.run(h.feed(tea.KeyPressMsg{Code: code}))
}

func TestSessionScreen_PlaysToSummary(t *testing.T) {
	h := newHarness(t, 2, 60, nil)
	h.waitPhase(sess.PhaseActive)

	s := h.screen
	require.NotNil(t, s.question)
	assert.Equal(t, "What is 1 + 1?", s.question.Text)
	assert.Equal(t, 2, s.total)
	assert.True(t, s.Status().Shown)

	h.press('2') // correct
	h.waitPhase(sess.PhaseResult)
	require.NotNil(t, s.outcome)
	assert.True(t, s.outcome.Correct)
	assert.Equal(t, 10, s.score)
	assert.True(t, s.choice.Revealed())
	assert.Contains(t, s.View(100, 40), "Correct! +10")

	h.pressCode(tea.KeyEnter)
	h.waitPhase(sess.PhaseActive)
	assert.Equal(t, 1, s.index)
	assert.Nil(t, s.outcome)

	h.press('1') // wrong
	h.waitPhase(sess.PhaseResult)
	assert.False(t, s.outcome.Correct)
	assert.Equal(t, 0, s.streak)
	assert.Contains(t, s.View(100, 40), "The answer is 3")

	h.pressCode(tea.KeyEnter)
	h.waitCompleted()

	require.Len(t, h.nav, 1)
	replace, ok := h.nav[0].(router.ReplaceScreenMsg)
	require.True(t, ok, "expected ReplaceScreenMsg, got %T", h.nav[0])
	done, ok := replace.Screen.(*summary.SummaryScreen)
	require.True(t, ok)
	sum := done.Summary()
	assert.Equal(t, 10, sum.FinalScore)
	assert.Equal(t, 2, sum.QuestionsAnswered)
	assert.Equal(t, 1, sum.CorrectAnswers)
	assert.False(t, sum.Expired)
	require.NotNil(t, s.completion)
}

func TestSessionScreen_KeysIgnoredWhileSubmitting(t *testing.T) {
	h := newHarness(t, 2, 60, nil)
	h.waitPhase(sess.PhaseActive)

	// Take the submit command without running it: a second key press
	// must not produce another submission.
	_, cmd := h.screen.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	require.NotNil(t, cmd)
	_, again := h.screen.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	assert.Nil(t, again)

	h.run(cmd)
	h.waitPhase(sess.PhaseResult)
	assert.Equal(t, 10, h.screen.score)
}

func TestSessionScreen_TicksAndExpiry(t *testing.T) {
	h := newHarness(t, 3, 2, nil)
	h.waitPhase(sess.PhaseActive)

	h.ticker.ch <- time.Now()
	h.waitFor("tick", func(m tea.Msg) bool { _, ok := m.(TickMsg); return ok })
	assert.Equal(t, 1, h.screen.remaining)

	h.ticker.ch <- time.Now()
	h.waitCompleted()

	require.Len(t, h.nav, 1)
	done := h.nav[0].(router.ReplaceScreenMsg).Screen.(*summary.SummaryScreen)
	assert.True(t, done.Summary().Expired)
	assert.Equal(t, 0, done.Summary().QuestionsAnswered)
}

func TestSessionScreen_QuitConfirm(t *testing.T) {
	h := newHarness(t, 2, 60, nil)
	h.waitPhase(sess.PhaseActive)

	h.pressCode(tea.KeyEscape)
	assert.True(t, h.screen.confirmQuit)
	assert.Contains(t, h.screen.View(100, 40), "Quit this game?")

	h.press('n')
	assert.False(t, h.screen.confirmQuit)
	assert.Empty(t, h.nav)

	h.pressCode(tea.KeyEscape)
	h.press('y')
	require.Len(t, h.nav, 1)
	_, ok := h.nav[0].(router.PopScreenMsg)
	assert.True(t, ok)

	st, err := h.engine.Snapshot(t.Context())
	require.NoError(t, err)
	assert.Equal(t, sess.PhaseMenu, st.Phase)
}

func TestSessionScreen_StartError(t *testing.T) {
	boom := errors.New("no questions today")
	h := newHarness(t, 2, 60, func(sess.Config) ([]*problemgen.Question, error) { return nil, boom })

	assert.Contains(t, h.screen.errMsg, "no questions today")
	assert.Contains(t, h.screen.View(100, 40), "Something went wrong")

	h.press('x')
	require.Len(t, h.nav, 1)
	_, ok := h.nav[0].(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestSessionScreen_CloseStopsEngine(t *testing.T) {
	h := newHarness(t, 2, 60, nil)
	h.waitPhase(sess.PhaseActive)

	h.screen.Close()
	h.screen.Close()

	assert.Eventually(t, func() bool {
		_, err := h.engine.Snapshot(t.Context())
		return errors.Is(err, sess.ErrClosed)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRenderVisual(t *testing.T) {
	out := renderVisual(map[string]any{
		"chart":  "bar",
		"title":  "Books read",
		"labels": []string{"Mon", "Tue"},
		"values": []int{4, 8},
	})
	assert.Contains(t, out, "Books read")
	assert.Contains(t, out, "Tue")
	assert.Empty(t, renderVisual(map[string]any{"slices": 8}))
}

func TestSessionScreen_CelebrationsKeptForSummary(t *testing.T) {
	s := New(nil, "Fraction Pizza", sess.DefaultConfig())

	s.Update(CelebrateMsg{Celebration: rewards.Celebration{Notable: true, Kind: rewards.KindCorrect, Reason: "Correct!"}})
	assert.Nil(t, s.celebration, "plain correct answers are shown by the outcome line")
	assert.Empty(t, s.celebrations)

	streak := rewards.Celebration{Notable: true, Kind: rewards.KindStreak, Rarity: rewards.RarityCommon, Reason: "5 correct in a row!"}
	s.Update(CelebrateMsg{Celebration: streak})
	require.NotNil(t, s.celebration)
	assert.Equal(t, []rewards.Celebration{streak}, s.celebrations)

	done := rewards.Celebration{Kind: rewards.KindCompletion, Reason: "Time's up (0% accuracy)"}
	s.Update(CelebrateMsg{Celebration: done})
	require.NotNil(t, s.completion)
	assert.Len(t, s.celebrations, 1)
}
