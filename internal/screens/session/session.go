// Package session is the play screen. It drives a session engine: every
// engine call runs inside a tea.Cmd, and engine events arrive as messages
// through Listener.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stemarcade/internal/problemgen"
	"github.com/abhisek/stemarcade/internal/rewards"
	"github.com/abhisek/stemarcade/internal/router"
	"github.com/abhisek/stemarcade/internal/scoring"
	"github.com/abhisek/stemarcade/internal/screen"
	"github.com/abhisek/stemarcade/internal/screens/summary"
	sess "github.com/abhisek/stemarcade/internal/session"
	"github.com/abhisek/stemarcade/internal/ui/components"
	"github.com/abhisek/stemarcade/internal/ui/layout"
)

const callTimeout = 5 * time.Second

// Engine is the part of *session.Engine the screen uses.
type Engine interface {
	Start(ctx context.Context, cfg sess.Config) error
	SubmitAnswer(ctx context.Context, value string) (scoring.Outcome, error)
	Advance(ctx context.Context) error
	Reset(ctx context.Context) error
	Snapshot(ctx context.Context) (sess.State, error)
	Close()
}

// SessionScreen implements screen.Screen for a running game.
type SessionScreen struct {
	engine Engine
	cfg    sess.Config
	title  string

	phase     sess.Phase
	sessionID string
	index     int
	total     int
	question  *problemgen.Question
	choice    components.MultiChoice
	chosen    int
	remaining int
	score     int
	streak    int
	outcome   *scoring.Outcome

	celebration  *rewards.Celebration  // shown on the current result card
	celebrations []rewards.Celebration // notable ones this session
	completion   *rewards.Celebration

	confirmQuit bool
	pending     bool
	errMsg      string

	closeOnce sync.Once
}

var (
	_ screen.Screen          = (*SessionScreen)(nil)
	_ screen.KeyHintProvider = (*SessionScreen)(nil)
	_ screen.StatusProvider  = (*SessionScreen)(nil)
	_ router.Closer          = (*SessionScreen)(nil)
)

// New creates a screen that starts cfg on engine when pushed.
func New(engine Engine, title string, cfg sess.Config) *SessionScreen {
	return &SessionScreen{
		engine:    engine,
		cfg:       cfg,
		title:     title,
		phase:     sess.PhaseMenu,
		remaining: cfg.Duration,
		chosen:    -1,
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	engine, cfg := s.engine, s.cfg
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		return startedMsg{err: engine.Start(ctx, cfg)}
	}
}

func (s *SessionScreen) Title() string {
	return s.title
}

// Close releases the engine. It does not wait: the engine may be blocked
// delivering an event to the program loop that is calling Close.
func (s *SessionScreen) Close() {
	s.closeOnce.Do(func() { go s.engine.Close() })
}

func (s *SessionScreen) Status() layout.Status {
	return layout.Status{
		Score:  s.score,
		Streak: s.streak,
		Shown:  s.phase == sess.PhaseActive || s.phase == sess.PhaseResult,
	}
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit game"},
			{Key: "N", Description: "Keep playing"},
		}
	case s.phase == sess.PhaseResult:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Select"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		if msg.err != nil {
			s.errMsg = "Could not start game: " + msg.err.Error()
		}
		return s, nil

	case PhaseMsg:
		s.phase = msg.Phase
		if msg.Phase == sess.PhaseActive || msg.Phase == sess.PhaseResult {
			return s, s.snapshot()
		}
		return s, nil

	case snapshotMsg:
		if msg.err == nil {
			s.apply(msg.state)
		}
		return s, nil

	case TickMsg:
		s.remaining = msg.Remaining
		return s, nil

	case OutcomeMsg:
		out := msg.Outcome
		s.outcome = &out
		s.score += out.Points
		s.streak = out.Streak
		s.celebration = nil
		return s, nil

	case CelebrateMsg:
		c := msg.Celebration
		switch {
		case c.Kind == rewards.KindCompletion:
			s.completion = &c
		case c.Kind == rewards.KindStreak:
			s.celebration = &c
			s.celebrations = append(s.celebrations, c)
		}
		return s, nil

	case CompletedMsg:
		s.phase = sess.PhaseCompleted
		done := summary.New(msg.Summary, s.title, s.completion, s.celebrations)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: done} }

	case submittedMsg:
		s.pending = false
		if msg.err != nil && !errors.Is(msg.err, sess.ErrPrecondition) {
			s.errMsg = msg.err.Error()
		}
		return s, nil

	case advancedMsg:
		s.pending = false
		if msg.err != nil && !errors.Is(msg.err, sess.ErrPrecondition) {
			s.errMsg = msg.err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// apply copies a snapshot into the view. Snapshots answer commands that
// may complete out of order, so older positions are ignored.
func (s *SessionScreen) apply(st sess.State) {
	if st.SessionID == s.sessionID && position(st.CurrentIndex, st.Phase) < position(s.index, s.phase) {
		return
	}
	newQuestion := st.SessionID != s.sessionID || st.CurrentIndex != s.index || s.question == nil

	s.sessionID = st.SessionID
	s.phase = st.Phase
	s.index = st.CurrentIndex
	s.total = len(st.Questions)
	s.score = st.Score
	s.streak = st.Streak
	s.remaining = st.Remaining

	q := st.CurrentQuestion()
	if q == nil {
		return
	}
	if newQuestion {
		s.question = q
		s.choice = components.NewMultiChoice(q.Text, q.Choices)
		s.chosen = -1
	}
	switch st.Phase {
	case sess.PhaseActive:
		s.outcome = nil
		s.celebration = nil
	case sess.PhaseResult:
		if st.LastOutcome != nil {
			out := *st.LastOutcome
			s.outcome = &out
		}
		if st.Selected != nil {
			s.chosen = indexOf(q.Choices, *st.Selected)
		}
		s.choice = s.choice.Reveal(problemgen.AnswerIndex(q), s.chosen)
	}
}

func position(index int, phase sess.Phase) int {
	p := index * 2
	if phase == sess.PhaseResult {
		p++
	}
	return p
}

func indexOf(values []string, v string) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return -1
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, s.quit()
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, s.quit()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		if s.phase == sess.PhaseActive || s.phase == sess.PhaseResult {
			s.confirmQuit = true
			return s, nil
		}
		return s, s.quit()
	}

	switch s.phase {
	case sess.PhaseActive:
		if s.pending || s.question == nil {
			return s, nil
		}
		var picked *components.Choice
		s.choice, picked = s.choice.Update(msg)
		if picked == nil {
			return s, nil
		}
		s.chosen = picked.Index
		s.pending = true
		return s, s.submit(picked.Value)

	case sess.PhaseResult:
		if s.pending {
			return s, nil
		}
		switch key {
		case "enter", "space", "n", "right":
			s.pending = true
			return s, s.advance()
		}
	}
	return s, nil
}

func (s *SessionScreen) snapshot() tea.Cmd {
	engine := s.engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		st, err := engine.Snapshot(ctx)
		return snapshotMsg{state: st, err: err}
	}
}

func (s *SessionScreen) submit(value string) tea.Cmd {
	engine := s.engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		_, err := engine.SubmitAnswer(ctx, value)
		return submittedMsg{err: err}
	}
}

func (s *SessionScreen) advance() tea.Cmd {
	engine := s.engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		return advancedMsg{err: engine.Advance(ctx)}
	}
}

// quit abandons the game without a summary and leaves the screen.
func (s *SessionScreen) quit() tea.Cmd {
	engine := s.engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		_ = engine.Reset(ctx)
		return router.PopScreenMsg{}
	}
}
