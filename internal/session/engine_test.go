package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/stemarcade/internal/clock"
	"github.com/abhisek/stemarcade/internal/distractor"
	"github.com/abhisek/stemarcade/internal/problemgen"
	"github.com/abhisek/stemarcade/internal/rewards"
	"github.com/abhisek/stemarcade/internal/scoring"
)

// manualTicker fires only when a test sends on ch.
type manualTicker struct{ ch chan time.Time }

func (m *manualTicker) C() <-chan time.Time { return m.ch }
func (m *manualTicker) Stop()               {}

type tickers struct {
	mu   sync.Mutex
	list []*manualTicker
}

func (ts *tickers) factory(time.Duration) clock.Ticker {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	t := &manualTicker{ch: make(chan time.Time)}
	ts.list = append(ts.list, t)
	return t
}

func (ts *tickers) latest(t *testing.T) *manualTicker {
	t.Helper()
	ts.mu.Lock()
	defer ts.mu.Unlock()
	require.NotEmpty(t, ts.list, "no clock started")
	return ts.list[len(ts.list)-1]
}

// fire delivers one tick, failing if the clock goroutine is gone.
func (m *manualTicker) fire(t *testing.T) {
	t.Helper()
	select {
	case m.ch <- time.Now():
	case <-time.After(2 * time.Second):
		t.Fatal("clock did not accept tick")
	}
}

// recorder is a Listener that keeps everything it sees.
type recorder struct {
	mu           sync.Mutex
	phases       []Phase
	outcomes     []scoring.Outcome
	celebrations []rewards.Celebration
	ticks        chan int
	completed    chan ProgressSummary
}

func newRecorder() *recorder {
	return &recorder{ticks: make(chan int, 100), completed: make(chan ProgressSummary, 4)}
}

func (r *recorder) OnTick(remaining int) { r.ticks <- remaining }

func (r *recorder) OnOutcome(o scoring.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *recorder) OnPhaseChange(p Phase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phases = append(r.phases, p)
}

func (r *recorder) OnCompleted(s ProgressSummary) { r.completed <- s }

func (r *recorder) OnCelebrate(c rewards.Celebration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.celebrations = append(r.celebrations, c)
}

func (r *recorder) waitCompleted(t *testing.T) ProgressSummary {
	t.Helper()
	select {
	case s := <-r.completed:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("session did not complete")
		return ProgressSummary{}
	}
}

func (r *recorder) waitTick(t *testing.T) int {
	t.Helper()
	select {
	case v := <-r.ticks:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("no tick delivered")
		return 0
	}
}

// memStore records progress, answers and session events in memory.
type memStore struct {
	mu        sync.Mutex
	summaries []ProgressSummary
	answers   []AnswerRecord
	events    []SessionEvent
	err       error
}

func (m *memStore) RecordProgress(_ context.Context, s ProgressSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaries = append(m.summaries, s)
	return m.err
}

func (m *memStore) RecordAnswer(_ context.Context, rec AnswerRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers = append(m.answers, rec)
	return m.err
}

func (m *memStore) RecordSessionEvent(_ context.Context, ev SessionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return m.err
}

func (m *memStore) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, ev := range m.events {
		out = append(out, ev.Action)
	}
	return out
}

type harness struct {
	engine *Engine
	rec    *recorder
	store  *memStore
	ticks  *tickers
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{rec: newRecorder(), store: &memStore{}, ticks: &tickers{}}
	base := []Option{
		WithListener(h.rec),
		WithProgressStore(h.store),
		WithAnswerRecorder(h.store),
		WithSessionEventRecorder(h.store),
		WithQuestionSource(func(cfg Config) ([]*problemgen.Question, error) {
			return fixedQuestions(cfg.QuestionCount), nil
		}),
		WithClockOptions(clock.WithTicker(h.ticks.factory)),
		WithPlayer("ada"),
	}
	h.engine = NewEngine(append(base, opts...)...)
	t.Cleanup(h.engine.Close)
	return h
}

func (h *harness) answerCurrent(t *testing.T, correct bool) scoring.Outcome {
	t.Helper()
	ctx := context.Background()
	st, err := h.engine.Snapshot(ctx)
	require.NoError(t, err)
	value := st.CurrentQuestion().Answer
	if !correct {
		value = "wrong"
	}
	out, err := h.engine.SubmitAnswer(ctx, value)
	require.NoError(t, err)
	return out
}

func TestEngine_ThreeCorrectAnswers(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.engine.Start(ctx, testConfig(3)))

	for i, want := range []int{10, 22, 36} {
		h.answerCurrent(t, true)
		st, err := h.engine.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, st.Score, "score after answer %d", i+1)
		assert.Equal(t, PhaseResult, st.Phase)
		require.NoError(t, h.engine.Advance(ctx))
	}

	sum := h.rec.waitCompleted(t)
	assert.Equal(t, 36, sum.FinalScore)
	assert.Equal(t, 3, sum.QuestionsAnswered)
	assert.Equal(t, 1.0, sum.CompletionRatio)
	assert.Equal(t, "ada", sum.Player)
	assert.False(t, sum.Expired)

	st, err := h.engine.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseCompleted, st.Phase)

	h.store.mu.Lock()
	assert.Len(t, h.store.summaries, 1)
	assert.Len(t, h.store.answers, 3)
	h.store.mu.Unlock()
	assert.Equal(t, []string{ActionStart, ActionEnd}, h.store.actions())
}

func TestEngine_ExpiryAfterSecondAnswer(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	cfg := testConfig(3)
	cfg.Duration = 2
	require.NoError(t, h.engine.Start(ctx, cfg))

	h.answerCurrent(t, true)
	require.NoError(t, h.engine.Advance(ctx))
	h.answerCurrent(t, true)

	tk := h.ticks.latest(t)
	tk.fire(t)
	assert.Equal(t, 1, h.rec.waitTick(t))
	tk.fire(t)
	assert.Equal(t, 0, h.rec.waitTick(t))

	sum := h.rec.waitCompleted(t)
	assert.Equal(t, 2, sum.QuestionsAnswered)
	assert.Equal(t, 3, sum.QuestionsTotal)
	assert.InDelta(t, 2.0/3.0, sum.CompletionRatio, 1e-9)
	assert.Equal(t, 2, sum.ElapsedSeconds)
	assert.True(t, sum.Expired)

	// No further submissions are accepted.
	_, err := h.engine.SubmitAnswer(ctx, "2")
	assert.ErrorIs(t, err, ErrPrecondition)
	assert.Equal(t, []string{ActionStart, ActionExpire}, h.store.actions())
}

func TestEngine_ExpiryWhileAwaitingAnswer(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	cfg := testConfig(4)
	cfg.Duration = 1
	require.NoError(t, h.engine.Start(ctx, cfg))
	h.answerCurrent(t, false)
	require.NoError(t, h.engine.Advance(ctx))

	h.ticks.latest(t).fire(t)
	sum := h.rec.waitCompleted(t)
	assert.Equal(t, 1, sum.QuestionsAnswered)
	assert.Equal(t, 0, sum.FinalScore)
}

func TestEngine_DoubleSubmitRejected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.engine.Start(ctx, testConfig(2)))

	h.answerCurrent(t, true)
	_, err := h.engine.SubmitAnswer(ctx, "2")
	var pe *PreconditionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, PhaseResult, pe.Phase)

	st, err := h.engine.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, st.Score)
	assert.Equal(t, 1, st.Answered)
}

func TestEngine_Preconditions(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	assert.ErrorIs(t, h.engine.Advance(ctx), ErrPrecondition)
	_, err := h.engine.SubmitAnswer(ctx, "1")
	assert.ErrorIs(t, err, ErrPrecondition)

	require.NoError(t, h.engine.Start(ctx, testConfig(2)))
	first, err := h.engine.Snapshot(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, h.engine.Start(ctx, testConfig(5)), ErrPrecondition)
	assert.ErrorIs(t, h.engine.Advance(ctx), ErrPrecondition)

	after, err := h.engine.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, after.SessionID)
	assert.Len(t, after.Questions, 2)
	assert.Len(t, h.ticks.list, 1, "rejected start must not start a clock")
}

func TestEngine_ResetCancelsClockWithoutSummary(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.engine.Start(ctx, testConfig(3)))
	h.answerCurrent(t, true)

	require.NoError(t, h.engine.Reset(ctx))
	st, err := h.engine.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseMenu, st.Phase)
	assert.Zero(t, st.Score)

	select {
	case h.ticks.latest(t).ch <- time.Now():
		t.Fatal("clock still running after reset")
	case <-time.After(50 * time.Millisecond):
	}
	select {
	case s := <-h.rec.completed:
		t.Fatalf("unexpected summary after reset: %+v", s)
	default:
	}
	assert.Equal(t, []string{ActionStart, ActionReset}, h.store.actions())
}

func TestEngine_RestartAfterCompletion(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.engine.Start(ctx, testConfig(1)))
	h.answerCurrent(t, true)
	require.NoError(t, h.engine.Advance(ctx))
	first := h.rec.waitCompleted(t)

	require.NoError(t, h.engine.Start(ctx, testConfig(2)))
	st, err := h.engine.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseActive, st.Phase)
	assert.NotEqual(t, first.SessionID, st.SessionID)
	assert.Zero(t, st.Score)
	assert.Len(t, h.ticks.list, 2)
}

func TestEngine_TicksUpdateRemaining(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	cfg := testConfig(2)
	cfg.Duration = 5
	require.NoError(t, h.engine.Start(ctx, cfg))

	tk := h.ticks.latest(t)
	for want := 4; want >= 2; want-- {
		tk.fire(t)
		assert.Equal(t, want, h.rec.waitTick(t))
	}
	st, err := h.engine.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Remaining)
	assert.Equal(t, 3, st.Elapsed())
}

func TestEngine_QuestionSourceErrorKeepsMenu(t *testing.T) {
	exhausted := &distractor.ExhaustedError{Family: "int-range[1,3]", Want: 4, Got: 3}
	h := newHarness(t, WithQuestionSource(func(Config) ([]*problemgen.Question, error) {
		return nil, fmt.Errorf("question 1: %w", exhausted)
	}))
	ctx := context.Background()

	err := h.engine.Start(ctx, testConfig(3))
	assert.ErrorIs(t, err, distractor.ErrExhausted)

	st, err := h.engine.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseMenu, st.Phase)
	assert.Empty(t, h.ticks.list)
}

func TestEngine_InvalidConfig(t *testing.T) {
	h := newHarness(t)
	err := h.engine.Start(context.Background(), Config{QuestionCount: 3})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEngine_StreakCelebration(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.engine.Start(ctx, testConfig(5)))
	for i := 0; i < 5; i++ {
		h.answerCurrent(t, true)
		require.NoError(t, h.engine.Advance(ctx))
	}
	h.rec.waitCompleted(t)

	h.rec.mu.Lock()
	defer h.rec.mu.Unlock()
	var kinds []rewards.Kind
	for _, c := range h.rec.celebrations {
		assert.True(t, c.Notable, "%s celebration not notable", c.Kind)
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []rewards.Kind{
		rewards.KindCorrect, rewards.KindCorrect, rewards.KindCorrect, rewards.KindCorrect,
		rewards.KindStreak, rewards.KindCompletion,
	}, kinds)
	assert.Len(t, h.rec.outcomes, 5)
	assert.Equal(t, PhaseCompleted, h.rec.phases[len(h.rec.phases)-1])
}

func TestEngine_StoreFailureDoesNotFailSession(t *testing.T) {
	h := newHarness(t)
	h.store.err = errors.New("database is locked")
	ctx := context.Background()
	require.NoError(t, h.engine.Start(ctx, testConfig(1)))
	h.answerCurrent(t, true)
	require.NoError(t, h.engine.Advance(ctx))
	assert.Equal(t, 10, h.rec.waitCompleted(t).FinalScore)
}

func TestEngine_Close(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.engine.Start(ctx, testConfig(2)))

	h.engine.Close()
	h.engine.Close()

	assert.ErrorIs(t, h.engine.Reset(ctx), ErrClosed)
	_, err := h.engine.Snapshot(ctx)
	assert.ErrorIs(t, err, ErrClosed)

	select {
	case h.ticks.latest(t).ch <- time.Now():
		t.Fatal("clock still running after close")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEngine_FactorySource(t *testing.T) {
	e := NewEngine()
	defer e.Close()
	ctx := context.Background()

	cfg := DefaultConfig()
	cfg.QuestionCount = 6
	cfg.Seed = 7
	cfg.Kinds = []problemgen.Kind{problemgen.KindFraction, problemgen.KindCode}
	require.NoError(t, e.Start(ctx, cfg))

	st, err := e.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, st.Questions, 6)
	for i, q := range st.Questions {
		assert.Equal(t, cfg.Kinds[i%2], q.Kind)
		assert.Len(t, q.Choices, 4)
	}
}

func TestProgressStores_FanOut(t *testing.T) {
	a, b := &memStore{err: errors.New("boom")}, &memStore{}
	err := ProgressStores{a, b}.RecordProgress(context.Background(), ProgressSummary{SessionID: "x"})
	assert.Error(t, err)
	assert.Len(t, a.summaries, 1)
	assert.Len(t, b.summaries, 1)
}

func TestEngine_StartAbandonedDuringGenerationKeepsMenu(t *testing.T) {
	h := newHarness(t, WithQuestionSource(func(cfg Config) ([]*problemgen.Question, error) {
		time.Sleep(100 * time.Millisecond)
		return fixedQuestions(cfg.QuestionCount), nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := h.engine.Start(ctx, testConfig(3))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	st, err := h.engine.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseMenu, st.Phase)
	h.ticks.mu.Lock()
	assert.Empty(t, h.ticks.list, "no clock may run for an abandoned start")
	h.ticks.mu.Unlock()
	assert.Empty(t, h.store.actions())

	require.NoError(t, h.engine.Start(context.Background(), testConfig(3)))
	st, err = h.engine.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseActive, st.Phase)
}

// pushClock hands ev to the engine loop as if a clock had sent it.
func (h *harness) pushClock(t *testing.T, ev clock.Event) {
	t.Helper()
	select {
	case h.engine.clockCh <- ev:
	case <-time.After(2 * time.Second):
		t.Fatal("engine did not accept clock event")
	}
}

func TestEngine_StaleClockEventsDropped(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	cfg := testConfig(3)

	require.NoError(t, h.engine.Start(ctx, cfg))
	require.NoError(t, h.engine.Reset(ctx))
	require.NoError(t, h.engine.Start(ctx, cfg))

	// Clock 1 belonged to the first session.
	h.pushClock(t, clock.Event{ClockID: 1, Kind: clock.Tick, Remaining: 5})
	h.pushClock(t, clock.Event{ClockID: 1, Kind: clock.Expired})

	st, err := h.engine.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseActive, st.Phase)
	assert.Equal(t, cfg.Duration, st.Remaining)
	assert.Empty(t, h.rec.ticks)
	assert.Empty(t, h.rec.completed)

	// The live clock still drives the session.
	h.pushClock(t, clock.Event{ClockID: 2, Kind: clock.Tick, Remaining: 59})
	assert.Equal(t, 59, h.rec.waitTick(t))
	h.pushClock(t, clock.Event{ClockID: 2, Kind: clock.Expired})
	sum := h.rec.waitCompleted(t)
	assert.True(t, sum.Expired)
	assert.Equal(t, 0, sum.QuestionsAnswered)

	h.rec.mu.Lock()
	defer h.rec.mu.Unlock()
	require.NotEmpty(t, h.rec.celebrations)
	last := h.rec.celebrations[len(h.rec.celebrations)-1]
	assert.Equal(t, rewards.KindCompletion, last.Kind)
	assert.False(t, last.Notable, "a session cut short by the clock is not notable")
}
