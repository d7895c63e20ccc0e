// Package session runs timed quiz sessions: question generation, scoring,
// the countdown, and the Menu → Active → Result → Completed lifecycle.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/stemarcade/internal/clock"
	"github.com/abhisek/stemarcade/internal/problemgen"
	"github.com/abhisek/stemarcade/internal/rewards"
	"github.com/abhisek/stemarcade/internal/scoring"
)

// persistTimeout bounds each best-effort write to a collaborator store.
const persistTimeout = 5 * time.Second

// QuestionSource builds the fixed question list for a session.
type QuestionSource func(cfg Config) ([]*problemgen.Question, error)

// FactorySource generates questions with a problemgen.Factory seeded from
// cfg.Seed.
func FactorySource(cfg Config) ([]*problemgen.Question, error) {
	f := problemgen.NewFactory(problemgen.NewRand(cfg.Seed), problemgen.DefaultConfig())
	return f.BuildSet(cfg.Kinds, cfg.Difficulty, cfg.QuestionCount)
}

type options struct {
	listener  Listener
	progress  ProgressStore
	answers   AnswerRecorder
	events    SessionEventRecorder
	rewards   *rewards.Service
	questions QuestionSource
	clockOpts []clock.Option
	player    string
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// Option configures an Engine.
type Option func(*options)

// WithListener sets the observer notified of engine events.
func WithListener(l Listener) Option {
	return func(o *options) { o.listener = l }
}

// WithProgressStore sets where completed-session summaries go.
func WithProgressStore(ps ProgressStore) Option {
	return func(o *options) { o.progress = ps }
}

// WithAnswerRecorder records every graded answer.
func WithAnswerRecorder(ar AnswerRecorder) Option {
	return func(o *options) { o.answers = ar }
}

// WithSessionEventRecorder records session lifecycle events.
func WithSessionEventRecorder(r SessionEventRecorder) Option {
	return func(o *options) { o.events = r }
}

// WithRewards sets the celebration service.
func WithRewards(s *rewards.Service) Option {
	return func(o *options) { o.rewards = s }
}

// WithQuestionSource replaces FactorySource.
func WithQuestionSource(src QuestionSource) Option {
	return func(o *options) { o.questions = src }
}

// WithClockOptions passes options to every clock the engine starts.
func WithClockOptions(opts ...clock.Option) Option {
	return func(o *options) { o.clockOpts = append(o.clockOpts, opts...) }
}

// WithPlayer names the player in progress summaries.
func WithPlayer(name string) Option {
	return func(o *options) { o.player = name }
}

// WithLogger sets the engine logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// request is a unit of work executed on the engine goroutine.
type request struct {
	fn   func()
	done chan struct{}
}

// Engine owns one session State and serializes every mutation on a single
// goroutine: public calls and clock events are handled in one select loop.
type Engine struct {
	opts options

	requests chan request
	clockCh  chan clock.Event
	quit     chan struct{}
	done     chan struct{}
	once     sync.Once

	// Owned by the loop goroutine.
	state       State
	clk         *clock.Clock
	nextClockID uint64
}

// NewEngine creates an Engine in the Menu phase and starts its goroutine.
// Call Close to release it.
func NewEngine(opts ...Option) *Engine {
	o := options{
		listener:  NopListener{},
		questions: FactorySource,
		logger:    slog.Default(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rewards == nil {
		o.rewards = rewards.NewService(nil, o.logger)
	}

	e := &Engine{
		opts:     o,
		requests: make(chan request),
		clockCh:  make(chan clock.Event),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		state:    NewState(),
	}
	go e.loop()
	return e
}

func (e *Engine) loop() {
	defer close(e.done)
	for {
		select {
		case req := <-e.requests:
			req.fn()
			close(req.done)
		case ev := <-e.clockCh:
			e.handleClock(ev)
		case <-e.quit:
			e.stopClock()
			return
		}
	}
}

// do runs fn on the engine goroutine and waits for it to finish. ctx bounds
// only the wait for the loop to accept the request; an accepted fn always
// runs to completion and its result is reported.
func (e *Engine) do(ctx context.Context, fn func()) error {
	req := request{fn: fn, done: make(chan struct{})}
	select {
	case e.requests <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-e.done:
		return ErrClosed
	}
	<-req.done
	return nil
}

// Start begins a new session. It is allowed from Menu and Completed; on
// error the engine stays in its current phase.
func (e *Engine) Start(ctx context.Context, cfg Config) error {
	cfg = cfg.clone()
	if err := cfg.Validate(); err != nil {
		return err
	}

	var err error
	if doErr := e.do(ctx, func() { err = e.start(ctx, cfg) }); doErr != nil {
		return doErr
	}
	return err
}

func (e *Engine) start(ctx context.Context, cfg Config) error {
	if e.state.Phase != PhaseMenu && e.state.Phase != PhaseCompleted {
		return &PreconditionError{Op: "start", Phase: e.state.Phase}
	}

	questions, err := e.opts.questions(cfg)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	if len(questions) == 0 {
		return fmt.Errorf("start session: %w: no questions generated", ErrInvalidConfig)
	}
	// Generation can be slow; a caller that gave up meanwhile gets an
	// error and the engine stays where it was.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	cfg.QuestionCount = len(questions)

	e.stopClock()
	if err := e.state.Begin(cfg, questions, e.opts.newID(), e.opts.now()); err != nil {
		return err
	}

	e.nextClockID++
	e.clk = clock.Start(e.nextClockID, cfg.Duration, e.clockCh, e.opts.clockOpts...)
	e.opts.rewards.ResetSession()

	e.opts.logger.Info("session started",
		"session_id", e.state.SessionID,
		"game", cfg.Game,
		"questions", len(questions),
		"duration", cfg.Duration,
		"difficulty", cfg.Difficulty,
	)
	e.recordEvent(ActionStart)
	e.opts.listener.OnPhaseChange(PhaseActive)
	return nil
}

// SubmitAnswer grades value against the current question. It is allowed
// only in Active, so a second submission for the same question fails with
// a *PreconditionError and leaves the score untouched.
func (e *Engine) SubmitAnswer(ctx context.Context, value string) (scoring.Outcome, error) {
	var out scoring.Outcome
	var err error
	if doErr := e.do(ctx, func() { out, err = e.submit(value) }); doErr != nil {
		return scoring.Outcome{}, doErr
	}
	return out, err
}

func (e *Engine) submit(value string) (scoring.Outcome, error) {
	q := e.state.CurrentQuestion()
	out, err := e.state.Submit(value)
	if err != nil {
		return out, err
	}

	if e.opts.answers != nil {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		rec := AnswerRecord{
			SessionID:     e.state.SessionID,
			Game:          e.state.Config.Game,
			QuestionIndex: e.state.CurrentIndex,
			Kind:          q.Kind,
			Difficulty:    q.Difficulty,
			QuestionText:  q.Text,
			CorrectAnswer: q.Answer,
			Selected:      value,
			Correct:       out.Correct,
			Points:        out.Points,
			Streak:        out.Streak,
			Timestamp:     e.opts.now(),
		}
		if err := e.opts.answers.RecordAnswer(ctx, rec); err != nil {
			e.opts.logger.Warn("record answer", "session_id", e.state.SessionID, "error", err)
		}
		cancel()
	}

	e.opts.listener.OnOutcome(out)
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	if c, ok := e.opts.rewards.ForAnswer(ctx, e.state.SessionID, out.Correct, out.Streak); ok {
		e.opts.listener.OnCelebrate(c)
	}
	cancel()
	e.opts.listener.OnPhaseChange(PhaseResult)
	return out, nil
}

// Advance moves past the result of the current question. After the last
// question the session completes and its summary is emitted.
func (e *Engine) Advance(ctx context.Context) error {
	var err error
	if doErr := e.do(ctx, func() { err = e.advance() }); doErr != nil {
		return doErr
	}
	return err
}

func (e *Engine) advance() error {
	completed, err := e.state.Advance()
	if err != nil {
		return err
	}
	if completed {
		e.complete()
		return nil
	}
	e.opts.listener.OnPhaseChange(PhaseActive)
	return nil
}

// Reset abandons any running session without emitting a summary and
// returns to Menu.
func (e *Engine) Reset(ctx context.Context) error {
	return e.do(ctx, func() {
		running := e.state.Phase == PhaseActive || e.state.Phase == PhaseResult
		e.stopClock()
		if running {
			e.recordEvent(ActionReset)
		}
		e.state.Reset()
		e.opts.listener.OnPhaseChange(PhaseMenu)
	})
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot(ctx context.Context) (State, error) {
	var st State
	if err := e.do(ctx, func() { st = e.state.Clone() }); err != nil {
		return State{}, err
	}
	return st, nil
}

// Close cancels the clock and stops the engine goroutine. Later calls to
// other methods return ErrClosed. Close is idempotent.
func (e *Engine) Close() {
	e.once.Do(func() { close(e.quit) })
	<-e.done
}

func (e *Engine) handleClock(ev clock.Event) {
	if e.clk == nil || ev.ClockID != e.clk.ID() {
		e.opts.logger.Debug("dropping stale clock event", "clock_id", ev.ClockID, "kind", ev.Kind)
		return
	}
	switch ev.Kind {
	case clock.Tick:
		e.state.Tick(ev.Remaining)
		e.opts.listener.OnTick(e.state.Remaining)
	case clock.Expired:
		if err := e.state.Expire(); err != nil {
			e.opts.logger.Debug("ignoring expiry", "error", err)
			return
		}
		e.complete()
	}
}

// complete finalizes a session that has just entered Completed.
func (e *Engine) complete() {
	e.stopClock()

	summary := BuildSummary(&e.state, e.opts.player, e.opts.now())
	action := ActionEnd
	if summary.Expired {
		action = ActionExpire
	}
	e.opts.logger.Info("session completed",
		"session_id", summary.SessionID,
		"score", summary.FinalScore,
		"answered", summary.QuestionsAnswered,
		"total", summary.QuestionsTotal,
		"expired", summary.Expired,
	)
	e.recordEvent(action)
	e.opts.listener.OnPhaseChange(PhaseCompleted)

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	e.opts.listener.OnCelebrate(e.opts.rewards.ForCompletion(ctx, summary.SessionID, summary.CorrectAnswers, summary.QuestionsTotal, summary.Expired))
	e.opts.listener.OnCompleted(summary)

	if e.opts.progress != nil {
		if err := e.opts.progress.RecordProgress(ctx, summary); err != nil {
			e.opts.logger.Warn("record progress", "session_id", summary.SessionID, "error", err)
		}
	}
}

func (e *Engine) stopClock() {
	if e.clk != nil {
		e.clk.Cancel()
		e.clk = nil
	}
}

func (e *Engine) recordEvent(action string) {
	if e.opts.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	ev := SessionEvent{
		SessionID:     e.state.SessionID,
		Action:        action,
		Game:          e.state.Config.Game,
		QuestionCount: len(e.state.Questions),
		Timestamp:     e.opts.now(),
	}
	if err := e.opts.events.RecordSessionEvent(ctx, ev); err != nil {
		e.opts.logger.Warn("record session event", "session_id", ev.SessionID, "action", action, "error", err)
	}
}
