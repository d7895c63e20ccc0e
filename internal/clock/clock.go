// Package clock implements the per-session countdown. Each Clock runs on its
// own goroutine and reports one Tick per elapsed second followed by a single
// Expired event.
package clock

import (
	"sync"
	"time"
)

// EventKind distinguishes clock events.
type EventKind int

const (
	Tick EventKind = iota + 1
	Expired
)

func (k EventKind) String() string {
	switch k {
	case Tick:
		return "tick"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Event is delivered on the channel passed to Start.
type Event struct {
	ClockID   uint64
	Kind      EventKind
	Remaining int // seconds left; 0 on the last tick and on Expired
}

// Ticker abstracts time.Ticker so tests and simulations can drive the
// clock without waiting on the wall clock.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// NewTickerFunc creates a Ticker firing every d.
type NewTickerFunc func(d time.Duration) Ticker

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// RealTicker wraps time.NewTicker.
func RealTicker(d time.Duration) Ticker { return realTicker{time.NewTicker(d)} }

type options struct {
	newTicker NewTickerFunc
	interval  time.Duration
}

// Option configures a Clock.
type Option func(*options)

// WithTicker replaces the wall-clock ticker.
func WithTicker(f NewTickerFunc) Option {
	return func(o *options) { o.newTicker = f }
}

// WithInterval sets how long one clock second lasts. Simulations use a
// shorter interval to play sessions faster than real time.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// Clock is a running countdown. The zero value is not usable; call Start.
type Clock struct {
	id   uint64
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Start launches a countdown of the given number of seconds. Events are
// sent on out; a send blocks until it is received or the clock is
// cancelled. A non-positive duration expires immediately.
func Start(id uint64, seconds int, out chan<- Event, opts ...Option) *Clock {
	o := options{newTicker: RealTicker, interval: time.Second}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Clock{
		id:   id,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go c.run(seconds, out, o.newTicker(o.interval))
	return c
}

func (c *Clock) run(seconds int, out chan<- Event, ticker Ticker) {
	defer close(c.done)
	defer ticker.Stop()

	send := func(ev Event) bool {
		select {
		case out <- ev:
			return true
		case <-c.stop:
			return false
		}
	}

	for remaining := seconds; remaining > 0; {
		select {
		case <-ticker.C():
		case <-c.stop:
			return
		}
		remaining--
		if !send(Event{ClockID: c.id, Kind: Tick, Remaining: remaining}) {
			return
		}
	}
	send(Event{ClockID: c.id, Kind: Expired})
}

// ID returns the identifier given to Start.
func (c *Clock) ID() uint64 { return c.id }

// Cancel stops the clock and waits for its goroutine to exit. No event is
// sent after Cancel returns. Calling Cancel more than once is safe.
func (c *Clock) Cancel() {
	c.once.Do(func() { close(c.stop) })
	<-c.done
}

// Done is closed once the clock goroutine has exited, either after
// Expired was delivered or after Cancel.
func (c *Clock) Done() <-chan struct{} { return c.done }
