// Package game implements the round controller of the reaction test: the
// Waiting -> Ready -> resolved state machine, its two timers, and the session
// statistics.
package game

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/naveenspark/reflex/internal/config"
	"github.com/naveenspark/reflex/pkg/domain"
)

// ErrNotFinished is returned by Final while attempts remain.
var ErrNotFinished = errors.New("game still in progress")

// FiredKind identifies which round timer expired.
type FiredKind int

const (
	FiredReady FiredKind = iota + 1
	FiredTimeout
)

func (k FiredKind) String() string {
	switch k {
	case FiredReady:
		return "ready"
	case FiredTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Fired is sent to the notify function when a round timer expires. It must be
// passed back to Controller.Fire on the goroutine that drives the controller.
type Fired struct {
	Kind FiredKind
	Seq  uint64 // round the timer belongs to
}

// Event describes what an operation did.
type Event struct {
	Outcome  domain.Outcome
	Elapsed  time.Duration // set for OutcomeValid
	Stats    domain.Stats  // running stats after OutcomeValid
	Finished bool          // the attempt limit was reached
}

// round is the state of one attempt. It is discarded when the attempt resolves.
type round struct {
	seq       uint64
	status    domain.Status
	target    Target
	startedAt time.Time // set on entering StatusReady
	ready     clockwork.Timer
	timeout   clockwork.Timer
}

// Controller runs a game session. It is not safe for concurrent use: all
// methods must be called from one goroutine (the UI event loop). Timer
// callbacks only call notify and never touch controller state.
type Controller struct {
	cfg    config.Config
	clock  clockwork.Clock
	notify func(Fired)
	rng    *rand.Rand
	log    zerolog.Logger

	session  *domain.Session
	round    *round
	seq      uint64
	finished bool
	final    domain.Stats
	finalErr error
}

// New creates a controller. notify is called from timer goroutines, so it
// should hand the value off and return.
func New(cfg config.Config, clock clockwork.Clock, notify func(Fired), opts ...Option) *Controller {
	c := &Controller{
		cfg:    cfg,
		clock:  clock,
		notify: notify,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		seed := uint64(cfg.Seed)
		if seed == 0 {
			seed = uint64(clock.Now().UnixNano())
		}
		c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return c
}

// StartGame discards any previous session and begins round 0 of a new one.
func (c *Controller) StartGame() Event {
	c.cancelRound()
	c.session = domain.NewSession(c.cfg.Attempts, c.clock.Now())
	c.finished = false
	c.final = domain.Stats{}
	c.finalErr = nil

	c.log.Info().
		Str("session_id", c.session.ID.String()).
		Int("attempts", c.cfg.Attempts).
		Msg("game started")

	return c.advance(Event{})
}

// Click handles a click on the target. Before ready it is an early click,
// after ready it records a reaction time. Clicks with no armed round are ignored.
func (c *Controller) Click() Event {
	r := c.round
	if r == nil {
		return Event{}
	}
	if r.status == domain.StatusWaiting {
		return c.earlyClick()
	}
	return c.validClick()
}

// Fire applies a timer expiry. Expiries from rounds that already resolved
// are dropped.
func (c *Controller) Fire(f Fired) Event {
	r := c.round
	if r == nil || f.Seq != r.seq {
		c.log.Debug().
			Str("kind", f.Kind.String()).
			Uint64("seq", f.Seq).
			Msg("dropped stale timer")
		return Event{}
	}

	switch f.Kind {
	case FiredReady:
		if r.status != domain.StatusWaiting {
			return Event{}
		}
		r.status = domain.StatusReady
		r.startedAt = c.clock.Now()
		r.ready = nil
		c.log.Debug().
			Str("session_id", c.session.ID.String()).
			Int("attempt", c.session.Attempt()).
			Msg("round ready")
		return Event{Outcome: domain.OutcomeReady}

	case FiredTimeout:
		c.cancelRound()
		c.session.Skip()
		c.logResolved(domain.OutcomeTimeout, 0)
		return c.advance(Event{Outcome: domain.OutcomeTimeout})
	}
	return Event{}
}

// Stop cancels any pending timers. The session is left as it is.
func (c *Controller) Stop() {
	c.cancelRound()
}

func (c *Controller) earlyClick() Event {
	// Both timers go: a surviving ready timer would flip the next round early.
	c.cancelRound()
	c.session.Skip()
	c.logResolved(domain.OutcomeEarly, 0)
	return c.advance(Event{Outcome: domain.OutcomeEarly})
}

func (c *Controller) validClick() Event {
	elapsed := c.clock.Since(c.round.startedAt)
	c.cancelRound()
	c.session.Record(elapsed)
	c.logResolved(domain.OutcomeValid, elapsed)

	ev := Event{Outcome: domain.OutcomeValid, Elapsed: elapsed}
	ev.Stats, _ = c.session.Stats() // at least one time was just recorded
	return c.advance(ev)
}

// advance starts the next round, or finalizes when no attempts remain.
func (c *Controller) advance(ev Event) Event {
	c.startNewRound()
	ev.Finished = c.finished
	return ev
}

func (c *Controller) startNewRound() {
	if c.session.Done() {
		c.finalize()
		return
	}

	c.cancelRound()
	c.seq++
	seq := c.seq
	notify := c.notify

	r := &round{
		seq:    seq,
		status: domain.StatusWaiting,
		target: randomTarget(c.rng, c.cfg.Arena, c.cfg.Target),
	}
	delay := c.readyDelay()
	r.ready = c.clock.AfterFunc(delay, func() {
		notify(Fired{Kind: FiredReady, Seq: seq})
	})
	r.timeout = c.clock.AfterFunc(c.cfg.Timeout, func() {
		notify(Fired{Kind: FiredTimeout, Seq: seq})
	})
	c.round = r

	c.log.Debug().
		Str("session_id", c.session.ID.String()).
		Int("attempt", c.session.Attempt()).
		Uint64("seq", seq).
		Dur("ready_delay", delay).
		Str("shape", r.target.Shape.String()).
		Msg("round armed")
}

func (c *Controller) finalize() {
	c.cancelRound()
	c.finished = true
	c.final, c.finalErr = c.session.Stats()

	evt := c.log.Info().
		Str("session_id", c.session.ID.String()).
		Int("valid", len(c.session.Times))
	if c.finalErr == nil {
		evt = evt.Dur("average", c.final.Average).Dur("best", c.final.Best)
	}
	evt.Msg("game finished")
}

// cancelRound stops both timers of the active round and forgets it.
func (c *Controller) cancelRound() {
	r := c.round
	if r == nil {
		return
	}
	if r.ready != nil {
		r.ready.Stop()
	}
	if r.timeout != nil {
		r.timeout.Stop()
	}
	c.round = nil
}

// readyDelay draws uniformly from [ReadyDelayMin, ReadyDelayMax).
func (c *Controller) readyDelay() time.Duration {
	d := c.cfg.ReadyDelayMin
	if span := c.cfg.ReadyDelayMax - c.cfg.ReadyDelayMin; span > 0 {
		d += time.Duration(c.rng.Int64N(int64(span)))
	}
	return d
}

func (c *Controller) logResolved(o domain.Outcome, elapsed time.Duration) {
	c.log.Debug().
		Str("session_id", c.session.ID.String()).
		Int("attempt", c.session.CurrentAttempt).
		Str("outcome", o.String()).
		Dur("elapsed", elapsed).
		Msg("round resolved")
}

// Session returns a copy of the current session. The zero Session is
// returned before the first StartGame.
func (c *Controller) Session() domain.Session {
	if c.session == nil {
		return domain.Session{}
	}
	return c.session.Clone()
}

// Status is the status of the active round, or StatusIdle when none is armed.
func (c *Controller) Status() domain.Status {
	if c.round == nil {
		return domain.StatusIdle
	}
	return c.round.status
}

// Target returns the active round's target.
func (c *Controller) Target() (Target, bool) {
	if c.round == nil {
		return Target{}, false
	}
	return c.round.target, true
}

// Stats are the running statistics of the current session.
func (c *Controller) Stats() (domain.Stats, error) {
	if c.session == nil {
		return domain.Stats{}, domain.ErrNoTimes
	}
	return c.session.Stats()
}

// Finished reports whether the session has used all its attempts.
func (c *Controller) Finished() bool {
	return c.finished
}

// Final returns the final statistics once the session is finished.
// A session without a single valid click yields domain.ErrNoTimes.
func (c *Controller) Final() (domain.Stats, error) {
	if !c.finished {
		return domain.Stats{}, ErrNotFinished
	}
	return c.final, c.finalErr
}
