package syncer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/five82/batchview/internal/batch"
	"github.com/five82/batchview/internal/ident"
	"github.com/five82/batchview/internal/state"
)

// DefaultInterval is the periodic refresh cadence.
const DefaultInterval = 300 * time.Second

// ErrNoFallbackAvailable reports a failed remote fetch with no offline copy
// to substitute. It wraps the remote cause.
var ErrNoFallbackAvailable = errors.New("no offline copy available")

// Lookup finds offline copies of records. *fallback.Store implements it.
type Lookup interface {
	Lookup(id string) (batch.Record, bool)
}

// Options configure a Controller.
type Options struct {
	Fetcher batch.Fetcher
	// FetchSource labels records returned by Fetcher. Defaults to
	// state.SourceRemote; a fetcher serving the offline dataset passes
	// state.SourceFallback.
	FetchSource state.Source
	Fallback    Lookup // nil disables the offline fallback
	Store       *state.Store
	Interval    time.Duration
	Clock       Clock
	Logger      *zerolog.Logger
}

// Controller keeps the state of one bound identifier current. It fetches on
// bind, on identifier change, on Refresh and on every timer tick, with at
// most one outstanding fetch at a time.
type Controller struct {
	fetcher  batch.Fetcher
	source   state.Source
	fallback Lookup
	store    *state.Store
	interval time.Duration
	clock    Clock
	log      zerolog.Logger

	mu            sync.Mutex
	target        string
	bound         bool
	gen           uint64
	inflight      bool
	cancelAttempt context.CancelFunc
	ctx           context.Context
	cancel        context.CancelFunc
	started       bool
	stopped       bool

	loop     sync.WaitGroup
	attempts sync.WaitGroup
}

// New builds a Controller. Fetcher is required.
func New(opts Options) (*Controller, error) {
	if opts.Fetcher == nil {
		return nil, fmt.Errorf("syncer requires a fetcher")
	}
	c := &Controller{
		fetcher:  opts.Fetcher,
		source:   opts.FetchSource,
		fallback: opts.Fallback,
		store:    opts.Store,
		interval: opts.Interval,
		clock:    opts.Clock,
		log:      zerolog.Nop(),
	}
	if c.store == nil {
		c.store = &state.Store{}
	}
	if c.source == state.SourceNone {
		c.source = state.SourceRemote
	}
	if c.interval <= 0 {
		c.interval = DefaultInterval
	}
	if c.clock == nil {
		c.clock = realClock{}
	}
	if opts.Logger != nil {
		c.log = opts.Logger.With().Str("component", "syncer").Logger()
	}
	return c, nil
}

// Start arms the periodic timer and fetches the bound identifier, if any.
// The controller runs until Stop is called or ctx is cancelled.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started || c.stopped {
		return
	}
	c.started = true
	c.ctx, c.cancel = context.WithCancel(ctx)

	ticker := c.clock.NewTicker(c.interval)
	c.loop.Add(1)
	go c.run(ticker)

	c.log.Debug().Dur("interval", c.interval).Msg("sync controller started")
	if c.bound {
		c.triggerLocked("start")
	}
}

// Stop cancels the timer and any in-flight fetch, then waits for the fetch
// goroutine to return; its result is dropped. Stop is idempotent.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	c.gen++
	c.inflight = false
	if c.cancelAttempt != nil {
		c.cancelAttempt()
		c.cancelAttempt = nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()

	c.loop.Wait()
	c.attempts.Wait()
	c.log.Debug().Msg("sync controller stopped")
}

// Bind points the controller at id. An unchanged id is a no-op. A new id
// supersedes any in-flight fetch and starts a new one; a blank id moves the
// state to failed with ident.ErrMissingIdentifier.
func (c *Controller) Bind(id string) {
	id = strings.TrimSpace(id)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped || (c.bound && id == c.target) {
		return
	}
	c.target = id
	c.bound = true
	c.gen++
	c.inflight = false
	if c.cancelAttempt != nil {
		c.cancelAttempt()
		c.cancelAttempt = nil
	}

	if id == "" {
		c.log.Warn().Str("kind", "missing_identifier").Msg("no batch id bound")
		c.store.SetFailed("", ident.ErrMissingIdentifier, c.clock.Now())
		return
	}
	c.triggerLocked("bind")
}

// Refresh requests a fetch of the current identifier. It is coalesced with a
// fetch that is already outstanding.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.triggerLocked("manual")
}

// Snapshot returns the current sync state.
func (c *Controller) Snapshot() state.Snapshot {
	return c.store.Snapshot()
}

// LastUpdated is the time of the last transition into the ready state.
func (c *Controller) LastUpdated() time.Time {
	return c.store.Snapshot().LastUpdated
}

// Interval returns the refresh cadence.
func (c *Controller) Interval() time.Duration {
	return c.interval
}

func (c *Controller) run(ticker Ticker) {
	defer c.loop.Done()
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C():
			c.mu.Lock()
			c.triggerLocked("tick")
			c.mu.Unlock()
		}
	}
}

// triggerLocked starts a fetch for the current target unless one is already
// outstanding. c.mu must be held.
func (c *Controller) triggerLocked(reason string) {
	if !c.started || c.stopped || !c.bound || c.ctx.Err() != nil {
		return
	}
	if c.target == "" {
		c.store.SetFailed("", ident.ErrMissingIdentifier, c.clock.Now())
		return
	}
	if c.inflight {
		c.log.Debug().Str("identifier", c.target).Str("reason", reason).Msg("fetch already in flight; coalesced")
		return
	}

	attemptCtx, cancel := context.WithCancel(c.ctx)
	c.inflight = true
	c.cancelAttempt = cancel
	id, gen, attempt := c.target, c.gen, uuid.NewString()

	c.store.SetLoading(id)
	c.log.Debug().Str("identifier", id).Str("attempt", attempt).Str("reason", reason).Msg("fetch started")

	c.attempts.Add(1)
	go func() {
		defer c.attempts.Done()
		defer cancel()
		rec, err := c.fetcher.FetchRecord(attemptCtx, id)
		c.complete(id, gen, attempt, rec, err)
	}()
}

func (c *Controller) complete(id string, gen uint64, attempt string, rec batch.Record, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || c.stopped {
		c.log.Debug().Str("identifier", id).Str("attempt", attempt).Msg("discarding stale fetch result")
		return
	}
	if ctxErr := c.ctx.Err(); ctxErr != nil {
		// The parent context ended without Stop; no fetch will follow.
		c.inflight = false
		c.cancelAttempt = nil
		c.store.SetFailed(id, fmt.Errorf("sync stopped: %w", ctxErr), c.clock.Now())
		c.log.Debug().Str("identifier", id).Str("attempt", attempt).Msg("discarding fetch result after cancellation")
		return
	}
	c.inflight = false
	c.cancelAttempt = nil
	now := c.clock.Now()

	if err == nil {
		c.store.SetReady(id, rec, c.source, now)
		c.log.Info().Str("identifier", id).Str("attempt", attempt).Str("source", c.source.String()).Msg("batch refreshed")
		return
	}

	kind := batch.KindOf(err).String()
	if c.fallback != nil {
		if offline, ok := c.fallback.Lookup(id); ok {
			c.store.SetReady(id, offline, state.SourceFallback, now)
			c.log.Warn().Err(err).Str("identifier", id).Str("attempt", attempt).Str("kind", kind).
				Str("source", state.SourceFallback.String()).Msg("remote fetch failed; serving offline copy")
			return
		}
	}

	failure := fmt.Errorf("%w: %w", ErrNoFallbackAvailable, err)
	c.store.SetFailed(id, failure, now)
	c.log.Error().Err(err).Str("identifier", id).Str("attempt", attempt).Str("kind", kind).Msg("remote fetch failed; no offline copy")
}

// waitAttempts blocks until every fetch goroutine has returned.
func (c *Controller) waitAttempts() {
	c.attempts.Wait()
}
