package polling

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Elpulgo/gitspatial-tui/internal/gitspatial"
	"github.com/Elpulgo/gitspatial-tui/internal/metrics"
	"github.com/Elpulgo/gitspatial-tui/internal/status"
)

// Interval is the fixed delay between the end of one status query and the
// start of the next.
const Interval = 3 * time.Second

// StatusClient defines the interface for querying a resource's sync status.
// This allows for easy testing with mock clients.
type StatusClient interface {
	SyncStatus(ref gitspatial.Ref) (status.Status, error)
}

// Handle identifies one poll loop. The zero Handle is never issued.
type Handle uint64

// Poller runs one status poll loop per resource. Each loop is driven by
// messages: a TickMsg triggers a query, the StatusFetchedMsg it produces
// either schedules the next tick or resolves the loop. A new tick is only
// scheduled after the previous query's result has been handled, so a slow
// server never accumulates queries for the same handle.
type Poller struct {
	client   StatusClient
	interval time.Duration
	errors   *ErrorHandler
	log      zerolog.Logger

	mu     sync.Mutex
	next   Handle
	active map[Handle]gitspatial.Ref
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval overrides the delay between queries. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// NewPoller creates a new Poller with the given client.
func NewPoller(client StatusClient, log zerolog.Logger, opts ...Option) *Poller {
	p := &Poller{
		client:   client,
		interval: Interval,
		errors:   NewErrorHandler(),
		log:      log,
		active:   make(map[Handle]gitspatial.Ref),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Errors returns the handler tracking transient poll failures.
func (p *Poller) Errors() *ErrorHandler {
	return p.errors
}

// Begin starts a poll loop for ref and returns its handle together with the
// command that schedules the first tick.
func (p *Poller) Begin(ref gitspatial.Ref) (Handle, tea.Cmd) {
	p.mu.Lock()
	p.next++
	h := p.next
	p.active[h] = ref
	metrics.PollsActive.Set(float64(len(p.active)))
	p.mu.Unlock()

	p.log.Debug().Uint64("handle", uint64(h)).Str("ref", ref.String()).Msg("poll started")
	return h, p.schedule(h)
}

// Cancel stops the poll loop. Ticks and results already in flight for the
// handle are dropped when they arrive. Cancelling an unknown, finished or
// already cancelled handle does nothing.
func (p *Poller) Cancel(h Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.active[h]; !ok {
		return
	}
	delete(p.active, h)
	metrics.PollsActive.Set(float64(len(p.active)))
	p.log.Debug().Uint64("handle", uint64(h)).Msg("poll cancelled")
}

// Stop cancels every poll loop.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.active = make(map[Handle]gitspatial.Ref)
	metrics.PollsActive.Set(0)
}

// Active reports whether the handle's loop is still running.
func (p *Poller) Active(h Handle) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok := p.active[h]
	return ok
}

// ActiveCount returns the number of running loops.
func (p *Poller) ActiveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.active)
}

func (p *Poller) lookup(h Handle) (gitspatial.Ref, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ref, ok := p.active[h]
	return ref, ok
}

// schedule returns a tea.Cmd that sends a TickMsg after the interval.
// tea.Tick fires once; the next tick is scheduled only after the fetch returns.
func (p *Poller) schedule(h Handle) tea.Cmd {
	return tea.Tick(p.interval, func(time.Time) tea.Msg {
		return TickMsg{Handle: h}
	})
}

// fetch returns a tea.Cmd that queries the status endpoint.
func (p *Poller) fetch(h Handle, ref gitspatial.Ref) tea.Cmd {
	return func() tea.Msg {
		st, err := p.client.SyncStatus(ref)
		return StatusFetchedMsg{
			Handle: h,
			Ref:    ref,
			Status: st,
			Err:    err,
		}
	}
}

// Update handles the poller's own messages. It returns a non-nil Resolved
// exactly once per handle, when the queried status is anything other than
// syncing; the handle is released before it is returned. Messages for
// handles that are no longer active are ignored.
func (p *Poller) Update(msg tea.Msg) (*Resolved, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		ref, ok := p.lookup(msg.Handle)
		if !ok {
			return nil, nil
		}
		return nil, p.fetch(msg.Handle, ref)

	case StatusFetchedMsg:
		if !p.Active(msg.Handle) {
			return nil, nil
		}
		kind := string(msg.Ref.Kind)

		if msg.Err != nil {
			p.errors.SetError(msg.Err)
			metrics.RecordPoll(kind, "error")
			p.log.Debug().
				Uint64("handle", uint64(msg.Handle)).
				Str("ref", msg.Ref.String()).
				Int("consecutive_errors", p.errors.ConsecutiveErrors()).
				Err(msg.Err).
				Msg("status poll failed, retrying on next tick")
			return nil, p.schedule(msg.Handle)
		}
		p.errors.ClearError()

		if msg.Status.Transient() {
			metrics.RecordPoll(kind, "syncing")
			return nil, p.schedule(msg.Handle)
		}

		metrics.RecordPoll(kind, "terminal")
		p.Cancel(msg.Handle)
		p.log.Debug().
			Uint64("handle", uint64(msg.Handle)).
			Str("ref", msg.Ref.String()).
			Str("status", string(msg.Status)).
			Msg("poll resolved")
		return &Resolved{Handle: msg.Handle, Ref: msg.Ref, Status: msg.Status}, nil
	}

	return nil, nil
}
