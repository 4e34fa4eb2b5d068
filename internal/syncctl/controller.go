package syncctl

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Elpulgo/gitspatial-tui/internal/gitspatial"
	"github.com/Elpulgo/gitspatial-tui/internal/polling"
	"github.com/Elpulgo/gitspatial-tui/internal/status"
)

type pendingOp int

const (
	opNone pendingOp = iota
	opStart
	opStop
)

// CatalogFor returns the status catalog used for a resource kind.
func CatalogFor(kind gitspatial.Kind) *status.Catalog {
	if kind == gitspatial.KindFeatureSet {
		return status.FeatureSetCatalog()
	}
	return status.RepoCatalog()
}

// Controller is the sync state machine for one resource. It is not safe for
// concurrent use; all methods are called from the tea Update loop.
//
// A poll handle is held exactly while the current status is Syncing. While a
// request is outstanding the current status keeps its prior value and the
// control is not interactive.
type Controller struct {
	ref       gitspatial.Ref
	catalog   *status.Catalog
	requester *Requester
	poller    *polling.Poller
	log       zerolog.Logger

	current status.Status
	pending pendingOp
	poll    polling.Handle
	closed  bool
}

func newController(ref gitspatial.Ref, requester *Requester, poller *polling.Poller, log zerolog.Logger) *Controller {
	return &Controller{
		ref:       ref,
		catalog:   CatalogFor(ref.Kind),
		requester: requester,
		poller:    poller,
		log:       log.With().Str("ref", ref.String()).Logger(),
		current:   status.NotSynced,
	}
}

// Ref returns the resource this controller drives.
func (c *Controller) Ref() gitspatial.Ref { return c.ref }

// Status returns the last status confirmed by the server.
func (c *Controller) Status() status.Status { return c.current }

// Polling reports whether a poll loop is running for this resource.
func (c *Controller) Polling() bool { return c.poll != 0 }

// PollHandle returns the active poll handle, zero when idle.
func (c *Controller) PollHandle() polling.Handle { return c.poll }

// Requesting reports whether a start or stop request is outstanding.
func (c *Controller) Requesting() bool { return c.pending != opNone }

// Closed reports whether the controller has been torn down.
func (c *Controller) Closed() bool { return c.closed }

// Interactive reports whether a toggle would be acted on.
func (c *Controller) Interactive() bool {
	return !c.closed && c.pending == opNone && !c.current.Transient()
}

// Toggle starts or stops the sync depending on the current status. It
// returns nil when the control is not interactive.
func (c *Controller) Toggle() (*Render, tea.Cmd) {
	if !c.Interactive() {
		c.log.Debug().Str("status", string(c.current)).Msg("toggle ignored")
		return nil, nil
	}

	if c.current == status.Synced {
		c.pending = opStop
		attrs, _ := c.catalog.Lookup(status.Synced)
		return &Render{Ref: c.ref, Status: status.Synced, Attrs: attrs.Disabled()}, c.requester.Stop(c.ref)
	}

	// Not synced and every failure status retry with a fresh start.
	c.pending = opStart
	attrs, _ := c.catalog.Lookup(status.Syncing)
	return &Render{Ref: c.ref, Status: status.Syncing, Attrs: attrs}, c.requester.Start(c.ref)
}

// OnStartResult applies the outcome of a start request.
func (c *Controller) OnStartResult(msg StartResultMsg) (*Render, tea.Cmd) {
	if c.closed || c.pending != opStart {
		return nil, nil
	}
	c.pending = opNone

	if !msg.Accepted() {
		c.current = status.Error
		r := c.render(msg.Message())
		return &r, nil
	}

	c.current = status.Syncing
	var cmd tea.Cmd
	c.poll, cmd = c.poller.Begin(c.ref)
	r := c.render("")
	return &r, cmd
}

// OnStopResult applies the outcome of a stop request.
func (c *Controller) OnStopResult(msg StopResultMsg) *Render {
	if c.closed || c.pending != opStop {
		return nil
	}
	c.pending = opNone

	if !msg.Completed() {
		r := c.render(msg.Message())
		return &r
	}

	c.current = status.NotSynced
	r := c.render("")
	return &r
}

// OnResolved applies the terminal status reported by this controller's poll.
func (c *Controller) OnResolved(res polling.Resolved) *Render {
	if c.closed || c.poll == 0 || res.Handle != c.poll {
		return nil
	}
	c.poll = 0
	c.setStatus(res.Status)
	r := c.render("")
	return &r
}

// Reconcile adopts a status fetched outside of a poll loop. It is ignored
// while a request or poll is in flight.
func (c *Controller) Reconcile(s status.Status) (*Render, tea.Cmd) {
	if !c.Interactive() {
		return nil, nil
	}
	c.setStatus(s)

	var cmd tea.Cmd
	if c.current == status.Syncing {
		c.poll, cmd = c.poller.Begin(c.ref)
	}
	r := c.render("")
	return &r, cmd
}

// Close cancels any poll and drops all later results.
func (c *Controller) Close() {
	if c.poll != 0 {
		c.poller.Cancel(c.poll)
		c.poll = 0
	}
	c.closed = true
}

// setStatus records s, mapping statuses the catalog does not know to Error.
func (c *Controller) setStatus(s status.Status) {
	parsed, err := c.catalog.Parse(string(s))
	if err != nil {
		c.log.Warn().Err(err).Str("ref", c.ref.String()).Msg("showing error")
		parsed = status.Error
	}
	c.current = parsed
}

func (c *Controller) render(notice string) Render {
	attrs, _ := c.catalog.LookupOrFallback(c.current)
	return Render{Ref: c.ref, Status: c.current, Attrs: attrs, Notice: notice}
}
