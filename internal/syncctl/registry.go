package syncctl

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Elpulgo/gitspatial-tui/internal/gitspatial"
	"github.com/Elpulgo/gitspatial-tui/internal/polling"
	"github.com/Elpulgo/gitspatial-tui/internal/status"
)

// Client is everything the registry needs from the server.
type Client interface {
	SyncClient
	polling.StatusClient
}

// Registry owns one Controller per bound resource and routes messages to
// them. Controllers share a single Requester and Poller.
type Registry struct {
	client      Client
	requester   *Requester
	poller      *polling.Poller
	log         zerolog.Logger
	controllers map[gitspatial.Ref]*Controller
}

// NewRegistry creates an empty registry backed by client.
func NewRegistry(client Client, log zerolog.Logger, opts ...polling.Option) *Registry {
	return &Registry{
		client:      client,
		requester:   NewRequester(client, log),
		poller:      polling.NewPoller(client, log, opts...),
		log:         log,
		controllers: make(map[gitspatial.Ref]*Controller),
	}
}

// Poller exposes the shared poller, mainly for its connection state.
func (r *Registry) Poller() *polling.Poller { return r.poller }

// Bind attaches a controller to ref with its initial server status and
// returns the first render. Rebinding a ref tears down the previous
// controller. An initial status of syncing starts a poll loop.
func (r *Registry) Bind(ref gitspatial.Ref, initial string) (Render, tea.Cmd) {
	r.Unbind(ref)

	c := newController(ref, r.requester, r.poller, r.log)
	r.controllers[ref] = c

	render, cmd := c.Reconcile(status.Status(initial))
	return *render, cmd
}

// Unbind tears down the controller for ref, if any.
func (r *Registry) Unbind(ref gitspatial.Ref) {
	if c, ok := r.controllers[ref]; ok {
		c.Close()
		delete(r.controllers, ref)
	}
}

// Close tears down every controller and stops all polling.
func (r *Registry) Close() {
	for ref := range r.controllers {
		r.Unbind(ref)
	}
	r.poller.Stop()
}

// Get returns the controller bound to ref.
func (r *Registry) Get(ref gitspatial.Ref) (*Controller, bool) {
	c, ok := r.controllers[ref]
	return c, ok
}

// Len returns the number of bound controllers.
func (r *Registry) Len() int { return len(r.controllers) }

// Refresh returns a command that fetches the current status of ref.
func (r *Registry) Refresh(ref gitspatial.Ref) tea.Cmd {
	return func() tea.Msg {
		s, err := r.client.SyncStatus(ref)
		return RefreshedMsg{Ref: ref, Status: s, Err: err}
	}
}

// Update routes msg to the controller it belongs to. It returns the render
// instructions produced and any follow-up command.
func (r *Registry) Update(msg tea.Msg) ([]Render, tea.Cmd) {
	switch msg := msg.(type) {
	case ToggleMsg:
		c, ok := r.controllers[msg.Ref]
		if !ok {
			return nil, nil
		}
		render, cmd := c.Toggle()
		return one(render), cmd

	case StartResultMsg:
		c, ok := r.controllers[msg.Ref]
		if !ok {
			return nil, nil
		}
		render, cmd := c.OnStartResult(msg)
		return one(render), cmd

	case StopResultMsg:
		c, ok := r.controllers[msg.Ref]
		if !ok {
			return nil, nil
		}
		return one(c.OnStopResult(msg)), nil

	case RefreshedMsg:
		c, ok := r.controllers[msg.Ref]
		if !ok {
			return nil, nil
		}
		if msg.Err != nil {
			r.log.Warn().Str("ref", msg.Ref.String()).Err(msg.Err).Msg("refresh failed")
			return nil, nil
		}
		render, cmd := c.Reconcile(msg.Status)
		return one(render), cmd

	case polling.TickMsg, polling.StatusFetchedMsg:
		resolved, cmd := r.poller.Update(msg)
		if resolved == nil {
			return nil, cmd
		}
		c, ok := r.controllers[resolved.Ref]
		if !ok {
			return nil, cmd
		}
		return one(c.OnResolved(*resolved)), cmd
	}

	return nil, nil
}

func one(r *Render) []Render {
	if r == nil {
		return nil
	}
	return []Render{*r}
}
