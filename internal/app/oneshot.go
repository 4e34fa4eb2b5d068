package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Elpulgo/gitspatial-tui/internal/gitspatial"
	"github.com/Elpulgo/gitspatial-tui/internal/polling"
	"github.com/Elpulgo/gitspatial-tui/internal/status"
	"github.com/Elpulgo/gitspatial-tui/internal/syncctl"
)

// Op is a headless sync operation.
type Op string

const (
	OpSync   Op = "sync"
	OpUnsync Op = "unsync"
)

// ErrSyncInProgress is returned when unsyncing a resource that is syncing.
var ErrSyncInProgress = errors.New("a sync is in progress; wait for it to finish before unsyncing")

// Outcome is the settled state of a resource after a headless operation.
// Changed reports whether a start or stop request was sent.
type Outcome struct {
	Ref     gitspatial.Ref
	Initial status.Status
	Status  status.Status
	Attrs   status.DisplayAttributes
	Notice  string
	Changed bool
}

// Failed reports whether the operation ended in a failure status or with a
// request failure.
func (o Outcome) Failed() bool {
	return o.Notice != "" || o.Status.Failed()
}

type initialStatusMsg struct {
	status status.Status
	err    error
}

// oneShot drives a single controller to a settled state without a terminal.
type oneShot struct {
	client   syncctl.Client
	registry *syncctl.Registry
	ref      gitspatial.Ref
	op       Op
	log      zerolog.Logger

	outcome Outcome
	err     error
}

func (m *oneShot) Init() tea.Cmd {
	client, ref := m.client, m.ref
	return func() tea.Msg {
		s, err := client.SyncStatus(ref)
		return initialStatusMsg{status: s, err: err}
	}
}

func (m *oneShot) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if initial, ok := msg.(initialStatusMsg); ok {
		return m, m.begin(initial)
	}

	renders, cmd := m.registry.Update(msg)
	for _, r := range renders {
		m.outcome.Attrs = r.Attrs
		if r.Notice != "" {
			m.outcome.Notice = r.Notice
		}
	}
	return m, m.settleOr(cmd)
}

func (m *oneShot) View() string { return "" }

func (m *oneShot) begin(initial initialStatusMsg) tea.Cmd {
	if initial.err != nil {
		m.err = fmt.Errorf("failed to fetch sync status: %w", initial.err)
		return tea.Quit
	}

	render, cmd := m.registry.Bind(m.ref, string(initial.status))
	m.outcome.Attrs = render.Attrs
	c, _ := m.registry.Get(m.ref)
	m.outcome.Initial = c.Status()

	switch {
	case c.Status() == status.Syncing && m.op == OpUnsync:
		m.err = ErrSyncInProgress
		return tea.Quit
	case c.Status() == status.Syncing:
		m.log.Info().Str("ref", m.ref.String()).Msg("sync already in progress; waiting")
		return cmd
	case m.op == OpSync && c.Status() == status.Synced,
		m.op == OpUnsync && c.Status() != status.Synced:
		return m.settleOr(nil)
	}

	m.outcome.Changed = true
	renders, toggle := m.registry.Update(syncctl.ToggleMsg{Ref: m.ref})
	for _, r := range renders {
		m.outcome.Attrs = r.Attrs
	}
	return tea.Batch(cmd, toggle)
}

// settleOr quits once the controller is idle again, otherwise returns cmd.
func (m *oneShot) settleOr(cmd tea.Cmd) tea.Cmd {
	c, ok := m.registry.Get(m.ref)
	if !ok || !c.Interactive() {
		return cmd
	}
	m.outcome.Status = c.Status()
	return tea.Quit
}

// RunOnce starts or stops the sync of ref and waits until the server reports
// a settled status. A sync already in progress is waited on. Syncing a synced
// resource and unsyncing one that is not synced are no-ops.
func RunOnce(ctx context.Context, client syncctl.Client, ref gitspatial.Ref, op Op, log zerolog.Logger, opts ...polling.Option) (Outcome, error) {
	if op != OpSync && op != OpUnsync {
		return Outcome{}, fmt.Errorf("unknown operation %q", op)
	}

	registry := syncctl.NewRegistry(client, log, opts...)
	defer registry.Close()

	m := &oneShot{
		client:   client,
		registry: registry,
		ref:      ref,
		op:       op,
		log:      log,
		outcome:  Outcome{Ref: ref},
	}

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
	)
	if _, err := p.Run(); err != nil {
		return m.outcome, fmt.Errorf("%s %s: %w", op, ref, err)
	}
	if m.err != nil {
		return m.outcome, m.err
	}
	return m.outcome, nil
}
