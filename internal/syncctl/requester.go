package syncctl

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Elpulgo/gitspatial-tui/internal/gitspatial"
	"github.com/Elpulgo/gitspatial-tui/internal/metrics"
)

// SyncClient issues the state-changing requests.
type SyncClient interface {
	StartSync(ref gitspatial.Ref) error
	StopSync(ref gitspatial.Ref) error
}

// Requester wraps start and stop requests as tea.Cmds. Each command makes
// exactly one call and never retries; callers must not issue a second
// request for a resource while one is outstanding.
type Requester struct {
	client SyncClient
	log    zerolog.Logger
}

// NewRequester creates a Requester.
func NewRequester(client SyncClient, log zerolog.Logger) *Requester {
	return &Requester{client: client, log: log}
}

// Start returns a command that asks the server to begin syncing ref.
func (r *Requester) Start(ref gitspatial.Ref) tea.Cmd {
	return func() tea.Msg {
		err := r.client.StartSync(ref)
		metrics.RecordRequest(string(ref.Kind), "start", err)
		if err != nil {
			r.log.Warn().Str("ref", ref.String()).Err(err).Msg("start sync failed")
		} else {
			r.log.Info().Str("ref", ref.String()).Msg("sync started")
		}
		return StartResultMsg{Ref: ref, Err: err}
	}
}

// Stop returns a command that asks the server to unsync ref.
func (r *Requester) Stop(ref gitspatial.Ref) tea.Cmd {
	return func() tea.Msg {
		err := r.client.StopSync(ref)
		metrics.RecordRequest(string(ref.Kind), "stop", err)
		if err != nil {
			r.log.Warn().Str("ref", ref.String()).Err(err).Msg("stop sync failed")
		} else {
			r.log.Info().Str("ref", ref.String()).Msg("sync stopped")
		}
		return StopResultMsg{Ref: ref, Err: err}
	}
}
