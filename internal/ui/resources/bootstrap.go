package resources

import (
	"golang.org/x/sync/errgroup"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Elpulgo/gitspatial-tui/internal/gitspatial"
	"github.com/Elpulgo/gitspatial-tui/internal/polling"
	"github.com/Elpulgo/gitspatial-tui/internal/status"
)

// maxConcurrentFetches bounds the initial status queries.
const maxConcurrentFetches = 4

// FetchResult is the initial status of one resource.
type FetchResult struct {
	Ref    gitspatial.Ref
	Status status.Status
	Err    error
}

// StatusesLoadedMsg carries the initial status of every row, in row order.
type StatusesLoadedMsg struct {
	Results []FetchResult
}

// Err returns the last fetch error when no status could be fetched at all.
func (msg StatusesLoadedMsg) Err() error {
	var last error
	for _, r := range msg.Results {
		if r.Err == nil {
			return nil
		}
		last = r.Err
	}
	return last
}

// fetchStatuses queries every ref concurrently. A failed query is reported in
// its result and does not cancel the others.
func fetchStatuses(client polling.StatusClient, refs []gitspatial.Ref) tea.Cmd {
	return func() tea.Msg {
		results := make([]FetchResult, len(refs))

		var g errgroup.Group
		g.SetLimit(maxConcurrentFetches)
		for i, ref := range refs {
			i, ref := i, ref
			g.Go(func() error {
				s, err := client.SyncStatus(ref)
				results[i] = FetchResult{Ref: ref, Status: s, Err: err}
				return nil
			})
		}
		_ = g.Wait()

		return StatusesLoadedMsg{Results: results}
	}
}
