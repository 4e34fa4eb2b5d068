// Package syncctl drives the sync lifecycle of individual resources: it turns
// user toggles into start/stop requests, polls while a sync is in progress,
// and emits render instructions for the view.
package syncctl

import (
	"github.com/Elpulgo/gitspatial-tui/internal/gitspatial"
	"github.com/Elpulgo/gitspatial-tui/internal/status"
)

// ToggleMsg is the user's request to flip a resource's sync state.
type ToggleMsg struct {
	Ref gitspatial.Ref
}

// StartResultMsg is the outcome of a start request.
type StartResultMsg struct {
	Ref gitspatial.Ref
	Err error
}

// Accepted reports whether the server began the sync.
func (m StartResultMsg) Accepted() bool { return m.Err == nil }

// Message returns the failure text to surface, empty when accepted.
func (m StartResultMsg) Message() string { return gitspatial.FailureMessage(m.Err) }

// StopResultMsg is the outcome of a stop request.
type StopResultMsg struct {
	Ref gitspatial.Ref
	Err error
}

// Completed reports whether the server unsynced the resource.
func (m StopResultMsg) Completed() bool { return m.Err == nil }

// Message returns the failure text to surface, empty when completed.
func (m StopResultMsg) Message() string { return gitspatial.FailureMessage(m.Err) }

// RefreshedMsg carries a status fetched outside of a poll loop.
type RefreshedMsg struct {
	Ref    gitspatial.Ref
	Status status.Status
	Err    error
}

// Render is a render instruction for one resource's control.
type Render struct {
	Ref gitspatial.Ref
	// Status is the status whose attributes are shown. While a start request
	// is outstanding this is Syncing even though the server has not said so.
	Status status.Status
	Attrs  status.DisplayAttributes
	// Notice is a failure message the view must surface to the user.
	Notice string
}
