// Package polling watches the sync status of resources whose sync is in
// progress, with tea.Msg types for Bubble Tea integration.
package polling

import (
	"github.com/Elpulgo/gitspatial-tui/internal/gitspatial"
	"github.com/Elpulgo/gitspatial-tui/internal/status"
)

// TickMsg is a tea.Msg sent when a poll handle's interval has elapsed.
// It signals that it's time to query the status endpoint.
type TickMsg struct {
	Handle Handle
}

// StatusFetchedMsg is a tea.Msg carrying the result of one status query.
// It contains either the reported status or an error.
type StatusFetchedMsg struct {
	Handle Handle
	Ref    gitspatial.Ref
	Status status.Status
	Err    error
}

// Resolved reports that a polled resource left the transient state.
type Resolved struct {
	Handle Handle
	Ref    gitspatial.Ref
	Status status.Status
}

// ConnectionState represents the current state of the API connection.
type ConnectionState int

const (
	// StateConnected indicates successful API communication
	StateConnected ConnectionState = iota
	// StateConnecting indicates an initial connection attempt
	StateConnecting
	// StateDisconnected indicates no active connection
	StateDisconnected
	// StateError indicates a connection error occurred
	StateError
)

// String returns a human-readable string for the connection state.
func (s ConnectionState) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateConnecting:
		return "connecting"
	case StateDisconnected:
		return "disconnected"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
