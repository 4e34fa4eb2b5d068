package polling

import (
	"sync"
	"time"
)

// MaxRecoverableErrors is the threshold after which errors are considered non-recoverable.
const MaxRecoverableErrors = 5

// ErrorHandler tracks transient poll failures. A failed tick never stops
// polling; the handler only records it so the UI can report the connection.
type ErrorHandler struct {
	currentError      error
	consecutiveErrors int
	lastSuccessTime   time.Time
	mu                sync.RWMutex
}

// NewErrorHandler creates a new ErrorHandler.
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// SetError sets the current error and increments the consecutive error count.
func (h *ErrorHandler) SetError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.currentError = err
	h.consecutiveErrors++
}

// ClearError clears the current error and resets the consecutive error count.
func (h *ErrorHandler) ClearError() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.currentError = nil
	h.consecutiveErrors = 0
	h.lastSuccessTime = time.Now()
}

// ConsecutiveErrors returns the number of consecutive errors.
func (h *ErrorHandler) ConsecutiveErrors() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.consecutiveErrors
}

// State maps the error history onto a connection state.
func (h *ErrorHandler) State() ConnectionState {
	h.mu.RLock()
	defer h.mu.RUnlock()

	switch {
	case h.currentError == nil && h.lastSuccessTime.IsZero():
		return StateConnecting
	case h.currentError == nil:
		return StateConnected
	case h.consecutiveErrors <= MaxRecoverableErrors:
		return StateConnecting
	default:
		return StateError
	}
}

// RecoveryMessage returns a user-friendly message about the error state.
func (h *ErrorHandler) RecoveryMessage() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.currentError == nil {
		return ""
	}

	if h.consecutiveErrors <= MaxRecoverableErrors {
		return "Connection issue. Retrying..."
	}
	return "Connection failed. Still retrying every few seconds."
}
