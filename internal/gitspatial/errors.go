package gitspatial

import (
	"errors"
	"fmt"
)

// GenericFailureMessage is surfaced when the server gave no message of its own.
const GenericFailureMessage = "There was an error syncing."

// TransportError is a failure to reach the server or read its response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RequestRejected is a non-2xx response from the server.
type RequestRejected struct {
	StatusCode int
	// Message is the server-provided message, empty when the body had none.
	Message string
}

func (e *RequestRejected) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// FailureMessage returns the text to show the user for a failed request:
// the server's message when it sent one, otherwise a generic message.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	var rejected *RequestRejected
	if errors.As(err, &rejected) && rejected.Message != "" {
		return rejected.Message
	}
	return GenericFailureMessage
}
