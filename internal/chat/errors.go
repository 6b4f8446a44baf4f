// Package chat implements the real-time messaging core: a presence
// registry of connected guests and staff, a coordinator that validates
// and persists chat traffic, and the websocket gateway that feeds it.
package chat

import "fmt"

// ValidationError reports a client payload that failed validation. It is
// surfaced back to the sender and never terminates the connection.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// AuthError reports a failed or missing handshake. The gateway closes
// the connection after sending it.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }

// PersistenceError wraps a database failure during a chat operation.
// The operation had no lasting effect; transactional writes were rolled
// back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *PersistenceError) Unwrap() error { return e.Err }
