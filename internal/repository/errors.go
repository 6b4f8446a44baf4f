// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// string matching on driver errors.
package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state, such as booking a room that is already occupied for
// the requested dates. Handlers should translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUsernameExists is returned when registering a user whose username
// is already taken.
var ErrUsernameExists = errors.New("username already exists")
