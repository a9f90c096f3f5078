package store

import "errors"

// Domain error kinds. Handlers map these to HTTP responses; the store never
// formats transport-level output. A record that exists but belongs to another
// user is reported as ErrNotFound, identical to one that does not exist.
var (
	ErrNotFound     = errors.New("record not found")
	ErrConflict     = errors.New("duplicate record")
	ErrValidation   = errors.New("invalid input")
	ErrPrecondition = errors.New("operation not allowed")
)
