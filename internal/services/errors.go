package services

import "errors"

// Failure taxonomy for the community services. Handlers map these onto HTTP
// status codes; anything else is treated as an internal error.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrNotAuthor    = errors.New("only the author may do this")
	ErrEventFull    = errors.New("event is at capacity")
)
