package domain

import "errors"

// Error taxonomy surfaced by the assistant service. Handlers map these to
// status codes; raw provider/storage detail stays in the logs.
var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrEmptyMessage       = errors.New("message is empty")
	ErrInvalidImage       = errors.New("invalid image")
	ErrModelUnavailable   = errors.New("model unavailable")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
