package entities

import "errors"

// Domain errors
var (
	// Structural preconditions; these abort a run before any model call.
	ErrEmptyTranscript = errors.New("empty transcript: no parseable speech events")
	ErrUnknownModel    = errors.New("unknown model: no limits entry")

	// Run-level errors
	ErrAllChunksFailed = errors.New("all chunks failed")
	ErrRunNotFound     = errors.New("pipeline run not found")
	ErrDocNotFound     = errors.New("document not found")

	// Generic errors
	ErrInvalidRequest = errors.New("invalid request")
	ErrUnauthorized   = errors.New("unauthorized")
)
