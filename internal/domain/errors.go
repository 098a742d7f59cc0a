package domain

import "errors"

var (
	// ErrSessionNotFound means the user has no unfinished dialogue.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSinkNotConfigured means no destination identifier is configured.
	ErrSinkNotConfigured = errors.New("sink destination not configured")

	// ErrSinkUnavailable means the sink connection could not be established.
	ErrSinkUnavailable = errors.New("sink unavailable")
)
