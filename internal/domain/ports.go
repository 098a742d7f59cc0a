package domain

import "context"

// SessionStore defines session persistence, keyed by user. Implementations
// must be safe for concurrent use across different user keys; the dialogue
// layer assumes the transport serializes events for any single user.
type SessionStore interface {
	// Get returns the user's live session, or ErrSessionNotFound.
	Get(ctx context.Context, user UserID) (*Session, error)
	// Put creates or overwrites the user's session.
	Put(ctx context.Context, session *Session) error
	// Delete removes the user's session. Deleting a session that does not
	// exist is a no-op.
	Delete(ctx context.Context, user UserID) error
}

// Sink is the append-only tabular store that receives finalized records.
type Sink interface {
	// Append writes rec as a single new row in the given destination and
	// returns the generated PO identifier. It never reads back or
	// deduplicates; any transport or auth error surfaces as a plain error.
	Append(ctx context.Context, destinationID string, rec Record) (string, error)
}

// SinkOpener establishes the credential-backed sink connection. It is
// invoked lazily, at finalize time, so a misconfigured sink does not stop
// the bot from serving dialogues. Failure maps to ErrSinkUnavailable.
type SinkOpener func(ctx context.Context) (Sink, error)
