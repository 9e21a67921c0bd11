package contract

import "context"

// Agent is the single capability every domain agent implements: consume the
// user's text and session id, produce the reply text. Caller-input problems are
// reported inside the returned text, not as errors; a non-nil error means an
// internal failure the adapter turns into an apologetic reply.
type Agent interface {
	Handle(ctx context.Context, query string, sessionID string) (string, error)
}
