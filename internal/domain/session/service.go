package session

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
)

// Provider owns per-user session state for the lifetime of the process.
type Provider interface {
	// Open returns the resolved session for id, resolving it synchronously
	// when it is not yet known.
	Open(ctx context.Context, id Identity) (Session, error)

	// Notify feeds an auth-state event. Resolution triggered by a sign-in
	// is queued, never run inside the call.
	Notify(id Identity, event string)

	// Close clears all state for userID synchronously.
	Close(userID string)

	State(userID string) (State, bool)
	Subscribe(userID string) (chan sse.Event, func())

	// Refresh re-resolves a cached session in the background, e.g. after
	// the profile changed. Unknown users are ignored.
	Refresh(userID string)

	// Sweep drops sessions idle for longer than the configured timeout.
	Sweep(ctx context.Context) error

	Stop()
}
