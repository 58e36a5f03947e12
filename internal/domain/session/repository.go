package session

import (
	"context"
	"time"
)

// Repository defines the persistence contract for device sessions.
//
// Touch is the only mutation on the request path and must be an atomic
// upsert: concurrent calls for the same (playlist, identity) pair may not
// both create a row, and no implementation may read before writing to
// decide between insert and update.
type Repository interface {
	// Touch creates the session for the pair with the current heartbeat if
	// absent, otherwise refreshes the heartbeat and re-activates it.
	// Returns whether a new session was created.
	Touch(ctx context.Context, playlistID uint, identity ClientIdentity, class DeviceClass) (isNew bool, err error)

	// ActiveCount returns the number of sessions for the playlist whose
	// last heartbeat falls within the trailing window. Stale rows are
	// excluded regardless of their stored active flag.
	ActiveCount(ctx context.Context, playlistID uint, ttl time.Duration) (int64, error)

	// IsCurrentlyActive reports whether a session exists for the pair
	// within the trailing window.
	IsCurrentlyActive(ctx context.Context, playlistID uint, identity ClientIdentity, ttl time.Duration) (bool, error)

	// ListByPlaylist returns all sessions for a playlist, most recent
	// heartbeat first. Reporting only.
	ListByPlaylist(ctx context.Context, playlistID uint) ([]*DeviceSession, error)

	// DeactivateStale flips the stored active flag on sessions whose
	// heartbeat fell out of the window. Reporting hygiene; ActiveCount
	// correctness does not depend on it.
	DeactivateStale(ctx context.Context, ttl time.Duration) (int64, error)

	// DeleteByPlaylist removes all sessions for a playlist. Used when the
	// playlist itself is deleted.
	DeleteByPlaylist(ctx context.Context, playlistID uint) error
}

// EventRepository defines the append-only audit trail contract.
type EventRepository interface {
	Append(ctx context.Context, event *AccessEvent) error
	ListByPlaylist(ctx context.Context, playlistID uint, limit int) ([]*AccessEvent, error)
}
