// Package session provides the domain model for device sessions: the set of
// distinct clients considered active on a playlist within a trailing time
// window, with heartbeat semantics.
package session

import "time"

// DeviceSession represents one (playlist, client identity) pairing. At most
// one session exists per pairing, enforced by a storage uniqueness
// constraint. Sessions are never hard-deleted by the request path; they flip
// inactive once the trailing window elapses without a heartbeat and may be
// re-activated by a later access.
type DeviceSession struct {
	ID            uint
	PlaylistID    uint
	IdentityToken string
	UserAgent     string
	DeviceType    DeviceClass
	Active        bool
	FirstSeenAt   time.Time
	LastSeenAt    time.Time
}

// WithinWindow reports whether the session counts as active at the given
// instant. The stored Active flag is advisory; only the last heartbeat
// against the trailing window decides.
func (s *DeviceSession) WithinWindow(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LastSeenAt) <= ttl
}

// AccessEvent is an immutable audit record of one admitted access. It is
// append-only and used for historical reporting, never for admission
// decisions.
type AccessEvent struct {
	ID            uint
	PlaylistID    uint
	IdentityToken string
	UserAgent     string
	DeviceType    DeviceClass
	OccurredAt    time.Time
}
