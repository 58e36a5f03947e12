package usecases

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamgate-io/streamgate/internal/domain/playlist"
	"github.com/streamgate-io/streamgate/internal/domain/session"
	"github.com/streamgate-io/streamgate/internal/shared/biztime"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
)

// memorySessionRepo is an in-memory session store with the same window
// semantics as the persistent one.
type memorySessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*session.DeviceSession
	nextID   uint
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: make(map[string]*session.DeviceSession)}
}

func key(playlistID uint, token string) string {
	return fmt.Sprintf("%d|%s", playlistID, token)
}

func (r *memorySessionRepo) Touch(ctx context.Context, playlistID uint, identity session.ClientIdentity, class session.DeviceClass) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := biztime.NowUTC()
	k := key(playlistID, identity.Token())
	if s, ok := r.sessions[k]; ok {
		s.LastSeenAt = now
		s.Active = true
		s.UserAgent = identity.UserAgent()
		s.DeviceType = class
		return false, nil
	}

	r.nextID++
	r.sessions[k] = &session.DeviceSession{
		ID:            r.nextID,
		PlaylistID:    playlistID,
		IdentityToken: identity.Token(),
		UserAgent:     identity.UserAgent(),
		DeviceType:    class,
		Active:        true,
		FirstSeenAt:   now,
		LastSeenAt:    now,
	}
	return true, nil
}

func (r *memorySessionRepo) ActiveCount(ctx context.Context, playlistID uint, ttl time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := biztime.NowUTC()
	var count int64
	for _, s := range r.sessions {
		if s.PlaylistID == playlistID && s.WithinWindow(now, ttl) {
			count++
		}
	}
	return count, nil
}

func (r *memorySessionRepo) IsCurrentlyActive(ctx context.Context, playlistID uint, identity session.ClientIdentity, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[key(playlistID, identity.Token())]
	if !ok {
		return false, nil
	}
	return s.WithinWindow(biztime.NowUTC(), ttl), nil
}

func (r *memorySessionRepo) ListByPlaylist(ctx context.Context, playlistID uint) ([]*session.DeviceSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*session.DeviceSession
	for _, s := range r.sessions {
		if s.PlaylistID == playlistID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memorySessionRepo) DeactivateStale(ctx context.Context, ttl time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := biztime.NowUTC()
	var flipped int64
	for _, s := range r.sessions {
		if s.Active && !s.WithinWindow(now, ttl) {
			s.Active = false
			flipped++
		}
	}
	return flipped, nil
}

func (r *memorySessionRepo) DeleteByPlaylist(ctx context.Context, playlistID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, s := range r.sessions {
		if s.PlaylistID == playlistID {
			delete(r.sessions, k)
		}
	}
	return nil
}

// expire rewinds a session's heartbeat so it falls out of the window.
func (r *memorySessionRepo) expire(playlistID uint, token string, by time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[key(playlistID, token)]; ok {
		s.LastSeenAt = s.LastSeenAt.Add(-by)
	}
}

type memoryEventRepo struct {
	mu     sync.Mutex
	events []*session.AccessEvent
}

func (r *memoryEventRepo) Append(ctx context.Context, event *session.AccessEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *memoryEventRepo) ListByPlaylist(ctx context.Context, playlistID uint, limit int) ([]*session.AccessEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*session.AccessEvent
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		if r.events[i].PlaylistID == playlistID {
			out = append(out, r.events[i])
		}
	}
	return out, nil
}

const testTTL = 15 * time.Minute

func cappedPlaylist(t *testing.T, maxDevices int) *playlist.Playlist {
	t.Helper()
	p := playlist.Reconstitute(1, "aB3dE5fG", "Family TV", "http://origin.example.com/list.m3u", maxDevices,
		biztime.NowUTC(), biztime.NowUTC())
	return p
}

func identityFor(ip string) session.ClientIdentity {
	return session.NewClientIdentity(ip+":54321", "Mozilla/5.0 (SMART-TV; Tizen 5.0)")
}

func TestAdmitDevice_UnderCap(t *testing.T) {
	repo := newMemorySessionRepo()
	uc := NewAdmitDeviceUseCase(repo, &memoryEventRepo{}, testTTL, logger.NewLogger())
	p := cappedPlaylist(t, 3)

	for i := 1; i <= 3; i++ {
		decision, err := uc.Execute(context.Background(), p, identityFor(fmt.Sprintf("10.0.0.%d", i)), session.DeviceClassTV)
		require.NoError(t, err)
		assert.True(t, decision.Admitted, "device %d should be admitted", i)
		assert.True(t, decision.IsNewDevice)
	}

	count, err := repo.ActiveCount(context.Background(), p.ID(), testTTL)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestAdmitDevice_RejectsBeyondCap(t *testing.T) {
	repo := newMemorySessionRepo()
	uc := NewAdmitDeviceUseCase(repo, &memoryEventRepo{}, testTTL, logger.NewLogger())
	p := cappedPlaylist(t, 3)

	for i := 1; i <= 3; i++ {
		_, err := uc.Execute(context.Background(), p, identityFor(fmt.Sprintf("10.0.0.%d", i)), session.DeviceClassTV)
		require.NoError(t, err)
	}

	decision, err := uc.Execute(context.Background(), p, identityFor("10.0.0.4"), session.DeviceClassMobile)
	require.NoError(t, err)
	assert.False(t, decision.Admitted)
	assert.EqualValues(t, 3, decision.ActiveCount)

	// Rejection leaves no session behind.
	count, err := repo.ActiveCount(context.Background(), p.ID(), testTTL)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestAdmitDevice_ActiveDeviceBypassesCap(t *testing.T) {
	repo := newMemorySessionRepo()
	uc := NewAdmitDeviceUseCase(repo, &memoryEventRepo{}, testTTL, logger.NewLogger())
	p := cappedPlaylist(t, 2)

	first := identityFor("10.0.0.1")
	_, err := uc.Execute(context.Background(), p, first, session.DeviceClassTV)
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), p, identityFor("10.0.0.2"), session.DeviceClassPC)
	require.NoError(t, err)

	// Cap reached: the first device still gets in.
	decision, err := uc.Execute(context.Background(), p, first, session.DeviceClassTV)
	require.NoError(t, err)
	assert.True(t, decision.Admitted)
	assert.False(t, decision.IsNewDevice)
}

func TestAdmitDevice_HeartbeatIsIdempotent(t *testing.T) {
	repo := newMemorySessionRepo()
	uc := NewAdmitDeviceUseCase(repo, &memoryEventRepo{}, testTTL, logger.NewLogger())
	p := cappedPlaylist(t, 3)

	device := identityFor("10.0.0.1")
	for i := 0; i < 5; i++ {
		decision, err := uc.Execute(context.Background(), p, device, session.DeviceClassTV)
		require.NoError(t, err)
		assert.True(t, decision.Admitted)
	}

	count, err := repo.ActiveCount(context.Background(), p.ID(), testTTL)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "repeated accesses from one device hold one slot")
}

func TestAdmitDevice_ExpiredSlotIsReclaimable(t *testing.T) {
	repo := newMemorySessionRepo()
	uc := NewAdmitDeviceUseCase(repo, &memoryEventRepo{}, testTTL, logger.NewLogger())
	p := cappedPlaylist(t, 1)

	first := identityFor("10.0.0.1")
	_, err := uc.Execute(context.Background(), p, first, session.DeviceClassTV)
	require.NoError(t, err)

	second := identityFor("10.0.0.2")
	decision, err := uc.Execute(context.Background(), p, second, session.DeviceClassMobile)
	require.NoError(t, err)
	assert.False(t, decision.Admitted)

	// First device goes quiet past the window; its slot frees up without
	// any sweep running.
	repo.expire(p.ID(), first.Token(), testTTL+time.Minute)

	decision, err = uc.Execute(context.Background(), p, second, session.DeviceClassMobile)
	require.NoError(t, err)
	assert.True(t, decision.Admitted)
}

func TestAdmitDevice_RecordsAccessEvents(t *testing.T) {
	repo := newMemorySessionRepo()
	events := &memoryEventRepo{}
	uc := NewAdmitDeviceUseCase(repo, events, testTTL, logger.NewLogger())
	p := cappedPlaylist(t, 1)

	_, err := uc.Execute(context.Background(), p, identityFor("10.0.0.1"), session.DeviceClassTV)
	require.NoError(t, err)

	// Rejected devices leave no audit record.
	_, err = uc.Execute(context.Background(), p, identityFor("10.0.0.2"), session.DeviceClassMobile)
	require.NoError(t, err)

	listed, err := events.ListByPlaylist(context.Background(), p.ID(), 10)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, session.DeviceClassTV, listed[0].DeviceType)
}

func TestSweepSessions_FlipsStaleFlags(t *testing.T) {
	repo := newMemorySessionRepo()
	admit := NewAdmitDeviceUseCase(repo, &memoryEventRepo{}, testTTL, logger.NewLogger())
	p := cappedPlaylist(t, 3)

	stale := identityFor("10.0.0.1")
	_, err := admit.Execute(context.Background(), p, stale, session.DeviceClassTV)
	require.NoError(t, err)
	_, err = admit.Execute(context.Background(), p, identityFor("10.0.0.2"), session.DeviceClassPC)
	require.NoError(t, err)

	repo.expire(p.ID(), stale.Token(), testTTL+time.Minute)

	sweep := NewSweepSessionsUseCase(repo, testTTL, logger.NewLogger())
	require.NoError(t, sweep.Execute(context.Background()))

	sessions, err := repo.ListByPlaylist(context.Background(), p.ID())
	require.NoError(t, err)

	var activeFlags int
	for _, s := range sessions {
		if s.Active {
			activeFlags++
		}
	}
	assert.Equal(t, 1, activeFlags)
}
