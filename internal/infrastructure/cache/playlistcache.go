// Package cache provides in-process caches for hot request-path lookups.
package cache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/streamgate-io/streamgate/internal/domain/playlist"
	"github.com/streamgate-io/streamgate/internal/shared/goroutine"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
)

// PlaylistCache caches playlist lookups by mirror identifier so the proxy
// hot path does not hit the database for every segment refresh. Entries
// expire quickly; management writes invalidate explicitly.
type PlaylistCache struct {
	cache *ttlcache.Cache[string, *playlist.Playlist]
}

func NewPlaylistCache(ttl time.Duration) *PlaylistCache {
	c := ttlcache.New[string, *playlist.Playlist](
		ttlcache.WithTTL[string, *playlist.Playlist](ttl),
		ttlcache.WithDisableTouchOnHit[string, *playlist.Playlist](),
	)
	goroutine.SafeGo(logger.NewLogger(), "playlist-cache-expiry", c.Start)
	return &PlaylistCache{cache: c}
}

func (c *PlaylistCache) Get(sid string) (*playlist.Playlist, bool) {
	item := c.cache.Get(sid)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

func (c *PlaylistCache) Set(sid string, p *playlist.Playlist) {
	c.cache.Set(sid, p, ttlcache.DefaultTTL)
}

func (c *PlaylistCache) Delete(sid string) {
	c.cache.Delete(sid)
}

// Stop terminates the expiry loop.
func (c *PlaylistCache) Stop() {
	c.cache.Stop()
}
