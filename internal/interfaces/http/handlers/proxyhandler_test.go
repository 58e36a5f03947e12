package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/streamgate-io/streamgate/internal/application/playlist/services"
	proxyUC "github.com/streamgate-io/streamgate/internal/application/proxy/usecases"
	"github.com/streamgate-io/streamgate/internal/domain/playlist"
	"github.com/streamgate-io/streamgate/internal/infrastructure/cache"
	"github.com/streamgate-io/streamgate/internal/infrastructure/origin"
	"github.com/streamgate-io/streamgate/internal/infrastructure/persistence/models"
	"github.com/streamgate-io/streamgate/internal/infrastructure/repository"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
	"github.com/streamgate-io/streamgate/internal/shared/m3u"
)

const proxyTestTTL = 15 * time.Minute

type proxyFixture struct {
	engine   *gin.Engine
	playlist *playlist.Playlist
	cache    *cache.PlaylistCache
}

func setupProxyFixture(t *testing.T, originURL string, maxDevices int) *proxyFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.PlaylistModel{}, &models.DeviceSessionModel{}, &models.AccessEventModel{}))

	log := logger.NewLogger()
	playlistRepo := repository.NewPlaylistRepository(db, log)
	sessionRepo := repository.NewDeviceSessionRepository(db, log)
	eventRepo := repository.NewAccessEventRepository(db)

	p, err := playlist.NewPlaylist("Family TV", originURL, maxDevices)
	require.NoError(t, err)
	allocator := services.NewSIDAllocator(playlistRepo, log)
	require.NoError(t, allocator.AllocateAndCreate(t.Context(), p))

	playlistCache := cache.NewPlaylistCache(30 * time.Second)
	t.Cleanup(playlistCache.Stop)

	fetcher := origin.NewHTTPFetcher(5*time.Second, "streamgate/1.0", log)
	admit := proxyUC.NewAdmitDeviceUseCase(sessionRepo, eventRepo, proxyTestTTL, log)
	relay := proxyUC.NewRelayPlaylistUseCase(playlistRepo, playlistCache, admit, fetcher, log)

	handler := NewProxyHandler(relay, log)
	engine := gin.New()
	engine.GET("/p/:mirror_id", handler.Serve)

	return &proxyFixture{engine: engine, playlist: p, cache: playlistCache}
}

func (f *proxyFixture) get(path, clientIP string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (SMART-TV; Tizen 5.0)")
	req.Header.Set("X-Forwarded-For", clientIP)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func originServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/x-mpegurl")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProxyHandler_ServesPlaylist(t *testing.T) {
	srv := originServer(t, "#EXTM3U\n#EXTINF:-1,Channel One\nhttp://origin.example.com/1.ts\n")
	f := setupProxyFixture(t, srv.URL, 3)

	w := f.get("/p/"+f.playlist.SID(), "10.0.0.1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, m3u.ContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Body.String(), "# mirror: Family TV")
	assert.Contains(t, w.Body.String(), "# mirror-id: "+f.playlist.SID())
	assert.Contains(t, w.Body.String(), "http://origin.example.com/1.ts")
}

func TestProxyHandler_StripsPlaylistExtensions(t *testing.T) {
	srv := originServer(t, "#EXTM3U\n")
	f := setupProxyFixture(t, srv.URL, 3)

	for _, suffix := range []string{"", ".m3u", ".m3u8"} {
		w := f.get("/p/"+f.playlist.SID()+suffix, "10.0.0.1")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "# mirror-id: "+f.playlist.SID(), "suffix %q", suffix)
	}
}

func TestProxyHandler_UnknownMirrorStillM3U(t *testing.T) {
	srv := originServer(t, "#EXTM3U\n")
	f := setupProxyFixture(t, srv.URL, 3)

	w := f.get("/p/nosuchid", "10.0.0.1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, m3u.ContentType, w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), m3u.Marker))
	assert.Contains(t, w.Body.String(), "playlist not found")
}

func TestProxyHandler_DeviceCapEnforced(t *testing.T) {
	srv := originServer(t, "#EXTM3U\n#EXTINF:-1,Channel One\nhttp://origin.example.com/1.ts\n")
	f := setupProxyFixture(t, srv.URL, 2)

	for i := 1; i <= 2; i++ {
		w := f.get("/p/"+f.playlist.SID(), fmt.Sprintf("10.0.0.%d", i))
		assert.Contains(t, w.Body.String(), "# mirror-id:", "device %d should be served", i)
	}

	w := f.get("/p/"+f.playlist.SID(), "10.0.0.3")
	assert.Equal(t, http.StatusOK, w.Code, "rejections still answer 200 with playlist text")
	assert.Contains(t, w.Body.String(), "device limit reached for Family TV")
	assert.Contains(t, w.Body.String(), "maximum concurrent devices: 2")

	// The admitted devices keep working.
	w = f.get("/p/"+f.playlist.SID(), "10.0.0.1")
	assert.Contains(t, w.Body.String(), "# mirror-id:")
}

func TestProxyHandler_OriginDownStillM3U(t *testing.T) {
	srv := originServer(t, "#EXTM3U\n")
	f := setupProxyFixture(t, srv.URL, 3)
	srv.Close()

	w := f.get("/p/"+f.playlist.SID(), "10.0.0.1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), m3u.Marker))
	assert.Contains(t, w.Body.String(), "origin fetch failed for Family TV")
}

func TestProxyHandler_CacheInvalidationAfterUpdate(t *testing.T) {
	srv := originServer(t, "#EXTM3U\n")
	f := setupProxyFixture(t, srv.URL, 1)

	// Prime the lookup cache.
	w := f.get("/p/"+f.playlist.SID(), "10.0.0.1")
	require.Equal(t, http.StatusOK, w.Code)

	f.cache.Delete(f.playlist.SID())

	w = f.get("/p/"+f.playlist.SID(), "10.0.0.1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "# mirror-id: "+f.playlist.SID())
}
