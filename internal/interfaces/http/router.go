// Package http assembles the Gin engine: dependency wiring, middleware and
// routes for both the management API and the mirror proxy.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/streamgate-io/streamgate/internal/application/playlist/services"
	playlistUC "github.com/streamgate-io/streamgate/internal/application/playlist/usecases"
	proxyUC "github.com/streamgate-io/streamgate/internal/application/proxy/usecases"
	"github.com/streamgate-io/streamgate/internal/infrastructure/cache"
	"github.com/streamgate-io/streamgate/internal/infrastructure/config"
	"github.com/streamgate-io/streamgate/internal/infrastructure/origin"
	"github.com/streamgate-io/streamgate/internal/infrastructure/ratelimit"
	"github.com/streamgate-io/streamgate/internal/infrastructure/repository"
	"github.com/streamgate-io/streamgate/internal/interfaces/http/handlers"
	"github.com/streamgate-io/streamgate/internal/interfaces/http/middleware"
	"github.com/streamgate-io/streamgate/internal/interfaces/http/routes"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
)

// Router holds the assembled engine and the pieces with a lifecycle of
// their own.
type Router struct {
	engine        *gin.Engine
	playlistCache *cache.PlaylistCache
	sweepUseCase  *proxyUC.SweepSessionsUseCase
}

// NewRouter wires repositories, usecases and handlers onto a Gin engine.
// redisClient may be nil; the proxy rate limiter is then disabled.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.CORS([]string{"*"}),
	)

	sessionTTL := time.Duration(cfg.Proxy.SessionTTLMinutes) * time.Minute
	fetchTimeout := time.Duration(cfg.Proxy.FetchTimeoutSeconds) * time.Second
	cacheTTL := time.Duration(cfg.Proxy.CacheTTLSeconds) * time.Second

	playlistRepo := repository.NewPlaylistRepository(db, log)
	sessionRepo := repository.NewDeviceSessionRepository(db, log)
	eventRepo := repository.NewAccessEventRepository(db)

	playlistCache := cache.NewPlaylistCache(cacheTTL)
	fetcher := origin.NewHTTPFetcher(fetchTimeout, cfg.Proxy.FetchUserAgent, log)

	allocator := services.NewSIDAllocator(playlistRepo, log)

	playlistHandler := handlers.NewPlaylistHandler(
		playlistUC.NewCreatePlaylistUseCase(allocator, log),
		playlistUC.NewGetPlaylistUseCase(playlistRepo, log),
		playlistUC.NewGetPlaylistStatusUseCase(playlistRepo, sessionRepo, sessionTTL, log),
		playlistUC.NewListPlaylistsUseCase(playlistRepo, log),
		playlistUC.NewUpdatePlaylistUseCase(playlistRepo, playlistCache, log),
		playlistUC.NewDeletePlaylistUseCase(playlistRepo, sessionRepo, playlistCache, log),
		playlistUC.NewListAccessEventsUseCase(playlistRepo, eventRepo, log),
		log,
	)

	admitUseCase := proxyUC.NewAdmitDeviceUseCase(sessionRepo, eventRepo, sessionTTL, log)
	relayUseCase := proxyUC.NewRelayPlaylistUseCase(playlistRepo, playlistCache, admitUseCase, fetcher, log)
	proxyHandler := handlers.NewProxyHandler(relayUseCase, log)

	var proxyMiddleware []gin.HandlerFunc
	if redisClient != nil && cfg.Proxy.RateLimitPerMinute > 0 {
		limiter := ratelimit.NewRedisRateLimiter(redisClient)
		proxyMiddleware = append(proxyMiddleware,
			middleware.ProxyRateLimit(limiter, cfg.Proxy.RateLimitPerMinute, log))
	}

	routes.SetupPlaylistRoutes(engine, playlistHandler)
	routes.SetupProxyRoutes(engine, proxyHandler, proxyMiddleware...)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &Router{
		engine:        engine,
		playlistCache: playlistCache,
		sweepUseCase:  proxyUC.NewSweepSessionsUseCase(sessionRepo, sessionTTL, log),
	}
}

// Engine returns the assembled Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// SweepUseCase returns the stale-session sweep job for scheduler
// registration.
func (r *Router) SweepUseCase() *proxyUC.SweepSessionsUseCase {
	return r.sweepUseCase
}

// Close releases background resources held by the router.
func (r *Router) Close() {
	r.playlistCache.Stop()
}
