package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/streamgate-io/streamgate/internal/interfaces/http/handlers"
)

// SetupProxyRoutes configures the public mirror proxy boundary. Extra
// middleware (rate limiting) applies to this group only; the management API
// is not throttled.
func SetupProxyRoutes(engine *gin.Engine, handler *handlers.ProxyHandler, extra ...gin.HandlerFunc) {
	proxy := engine.Group("/p")
	proxy.Use(extra...)
	{
		proxy.GET("/:mirror_id", handler.Serve)
	}
}
