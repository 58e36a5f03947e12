package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/streamgate-io/streamgate/internal/infrastructure/ratelimit"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
	"github.com/streamgate-io/streamgate/internal/shared/m3u"
)

// ProxyRateLimit throttles proxy requests per client IP over a one-minute
// sliding window. Limiter outages fail open: admission control still holds
// the device cap, the limiter only dampens refresh storms.
func ProxyRateLimit(limiter ratelimit.RateLimiter, perMinute int, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || perMinute <= 0 {
			c.Next()
			return
		}

		allowed, err := limiter.Allow(c.Request.Context(), "proxy:"+c.ClientIP(), perMinute, time.Minute)
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request",
				"error", err, "client_ip", c.ClientIP())
			c.Next()
			return
		}

		if !allowed {
			log.Warnw("proxy request rate limited", "client_ip", c.ClientIP())
			c.Data(http.StatusTooManyRequests, m3u.ContentType,
				[]byte(m3u.Marker+"\n# streamgate error\n# too many requests, slow down\n"))
			c.Abort()
			return
		}

		c.Next()
	}
}
