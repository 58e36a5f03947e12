package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/streamgate-io/streamgate/internal/application/proxy/usecases"
	"github.com/streamgate-io/streamgate/internal/shared/constants"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
	"github.com/streamgate-io/streamgate/internal/shared/m3u"
)

// ProxyHandler serves the mirror proxy boundary. Every response is valid
// playlist text with HTTP 200, including the degraded ones: set-top players
// choke on error status codes and JSON bodies.
type ProxyHandler struct {
	relayUseCase *usecases.RelayPlaylistUseCase
	logger       logger.Interface
}

func NewProxyHandler(relayUseCase *usecases.RelayPlaylistUseCase, logger logger.Interface) *ProxyHandler {
	return &ProxyHandler{
		relayUseCase: relayUseCase,
		logger:       logger,
	}
}

// Serve handles GET /p/:mirror_id
func (h *ProxyHandler) Serve(c *gin.Context) {
	mirrorID := stripPlaylistExtension(c.Param("mirror_id"))

	result, err := h.relayUseCase.Execute(c.Request.Context(), usecases.RelayPlaylistCommand{
		MirrorID:   mirrorID,
		RemoteAddr: c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})
	if err != nil {
		h.logger.Errorw("relay pipeline failed", "error", err, "mirror_id", mirrorID)
		h.respond(c, m3u.FetchFailureBody("playlist"))
		return
	}

	if result.Outcome != usecases.OutcomeServed {
		h.logger.Infow("proxy request degraded",
			"mirror_id", mirrorID,
			"outcome", result.Outcome,
			"client_ip", c.ClientIP(),
		)
	}
	h.respond(c, result.Body)
}

// respond writes the playlist body with no-cache headers so players refetch
// through the proxy instead of replaying a cached admission.
func (h *ProxyHandler) respond(c *gin.Context, body string) {
	c.Header(constants.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	c.Header(constants.HeaderPragma, "no-cache")
	c.Data(http.StatusOK, m3u.ContentType, []byte(body))
}

// stripPlaylistExtension removes a trailing .m3u or .m3u8 so both styles of
// player URL resolve to the same mirror identifier.
func stripPlaylistExtension(mirrorID string) string {
	if ext := strings.TrimSuffix(mirrorID, ".m3u8"); ext != mirrorID {
		return ext
	}
	return strings.TrimSuffix(mirrorID, ".m3u")
}
