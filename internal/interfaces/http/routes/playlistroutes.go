// Package routes wires handlers onto the Gin engine.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/streamgate-io/streamgate/internal/interfaces/http/handlers"
)

// SetupPlaylistRoutes configures the management API routes.
func SetupPlaylistRoutes(engine *gin.Engine, handler *handlers.PlaylistHandler) {
	playlists := engine.Group("/api/playlists")
	{
		playlists.POST("", handler.Create)
		playlists.GET("", handler.List)
		playlists.GET("/:sid", handler.Get)
		playlists.GET("/:sid/status", handler.GetStatus)
		playlists.GET("/:sid/events", handler.ListEvents)
		playlists.PUT("/:sid", handler.Update)
		playlists.DELETE("/:sid", handler.Delete)
	}
}
