package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderUserAgent     = "User-Agent"
	HeaderCacheControl  = "Cache-Control"
	HeaderPragma        = "Pragma"

	// Content Types
	ContentTypeJSON = "application/json"
	ContentTypeM3U  = "application/vnd.apple.mpegurl"

	// Context keys
	ContextKeyRequestID = "request_id"

	// Database table names
	TablePlaylists      = "playlists"
	TableDeviceSessions = "device_sessions"
	TableAccessEvents   = "access_events"

	// Playlist device cap bounds
	MinDevices = 1
	MaxDevices = 10

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgConflict            = "Resource already exists"
)
