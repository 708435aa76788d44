package server

import "time"

// Guard limits
const (
	DefaultRateLimit   = 600
	DefaultRateWindow  = time.Minute
	DefaultAuthAlertAt = 5
	// A client's counters are dropped after this many idle windows
	idleWindows = 3
)

// Error bodies written by middleware
const (
	ErrMsgUnauthorized = "missing or invalid API key"
	ErrMsgRateLimited  = "request rate exceeded, retry later"
)

// Log messages
const (
	LogMsgServerStarting   = "HTTP server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthRejected     = "Rejected request without a valid API key"
	LogMsgAuthRepeated     = "Repeated failed API key attempts from one client"
	LogMsgRateLimited      = "Client exceeded the request rate"
)

// Header names
const (
	HeaderAPIKey             = "X-API-Key"
	HeaderAuthorization      = "Authorization"
	HeaderForwardedFor       = "X-Forwarded-For"
	HeaderRetryAfter         = "Retry-After"
	HeaderWWWAuthenticate    = "WWW-Authenticate"
	HeaderContentTypeOptions = "X-Content-Type-Options"
	HeaderFrameOptions       = "X-Frame-Options"
	HeaderReferrerPolicy     = "Referrer-Policy"
	HeaderCacheControl       = "Cache-Control"
	HeaderPermissionsPolicy  = "Permissions-Policy"
)

// Header values
const (
	HeaderValueNoSniff       = "nosniff"
	HeaderValueDeny          = "DENY"
	HeaderValueNoReferrer    = "no-referrer"
	HeaderValueNoStore       = "no-store"
	HeaderValueNoPermissions = "camera=(), microphone=(), geolocation=()"
	HeaderValueBearerRealm   = `Bearer realm="factory"`
	BearerPrefix             = "Bearer "
)

// RedactedValue replaces credentials in logged headers
const RedactedValue = "[REDACTED]"

// publicPaths are served without an API key
var publicPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/version": true,
	"/metrics": true,
}

// quietPaths are probes and scrapes left out of the request log
var quietPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}
