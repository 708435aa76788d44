package server

import (
	"crypto/subtle"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/osse101/FactorySim_Go/internal/handler"
	"github.com/osse101/FactorySim_Go/internal/logger"
	"github.com/osse101/FactorySim_Go/internal/metrics"
)

// ProxyTrust resolves the client address of a request. Forwarded headers
// are honored only when the direct peer is a trusted proxy.
type ProxyTrust struct {
	prefixes []netip.Prefix
}

// NewProxyTrust accepts single addresses and CIDR ranges; unparsable entries are skipped
func NewProxyTrust(entries []string) ProxyTrust {
	var pt ProxyTrust
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if p, err := netip.ParsePrefix(e); err == nil {
			pt.prefixes = append(pt.prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(e); err == nil {
			pt.prefixes = append(pt.prefixes, netip.PrefixFrom(a, a.BitLen()))
		}
	}
	return pt
}

func (pt ProxyTrust) trusted(addr string) bool {
	a, err := netip.ParseAddr(addr)
	if err != nil {
		return false
	}
	a = a.Unmap()
	for _, p := range pt.prefixes {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

// clientIP walks X-Forwarded-For from the right, skipping trusted hops
func (pt ProxyTrust) clientIP(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if !pt.trusted(peer) {
		return peer
	}
	hops := strings.Split(r.Header.Get(HeaderForwardedFor), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !pt.trusted(hop) {
			return hop
		}
	}
	return peer
}

type clientCounts struct {
	windowStart time.Time
	lastSeen    time.Time
	requests    int
	authFails   int
}

// Guard keeps per-client request and failed-auth counts over a fixed window
type Guard struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	alertAt   int
	now       func() time.Time
	lastSweep time.Time
	clients   map[string]*clientCounts
}

// GuardOption configures a Guard
type GuardOption func(*Guard)

// WithRateLimit admits at most limit requests per client per window.
// A limit of zero disables rate limiting.
func WithRateLimit(limit int, window time.Duration) GuardOption {
	return func(g *Guard) {
		g.limit = limit
		if window > 0 {
			g.window = window
		}
	}
}

// WithAuthAlert logs a warning once a client fails auth n times in a window
func WithAuthAlert(n int) GuardOption {
	return func(g *Guard) { g.alertAt = n }
}

// NewGuard creates a Guard with the default limits
func NewGuard(opts ...GuardOption) *Guard {
	g := &Guard{
		limit:   DefaultRateLimit,
		window:  DefaultRateWindow,
		alertAt: DefaultAuthAlertAt,
		now:     time.Now,
		clients: make(map[string]*clientCounts),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// counts returns the client's entry for the current window. Caller holds mu.
func (g *Guard) counts(ip string, now time.Time) *clientCounts {
	if now.Sub(g.lastSweep) >= g.window {
		for k, c := range g.clients {
			if now.Sub(c.lastSeen) >= idleWindows*g.window {
				delete(g.clients, k)
			}
		}
		g.lastSweep = now
	}

	c, ok := g.clients[ip]
	if !ok {
		c = &clientCounts{windowStart: now}
		g.clients[ip] = c
	}
	if now.Sub(c.windowStart) >= g.window {
		*c = clientCounts{windowStart: now}
	}
	c.lastSeen = now
	return c
}

// Admit counts one request. When the client is over its limit it returns
// false and the time left until the window resets.
func (g *Guard) Admit(ip string) (bool, time.Duration) {
	if g.limit <= 0 {
		return true, 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	c := g.counts(ip, now)
	c.requests++
	if c.requests <= g.limit {
		return true, 0
	}
	return false, c.windowStart.Add(g.window).Sub(now)
}

// FailedAuth records a rejected key and returns the client's count in this window
func (g *Guard) FailedAuth(ip string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	c := g.counts(ip, g.now())
	c.authFails++
	return c.authFails
}

func (g *Guard) tracked() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.clients)
}

// presentedKey reads the key from X-API-Key, falling back to a bearer token
func presentedKey(r *http.Request) string {
	if k := r.Header.Get(HeaderAPIKey); k != "" {
		return k
	}
	if auth := r.Header.Get(HeaderAuthorization); strings.HasPrefix(auth, BearerPrefix) {
		return strings.TrimSpace(auth[len(BearerPrefix):])
	}
	return ""
}

// AuthMiddleware rejects requests outside publicPaths that do not carry apiKey
func AuthMiddleware(apiKey string, trust ProxyTrust, guard *Guard) func(http.Handler) http.Handler {
	want := []byte(apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			if subtle.ConstantTimeCompare([]byte(presentedKey(r)), want) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := trust.clientIP(r)
			fails := guard.FailedAuth(ip)
			log := logger.FromContext(r.Context())
			log.Warn(LogMsgAuthRejected, "ip", ip, "method", r.Method, "path", r.URL.Path)
			if guard.alertAt > 0 && fails == guard.alertAt {
				log.Error(LogMsgAuthRepeated, "ip", ip, "attempts", fails)
			}
			metrics.RecordRejection(metrics.ReasonUnauthorized)

			w.Header().Set(HeaderWWWAuthenticate, HeaderValueBearerRealm)
			handler.WriteError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		})
	}
}

// RateLimitMiddleware answers 429 with Retry-After once a client is over its limit
func RateLimitMiddleware(trust ProxyTrust, guard *Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := trust.clientIP(r)
			ok, wait := guard.Admit(ip)
			if ok {
				next.ServeHTTP(w, r)
				return
			}

			logger.FromContext(r.Context()).Warn(LogMsgRateLimited, "ip", ip, "path", r.URL.Path)
			metrics.RecordRejection(metrics.ReasonRateLimited)

			secs := int(wait.Round(time.Second) / time.Second)
			if secs < 1 {
				secs = 1
			}
			w.Header().Set(HeaderRetryAfter, strconv.Itoa(secs))
			handler.WriteError(w, http.StatusTooManyRequests, ErrMsgRateLimited)
		})
	}
}

// BodyLimitMiddleware caps request bodies at maxBytes
func BodyLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

var securityHeaders = [][2]string{
	{HeaderContentTypeOptions, HeaderValueNoSniff},
	{HeaderFrameOptions, HeaderValueDeny},
	{HeaderReferrerPolicy, HeaderValueNoReferrer},
	{HeaderPermissionsPolicy, HeaderValueNoPermissions},
}

// HeadersMiddleware sets the hardening headers. API responses are never cached.
func HeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for _, kv := range securityHeaders {
			h.Set(kv[0], kv[1])
		}
		if strings.HasPrefix(r.URL.Path, "/api/") {
			h.Set(HeaderCacheControl, HeaderValueNoStore)
		}
		next.ServeHTTP(w, r)
	})
}
