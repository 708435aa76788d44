package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func fixedClock(t *time.Time) func() time.Time {
	return func() time.Time { return *t }
}

func TestProxyTrust_ClientIP(t *testing.T) {
	trust := NewProxyTrust([]string{"10.0.0.1", "172.16.0.0/12", "bogus"})

	tests := []struct {
		name      string
		remote    string
		forwarded string
		want      string
	}{
		{"direct peer", "203.0.113.9:5000", "", "203.0.113.9"},
		{"untrusted peer ignores header", "203.0.113.9:5000", "198.51.100.1", "203.0.113.9"},
		{"trusted proxy", "10.0.0.1:443", "198.51.100.1", "198.51.100.1"},
		{"rightmost untrusted hop", "10.0.0.1:443", "1.1.1.1, 198.51.100.1, 172.20.0.5", "198.51.100.1"},
		{"only trusted hops", "10.0.0.1:443", "172.16.0.2", "10.0.0.1"},
		{"no port", "10.0.0.1", "198.51.100.7", "198.51.100.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, trust.clientIP(req))
		})
	}
}

func TestGuard_WindowResets(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	g := NewGuard(WithRateLimit(3, time.Minute))
	g.now = fixedClock(&now)

	for i := 0; i < 3; i++ {
		ok, _ := g.Admit("a")
		require.True(t, ok, "request %d", i)
	}
	ok, wait := g.Admit("a")
	assert.False(t, ok)
	assert.Equal(t, time.Minute, wait)

	ok, _ = g.Admit("b")
	assert.True(t, ok, "limits are per client")

	now = now.Add(40 * time.Second)
	_, wait = g.Admit("a")
	assert.Equal(t, 20*time.Second, wait)

	now = now.Add(20 * time.Second)
	ok, _ = g.Admit("a")
	assert.True(t, ok)
}

func TestGuard_DropsIdleClients(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	g := NewGuard(WithRateLimit(10, time.Minute))
	g.now = fixedClock(&now)

	g.Admit("a")
	g.Admit("b")
	require.Equal(t, 2, g.tracked())

	now = now.Add(idleWindows * time.Minute)
	g.Admit("c")
	assert.Equal(t, 1, g.tracked())
}

func TestGuard_ZeroLimitAdmitsAll(t *testing.T) {
	g := NewGuard(WithRateLimit(0, 0))
	for i := 0; i < DefaultRateLimit+1; i++ {
		ok, _ := g.Admit("a")
		require.True(t, ok)
	}
}

func TestAuthMiddleware(t *testing.T) {
	mw := AuthMiddleware("secret-key", NewProxyTrust(nil), NewGuard())(okHandler)

	tests := []struct {
		name   string
		path   string
		header string
		value  string
		want   int
	}{
		{"api key header", "/api/v1/status", HeaderAPIKey, "secret-key", http.StatusOK},
		{"bearer token", "/api/v1/status", HeaderAuthorization, "Bearer secret-key", http.StatusOK},
		{"wrong key", "/api/v1/status", HeaderAPIKey, "nope", http.StatusUnauthorized},
		{"basic auth is not accepted", "/api/v1/status", HeaderAuthorization, "Basic secret-key", http.StatusUnauthorized},
		{"missing key", "/api/v1/orders", "", "", http.StatusUnauthorized},
		{"probe", "/healthz", "", "", http.StatusOK},
		{"metrics", "/metrics", "", "", http.StatusOK},
		{"public prefix only", "/healthz/deep", "", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()
			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Equal(t, HeaderValueBearerRealm, rec.Header().Get(HeaderWWWAuthenticate))
				assert.JSONEq(t, `{"error":"`+ErrMsgUnauthorized+`"}`, rec.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_AlertsOnRepeatedFailures(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	mw := AuthMiddleware("k", NewProxyTrust(nil), NewGuard(WithAuthAlert(3)))(okHandler)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
		mw.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte(LogMsgAuthRepeated)))
	assert.Equal(t, 4, bytes.Count(buf.Bytes(), []byte(LogMsgAuthRejected)))
}

func TestRateLimitMiddleware(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	g := NewGuard(WithRateLimit(2, time.Minute))
	g.now = fixedClock(&now)
	mw := RateLimitMiddleware(NewProxyTrust(nil), g)(okHandler)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
		req.RemoteAddr = "192.0.2.10:4000"
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, send().Code)
	require.Equal(t, http.StatusOK, send().Code)

	now = now.Add(15 * time.Second)
	rec := send()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "45", rec.Header().Get(HeaderRetryAfter))
	assert.Contains(t, rec.Body.String(), ErrMsgRateLimited)
}

func TestHeadersMiddleware(t *testing.T) {
	h := HeadersMiddleware(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	for _, kv := range securityHeaders {
		assert.Equal(t, kv[1], rec.Header().Get(kv[0]), kv[0])
	}
	assert.Equal(t, HeaderValueNoStore, rec.Header().Get(HeaderCacheControl))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	assert.Empty(t, rec.Header().Get(HeaderCacheControl))
}

func TestLoggingMiddleware_RedactsCredentials(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	req := httptest.NewRequest(http.MethodPost, "/api/v1/time/next-day", nil)
	req.Header.Set(HeaderAPIKey, "key-123")
	req.Header.Set(HeaderAuthorization, "Bearer tok-456")
	req.Header.Set("User-Agent", "factorysim-test")
	loggingMiddleware(okHandler).ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	require.Contains(t, out, LogMsgRequestHeaders)
	assert.NotContains(t, out, "key-123")
	assert.NotContains(t, out, "tok-456")
	assert.Contains(t, out, RedactedValue)
	assert.Contains(t, out, "factorysim-test")
}

func TestLoggingMiddleware_SkipsProbes(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	loggingMiddleware(okHandler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Empty(t, buf.String())
}
