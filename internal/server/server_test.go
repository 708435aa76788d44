package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FactorySim_Go/internal/factory"
	"github.com/osse101/FactorySim_Go/internal/mod"
	"github.com/osse101/FactorySim_Go/internal/naming"
	"github.com/osse101/FactorySim_Go/internal/operator"
	"github.com/osse101/FactorySim_Go/internal/session"
)

func newTestDeps(t *testing.T) Deps {
	t.Helper()
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	fac, err := factory.NewDefault(context.Background(), factory.WithClock(start))
	require.NoError(t, err)
	names, err := naming.NewResolver("")
	require.NoError(t, err)
	return Deps{
		Session:     session.New(fac, operator.New(fac), session.WithResolver(names)),
		Loader:      mod.NewLoader(),
		Names:       names,
		FactoryName: fac.Name(),
		Version:     "test",
	}
}

func serve(h http.Handler, method, path, body, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if key != "" {
		req.Header.Set(HeaderAPIKey, key)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Auth(t *testing.T) {
	r := NewRouter("secret", nil, newTestDeps(t))

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/v1/status", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/v1/status", "", "wrong").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/status", "", "secret").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/healthz", "", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/readyz", "", "").Code)
}

func TestRouter_OpenWithoutKey(t *testing.T) {
	r := NewRouter("", nil, newTestDeps(t))
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/lines", "", "").Code)
}

func TestRouter_Version(t *testing.T) {
	r := NewRouter("secret", nil, newTestDeps(t))
	rec := serve(r, http.MethodGet, "/version", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version":"test"`)
	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentTypeOptions))
}

func TestRouter_CommandFlow(t *testing.T) {
	r := NewRouter("", nil, newTestDeps(t))

	rec := serve(r, http.MethodPost, "/api/v1/workers", `{"name":"Zed","skill_level":2,"salary":50}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(r, http.MethodPost, "/api/v1/stations/1/worker", `{"worker":"zed"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Worker Zed assigned to crafting station 1")

	rec = serve(r, http.MethodPost, "/api/v1/operator/start", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(r, http.MethodGet, "/api/v1/operator/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"running":true`)

	rec = serve(r, http.MethodPost, "/api/v1/time/next-day", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"day":2`)

	rec = serve(r, http.MethodPost, "/api/v1/admin/reload-aliases", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_BodyLimit(t *testing.T) {
	r := NewRouter("", nil, newTestDeps(t))
	huge := `{"name":"` + strings.Repeat("x", MaxRequestBytes) + `"}`
	rec := serve(r, http.MethodPost, "/api/v1/bundle", huge, "")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
