package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FactorySim_Go/internal/catalog"
	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/factory"
	"github.com/osse101/FactorySim_Go/internal/mod"
	"github.com/osse101/FactorySim_Go/internal/naming"
	"github.com/osse101/FactorySim_Go/internal/operator"
	"github.com/osse101/FactorySim_Go/internal/session"
)

var start = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

// MockPinger mocks the save store readiness probe
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newTestRouter(t *testing.T) (http.Handler, *session.Session) {
	t.Helper()
	fac, err := factory.NewDefault(context.Background(), factory.WithClock(start))
	require.NoError(t, err)
	names, err := naming.NewResolver("")
	require.NoError(t, err)
	sess := session.New(fac, operator.New(fac, operator.WithSeed(1)), session.WithResolver(names))

	fh := NewFactoryHandler(sess)
	oh := NewOperatorHandler(sess)
	ph := NewPersistenceHandler(sess, mod.NewLoader())

	r := chi.NewRouter()
	r.Get("/status", fh.HandleStatus)
	r.Get("/orders", fh.HandleOrders)
	r.Post("/time/advance", fh.HandleAdvanceTime)
	r.Post("/materials/purchase", fh.HandlePurchase)
	r.Post("/orders", fh.HandleCreateOrder)
	r.Post("/lines/{id}/worker", fh.HandleAssignWorkerToLine)
	r.Post("/catalog/requirements", fh.HandleSetRequirement)
	r.Delete("/catalog/products/{name}", fh.HandleRemoveProduct)
	r.Put("/operator/strategy", oh.HandleSetStrategy)
	r.Post("/operator/step", oh.HandleStep)
	r.Get("/saves", ph.HandleListSaves)
	r.Get("/bundle", ph.HandleExportBundle)
	r.Post("/bundle", ph.HandleImportBundle)
	return r, sess
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHandleHealthz(t *testing.T) {
	w := do(t, HandleHealthz(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`+"\n", w.Body.String())
}

func TestHandleReadyz(t *testing.T) {
	t.Run("store reachable", func(t *testing.T) {
		store := &MockPinger{}
		store.On("Ping", mock.Anything).Return(nil)

		w := do(t, HandleReadyz(store), http.MethodGet, "/readyz", "")
		assert.Equal(t, http.StatusOK, w.Code)
		store.AssertExpectations(t)
	})

	t.Run("store down", func(t *testing.T) {
		store := &MockPinger{}
		store.On("Ping", mock.Anything).Return(assert.AnError)

		w := do(t, HandleReadyz(store), http.MethodGet, "/readyz", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"unavailable"`)
		store.AssertExpectations(t)
	})

	t.Run("no store", func(t *testing.T) {
		w := do(t, HandleReadyz(nil), http.MethodGet, "/readyz", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), HealthNoStore)
	})
}

func TestPurchase(t *testing.T) {
	h, sess := newTestRouter(t)
	before := view(sess, func(f *factory.Facility) int { return f.MaterialQty(catalog.Wood) })

	t.Run("case-insensitive name", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/materials/purchase", `{"material":"wood","quantity":10}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, decode[SuccessResponse](t, w).Message, "Purchased 10")
	})

	t.Run("insufficient funds keeps the facility message", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/materials/purchase", `{"material":"Wood","quantity":100000}`)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.True(t, strings.HasPrefix(decode[ErrorResponse](t, w).Error, "Error: Insufficient funds!"))
	})

	t.Run("unknown material suggests close names", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/materials/purchase", `{"material":"Scrows","quantity":1}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decode[ErrorResponse](t, w)
		assert.Equal(t, "Error: Material Scrows does not exist!", resp.Error)
		assert.Equal(t, []string{catalog.Screws}, resp.Suggestions)
	})

	t.Run("invalid quantity", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/materials/purchase", `{"material":"Wood","quantity":0}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing field", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/materials/purchase", `{"quantity":1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[ValidationErrorResponse](t, w)
		assert.Equal(t, "This field is required", resp.Fields["material"])
	})

	t.Run("malformed body", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/materials/purchase", `{`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrMsgInvalidRequest, decode[ErrorResponse](t, w).Error)
	})

	after := view(sess, func(f *factory.Facility) int { return f.MaterialQty(catalog.Wood) })
	assert.Equal(t, before+10, after, "only the first purchase landed")
}

func TestCreateOrder(t *testing.T) {
	h, _ := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/orders", `{"product":"wooden chair","quantity":3,"deadline_days":2}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Message string       `json:"message"`
		Data    domain.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, catalog.WoodenChair, resp.Data.Product)
	assert.Equal(t, 3, resp.Data.Quantity)
	assert.Equal(t, start.Add(48*time.Hour), resp.Data.Deadline)

	w = do(t, h, http.MethodPost, "/orders", `{"product":"Wooden Chair","quantity":1,"deadline_days":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/orders", `{"product":"Wooden Chair","quantity":1,"deadline_days":9223372036854775807}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Must be at most 3650", decode[ValidationErrorResponse](t, w).Fields["deadline_days"])
}

func TestAssignWorkerToLine(t *testing.T) {
	h, _ := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/lines/abc/worker", `{"worker":"Worker A"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/lines/99/worker", `{"worker":"Worker A"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Error: Production line 99 does not exist!", decode[ErrorResponse](t, w).Error)

	w = do(t, h, http.MethodPost, "/lines/1/worker", `{"worker":"worker a"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Worker Worker A assigned to production line 1", decode[SuccessResponse](t, w).Message)
}

func TestCatalogEditing(t *testing.T) {
	h, _ := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/catalog/requirements",
		`{"target":{"name":"Wooden Chair","is_product":true},"ingredient":{"name":"Screws"},"quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, h, http.MethodPost, "/catalog/requirements",
		`{"target":{"name":"Wooden Chair","is_product":true},"ingredient":{"name":"Screws"},"quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/catalog/requirements",
		`{"target":{"name":"Wooden Chiar","is_product":true},"ingredient":{"name":"Screws"},"quantity":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode[ErrorResponse](t, w).Suggestions, catalog.WoodenChair)

	w = do(t, h, http.MethodDelete, "/catalog/products/"+"Wooden%20Chair", "")
	assert.Equal(t, http.StatusConflict, w.Code, "premium chair still needs it")
}

func TestStatus(t *testing.T) {
	h, _ := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[factory.Status](t, w)
	assert.Equal(t, 1, status.Day)
	assert.InDelta(t, 100.0, status.Balance, 1e-9)

	w = do(t, h, http.MethodGet, "/status?format=text", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "Status (Day 1)")
}

func TestAdvanceTime(t *testing.T) {
	h, _ := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/time/advance", `{"hours":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, start.Add(2*time.Hour), decode[factory.TimeReport](t, w).Clock)

	w = do(t, h, http.MethodPost, "/time/advance", `{"hours":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/time/advance", `{"hours":3000000}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Must be at most 8760", decode[ValidationErrorResponse](t, w).Fields["hours"])
}

func TestOperatorEndpoints(t *testing.T) {
	h, _ := newTestRouter(t)

	w := do(t, h, http.MethodPut, "/operator/strategy", `{"strategy":"reckless"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[ValidationErrorResponse](t, w).Fields["strategy"], "Must be one of")

	w = do(t, h, http.MethodPut, "/operator/strategy", `{"strategy":"Conservative"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodPost, "/operator/step", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[PassResponse](t, w)
	assert.NotEmpty(t, resp.ID)
	assert.Empty(t, resp.Error)
}

func TestSaves_NoStore(t *testing.T) {
	h, _ := newTestRouter(t)
	w := do(t, h, http.MethodGet, "/saves", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, ErrMsgNoStore, decode[ErrorResponse](t, w).Error)
}

func TestBundleExportImport(t *testing.T) {
	h, sess := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/bundle?format=yaml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Wooden Chair")

	w = do(t, h, http.MethodGet, "/bundle?format=toml", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	bakery := `{"name":"Bakery","initial_balance":50,
		"materials":[{"name":"Flour","cost":1,"unit":"kg"}],
		"products":[{"name":"Bread","production_time":30,"sale_price":4,"materials_required":{"Flour":2}}]}`
	w = do(t, h, http.MethodPost, "/bundle", bakery)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, decode[SuccessResponse](t, w).Message, "Loaded mod Bakery")

	_ = sess.Do(func(f *factory.Facility) error {
		assert.Len(t, f.Products(), 1)
		return nil
	})

	w = do(t, h, http.MethodPost, "/bundle", `{"initial_balance":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "schema violations are rejected")

	// The resolver follows the new catalog
	w = do(t, h, http.MethodPost, "/materials/purchase", `{"material":"flour","quantity":1}`)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestBindJSON_Rejections(t *testing.T) {
	h, _ := newTestRouter(t)

	t.Run("unknown field", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/materials/purchase", `{"material":"Wood","qty":1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrMsgInvalidRequest, decode[ErrorResponse](t, w).Error)
	})

	t.Run("empty body", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/time/advance", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrMsgEmptyBody, decode[ErrorResponse](t, w).Error)
	})

	t.Run("blank name", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/materials/purchase", `{"material":"   ","quantity":1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode[ValidationErrorResponse](t, w).Fields["material"], "blank")
	})

	t.Run("zero id", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/lines/0/worker", `{"worker":"Worker A"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
