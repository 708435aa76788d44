package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/event"
)

func TestCollector_RecordsFacilityEvents(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)
	ctx := context.Background()
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	produced := testutil.ToFloat64(ProductsProduced.WithLabelValues("Gadget"))
	spent := testutil.ToFloat64(MoneySpent)
	shortfalls := testutil.ToFloat64(PayrollShortfalls)
	revenue := testutil.ToFloat64(OrderRevenue)
	failedPasses := testutil.ToFloat64(OperatorPasses.WithLabelValues("balanced", OutcomeError))

	assert.NoError(t, bus.Publish(ctx, event.NewProductionCompletedEvent(1, "Gadget", 0, at)))
	assert.NoError(t, bus.Publish(ctx, event.NewTradeEvent(event.MaterialPurchased, "Wire", 10, 25)))
	assert.NoError(t, bus.Publish(ctx, event.NewPayrollEvent(2, 500, -200, true)))
	assert.NoError(t, bus.Publish(ctx, event.NewDayStartedEvent(2, 42, -200, at)))
	assert.NoError(t, bus.Publish(ctx, event.NewOrderEvent(event.OrderCompleted,
		domain.Order{ID: 1, Product: "Gadget", Quantity: 2, UnitPrice: 15, Completed: true})))
	assert.NoError(t, bus.Publish(ctx, event.NewOperatorPassEvent("p1", "balanced", 3, assert.AnError)))

	assert.Equal(t, produced+1, testutil.ToFloat64(ProductsProduced.WithLabelValues("Gadget")))
	assert.Equal(t, spent+25, testutil.ToFloat64(MoneySpent))
	assert.Equal(t, shortfalls+1, testutil.ToFloat64(PayrollShortfalls))
	assert.Equal(t, revenue+30, testutil.ToFloat64(OrderRevenue))
	assert.Equal(t, failedPasses+1, testutil.ToFloat64(OperatorPasses.WithLabelValues("balanced", OutcomeError)))
	assert.Equal(t, 2.0, testutil.ToFloat64(Day))
	assert.Equal(t, -200.0, testutil.ToFloat64(Balance))
	assert.Equal(t, 42.0, testutil.ToFloat64(DailyProfit))
}

func TestCollector_IgnoresUndecodablePayloads(t *testing.T) {
	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.Event{
		Type:    event.ProductSold,
		Payload: make(chan int),
	})
	assert.NoError(t, err)
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/lines/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/lines/{id}", "418")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lines/7", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestMiddleware_UnmatchedRouteSharesOneSeries(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, UnmatchedRoute, "404")
	before := testutil.ToFloat64(counter)

	for _, p := range []string{"/wp-admin", "/.env"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}
	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestRecordRejection(t *testing.T) {
	counter := HTTPRequestsRejected.WithLabelValues(ReasonRateLimited)
	before := testutil.ToFloat64(counter)
	RecordRejection(ReasonRateLimited)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
