package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)

	HTTPRequestsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsRejected,
			Help: HelpTextHTTPRequestsRejected,
		},
		[]string{LabelReason},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Facility Metrics
var (
	ProductsProduced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameProductsProduced,
			Help: HelpTextProductsProduced,
		},
		[]string{LabelProduct},
	)

	RecipesCrafted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRecipesCrafted,
			Help: HelpTextRecipesCrafted,
		},
		[]string{LabelRecipe, LabelKind},
	)

	OrdersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOrdersCreated,
			Help: HelpTextOrdersCreated,
		},
		[]string{LabelProduct},
	)

	OrdersCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOrdersCompleted,
			Help: HelpTextOrdersCompleted,
		},
		[]string{LabelProduct},
	)

	OrderRevenue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOrderRevenue,
			Help: HelpTextOrderRevenue,
		},
	)

	MaterialsPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMaterialsPurchased,
			Help: HelpTextMaterialsPurchased,
		},
		[]string{LabelMaterial},
	)

	ProductsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameProductsSold,
			Help: HelpTextProductsSold,
		},
		[]string{LabelProduct},
	)

	MoneySpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMoneySpent,
			Help: HelpTextMoneySpent,
		},
	)

	MoneyEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMoneyEarned,
			Help: HelpTextMoneyEarned,
		},
	)

	PayrollPaid = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePayrollPaid,
			Help: HelpTextPayrollPaid,
		},
	)

	PayrollShortfalls = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePayrollShortfalls,
			Help: HelpTextPayrollShortfalls,
		},
	)

	OperatorPasses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOperatorPasses,
			Help: HelpTextOperatorPasses,
		},
		[]string{LabelStrategy, LabelOutcome},
	)

	OperatorCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOperatorCommands,
			Help: HelpTextOperatorCommands,
		},
		[]string{LabelStrategy},
	)

	Balance = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameBalance,
			Help: HelpTextBalance,
		},
	)

	Day = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameDay,
			Help: HelpTextDay,
		},
	)

	DailyProfit = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameDailyProfit,
			Help: HelpTextDailyProfit,
		},
	)
)

// RecordRejection counts a request refused by the HTTP guards
func RecordRejection(reason string) {
	HTTPRequestsRejected.WithLabelValues(reason).Inc()
}
