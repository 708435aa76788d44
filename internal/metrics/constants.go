package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameHTTPRequestsRejected = "http_requests_rejected_total"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Facility metric names
const (
	MetricNameProductsProduced   = "factory_products_produced_total"
	MetricNameRecipesCrafted     = "factory_recipes_crafted_total"
	MetricNameOrdersCreated      = "factory_orders_created_total"
	MetricNameOrdersCompleted    = "factory_orders_completed_total"
	MetricNameOrderRevenue       = "factory_order_revenue_total"
	MetricNameMaterialsPurchased = "factory_materials_purchased_total"
	MetricNameProductsSold       = "factory_products_sold_total"
	MetricNameMoneySpent         = "factory_money_spent_total"
	MetricNameMoneyEarned        = "factory_money_earned_total"
	MetricNamePayrollPaid        = "factory_payroll_paid_total"
	MetricNamePayrollShortfalls  = "factory_payroll_shortfalls_total"
	MetricNameOperatorPasses     = "factory_operator_passes_total"
	MetricNameOperatorCommands   = "factory_operator_commands_total"
	MetricNameBalance            = "factory_balance"
	MetricNameDay                = "factory_day"
	MetricNameDailyProfit        = "factory_daily_profit"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextHTTPRequestsRejected = "HTTP requests refused before reaching a handler"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of events whose handlers failed"
)

// Facility metric help text
const (
	HelpTextProductsProduced   = "Units finished by production lines"
	HelpTextRecipesCrafted     = "Items finished by crafting stations"
	HelpTextOrdersCreated      = "Orders opened"
	HelpTextOrdersCompleted    = "Orders fulfilled"
	HelpTextOrderRevenue       = "Money credited by fulfilled orders"
	HelpTextMaterialsPurchased = "Material units bought"
	HelpTextProductsSold       = "Product units sold"
	HelpTextMoneySpent         = "Money spent on material purchases"
	HelpTextMoneyEarned        = "Money earned from direct sales"
	HelpTextPayrollPaid        = "Money paid out as wages"
	HelpTextPayrollShortfalls  = "Day rollovers where wages exceeded the balance"
	HelpTextOperatorPasses     = "Operator passes by strategy and outcome"
	HelpTextOperatorCommands   = "Commands issued by the operator"
	HelpTextBalance            = "Facility balance after the last rollover"
	HelpTextDay                = "Current simulated day"
	HelpTextDailyProfit        = "Profit of the last closed day"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelProduct  = "product"
	LabelMaterial = "material"
	LabelRecipe   = "recipe"
	LabelKind     = "kind"
	LabelStrategy = "strategy"
	LabelOutcome  = "outcome"
	LabelReason   = "reason"
)

// UnmatchedRoute labels requests no route matched, keeping 404 probes out of the path label
const UnmatchedRoute = "unmatched"

// Rejection reason label values
const (
	ReasonUnauthorized = "unauthorized"
	ReasonRateLimited  = "rate_limited"
)

// Outcome label values
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
