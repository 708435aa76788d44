package operator

import "time"

// ==================== Cadence ====================

// DefaultInterval is the simulated time between decision passes
const DefaultInterval = time.Hour

// ==================== Balanced heuristics ====================

const (
	// RestockBelow triggers a purchase when stock is under this level
	RestockBelow = 100

	// RestockFundsFactor requires balance > cost × factor before buying
	RestockFundsFactor = 50

	// RestockMaxQuantity caps a single purchase
	RestockMaxQuantity = 200

	// TargetOpenOrders is the backlog below which analysis suggests more orders
	TargetOpenOrders = 2

	// MaxOperatorOrders stops order creation once the book holds this many
	// orders, completed ones included
	MaxOperatorOrders = 2

	// Random order bounds, inclusive
	OrderMinQuantity = 3
	OrderMaxQuantity = 10
	OrderMinDays     = 2
	OrderMaxDays     = 5
)

// ==================== Aggressive heuristics ====================

const (
	HireMaxWorkers  = 5
	HireMinBalance  = 500.0
	HireSkill       = 3
	HireSalary      = 120.0
	HireNameFmt     = "AI Worker%d"
	LineMaxCount    = 4
	LineMinBalance  = 1000.0
	LineCapacity    = 10
	StationMaxCount = 3
	StationMinBal   = 800.0
	StationName     = "AI Crafting Station"
	StationCapacity = 5
)

// ==================== Conservative heuristics ====================

const (
	CriticalBelow  = 50
	CriticalTarget = 100
	CriticalMinBal = 100.0
)

// CriticalMaterials are restocked by the conservative strategy
var CriticalMaterials = []string{"Wood", "Metal", "Screws"}

// ==================== Analysis ====================

const (
	LowFundsBelow   = 200.0
	GoodFundsAbove  = 1000.0
	LowStockBelow   = 50
	FundsWarning    = "Warning: Insufficient funds!"
	FundsGood       = "Good: Sufficient funds"
	FundsNormal     = "Normal: Good financial status"
	SuggestWorkers  = "Suggestion: Assign more workers to production lines"
	SuggestRestock  = "Suggestion: Restock inventory"
	SuggestOrders   = "Suggestion: Create more orders"
	StockSufficient = "Material inventory: Sufficient"
)

// ==================== Action messages ====================

const (
	ActionWorkerToLineFmt    = "AI assigned %s to production line %d"
	ActionWorkerToStationFmt = "AI assigned %s to crafting station %d"
	ActionProduceFmt         = "AI started producing %s on production line %d"
	ActionCraftFmt           = "AI started crafting %s on crafting station %d"
	ActionPurchaseFmt        = "AI purchased %d units of %s"
	ActionOrderFmt           = "AI created order: %s x%d, deliver within %d days"
	ActionHireFmt            = "AI hired worker %s"
	ActionLineAdded          = "AI added new production line"
	ActionStationAdded       = "AI added new crafting station"
)

// ==================== Log Messages ====================

const (
	LogMsgStarted         = "Operator started"
	LogMsgStopped         = "Operator stopped"
	LogMsgPassStarted     = "Operator pass started"
	LogMsgPassCompleted   = "Operator pass completed"
	LogMsgPassPanicked    = "Operator pass aborted"
	LogMsgCommandRejected = "Operator command rejected"
	LogMsgStrategyChanged = "Operator strategy changed"
)
