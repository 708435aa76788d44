package factory

import "time"

// ==================== Defaults ====================

const (
	// DefaultName is the facility name of the starter scenario
	DefaultName = "Efficient Factory"

	// DefaultBalance is the opening balance of the starter scenario
	DefaultBalance = 420.0

	// DefaultLineCapacity is the capacity of lines added without an explicit value
	DefaultLineCapacity = 10

	// HoursPerDay converts order deadlines from days to simulated time
	HoursPerDay = 24 * time.Hour

	// MaxAdvanceHours bounds a single time advance to one year
	MaxAdvanceHours = 365 * 24

	// MaxDeadlineDays bounds how far out an order may be due
	MaxDeadlineDays = 10 * 365

	// MaxTradeQuantity bounds a single purchase or order
	MaxTradeQuantity = 1_000_000
)

// ==================== Command Messages ====================

// Failure formats (shown to the operator verbatim)
const (
	MsgMaterialNotFoundFmt  = "Error: Material %s does not exist!"
	MsgProductNotFoundFmt   = "Error: Product %s does not exist!"
	MsgWorkerNotFoundFmt    = "Error: Worker %s does not exist!"
	MsgLineNotFoundFmt      = "Error: Production line %d does not exist!"
	MsgStationNotFoundFmt   = "Error: Crafting station %d does not exist!"
	MsgLineUnstaffedFmt     = "Error: Production line %d has no assigned worker!"
	MsgStationUnstaffedFmt  = "Error: Crafting station %d has no assigned worker!"
	MsgNotCraftableFmt      = "Error: %s is not craftable!"
	MsgInsufficientFundsFmt = "Error: Insufficient funds! Need %s, current balance %s"
	MsgInsufficientStockFmt = "Error: Insufficient stock! %s only has %d units"
	MsgInvalidQuantityFmt   = "Error: Quantity must be positive, got %d"
	MsgInvalidHoursFmt      = "Error: Cannot advance time by %d hours"
	MsgInvalidDaysFmt       = "Error: Deadline must not be in the past (%d days)"
	MsgHoursTooLargeFmt     = "Error: Cannot advance time by more than %d hours at once, got %d"
	MsgDaysTooLargeFmt      = "Error: Deadline must be within %d days, got %d"
	MsgQuantityTooLargeFmt  = "Error: Quantity must be at most %d, got %d"
	MsgInvalidDayFmt        = "Error: Day must be at least 1, got %d"
	MsgStockUnknownFmt      = "Error: Initial stock names unknown material %s"
	MsgWorkerExistsFmt      = "Error: Worker %s already exists!"
	MsgInvalidSkillFmt      = "Error: Worker %s needs a skill level of at least 1"
	MsgInvalidCapacityFmt   = "Error: Capacity must be positive, got %d"
	MsgProductInOrderFmt    = "Error: Product %s has open orders!"
	MsgUnitBusyFmt          = "Error: %s is still used by %s!"
	MsgPayrollShortfallFmt  = "Warning: Insufficient funds to pay worker salaries! Need %s, current balance %s"
)

// Success formats
const (
	MsgPurchasedFmt       = "Purchased %d%s %s, cost %s"
	MsgOrderCreatedFmt    = "Created new order: %s"
	MsgWorkerToLineFmt    = "Worker %s assigned to production line %d"
	MsgWorkerToStationFmt = "Worker %s assigned to crafting station %d"
	MsgLineStartedFmt     = "Production line %d started producing %s"
	MsgStationStartedFmt  = "Crafting station %d started crafting %s"
	MsgSoldFmt            = "Sold %d units of %s, earned %s"
	MsgPayrollPaidFmt     = "Paid worker salaries %s"
	MsgWorkerHiredFmt     = "Hired %s (Skill:%d, Salary:%s/day)"
	MsgLineAddedFmt       = "Added production line %d (Capacity:%d)"
	MsgStationAddedFmt    = "Added %s %d (Capacity:%d)"
	MsgProductAddedFmt    = "Added product %s"
	MsgMaterialAddedFmt   = "Added material %s"
	MsgProductRemovedFmt  = "Removed product %s"
	MsgMaterialRemovedFmt = "Removed material %s"
	MsgRequirementSetFmt  = "%s now requires %s×%d"
	MsgRequirementDropFmt = "%s no longer requires %s"
	MsgBundleLoadedFmt    = "Loaded mod %s (%d materials, %d products, %d workers, %d stations)"
	MsgStateRestoredFmt   = "Restored %s (Day %d)"
)

// ==================== Log Messages ====================

const (
	LogMsgCommandFailed      = "Facility command failed"
	LogMsgMaterialPurchased  = "Material purchased"
	LogMsgOrderCreated       = "Order created"
	LogMsgWorkerAssigned     = "Worker assigned"
	LogMsgJobStarted         = "Job started"
	LogMsgProductSold        = "Product sold"
	LogMsgTimeAdvanced       = "Time advanced"
	LogMsgProductionDone     = "Production completed"
	LogMsgCraftingDone       = "Crafting completed"
	LogMsgOrderCompleted     = "Order completed"
	LogMsgDayStarted         = "New day started"
	LogMsgPayrollShortfall   = "Payroll forced below zero"
	LogMsgEventPublishFailed = "Failed to publish facility event"
	LogMsgRosterChanged      = "Roster changed"
	LogMsgCatalogChanged     = "Catalog changed"
	LogMsgBundleLoaded       = "Mod bundle loaded"
	LogMsgStateRestored      = "Save state restored"
)
