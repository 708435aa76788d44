package catalog

// ==================== Failure Messages ====================

// User-facing failure formats
const (
	MsgProductNotFoundFmt   = "Error: Product %s does not exist!"
	MsgMaterialNotFoundFmt  = "Error: Material %s does not exist!"
	MsgProductExistsFmt     = "Error: Product %s already exists!"
	MsgMaterialExistsFmt    = "Error: Material %s already exists!"
	MsgReferencedFmt        = "Error: %s is still required by %s!"
	MsgDanglingFmt          = "Error: %s requires unknown %s %s"
	MsgEmptyNameFmt         = "Error: %s name must not be empty"
	MsgBadProductionTimeFmt = "Error: Product %s must have a positive production time"
	MsgNegativePriceFmt     = "Error: Product %s has a negative sale price"
	MsgNegativeCostFmt      = "Error: Material %s has a negative cost"
	MsgBadRequirementQtyFmt = "Error: %s requires %s×%d; quantities must be positive"
	MsgUnknownRecipeKindFmt = "Error: unknown recipe kind for %s"
)

// Entity labels used in messages
const (
	LabelProduct  = "product"
	LabelMaterial = "material"
)
