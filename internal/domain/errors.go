package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for sentinel text
// Use these in assert.Contains() checks when testing error classification
const (
	// Entity errors
	ErrMsgWorkerNotFound   = "worker not found"
	ErrMsgProductNotFound  = "product not found"
	ErrMsgMaterialNotFound = "material not found"
	ErrMsgLineNotFound     = "production line not found"
	ErrMsgStationNotFound  = "crafting station not found"
	ErrMsgOrderNotFound    = "order not found"

	// Work unit errors
	ErrMsgUnitUnstaffed = "work unit has no assigned worker"
	ErrMsgNotCraftable  = "recipe is not craftable"

	// Ledger errors
	ErrMsgInsufficientStock = "insufficient stock"
	ErrMsgInsufficientFunds = "insufficient funds"

	// Input errors
	ErrMsgInvalidQuantity = "invalid quantity"
	ErrMsgDuplicateName   = "duplicate name"

	// Catalog errors
	ErrMsgEntityReferenced  = "entity is referenced by a recipe"
	ErrMsgDanglingReference = "recipe references unknown entity"
	ErrMsgInvalidCatalog    = "invalid catalog"

	// Persistence errors
	ErrMsgSaveNotFound = "save not found"
)

// Common domain errors
// Failures returned by the facility wrap one of these so callers can branch with errors.Is
// while still surfacing the user-facing message verbatim.
var (
	ErrWorkerNotFound   = errors.New(ErrMsgWorkerNotFound)
	ErrProductNotFound  = errors.New(ErrMsgProductNotFound)
	ErrMaterialNotFound = errors.New(ErrMsgMaterialNotFound)
	ErrLineNotFound     = errors.New(ErrMsgLineNotFound)
	ErrStationNotFound  = errors.New(ErrMsgStationNotFound)
	ErrOrderNotFound    = errors.New(ErrMsgOrderNotFound)

	ErrUnitUnstaffed = errors.New(ErrMsgUnitUnstaffed)
	ErrNotCraftable  = errors.New(ErrMsgNotCraftable)

	ErrInsufficientStock = errors.New(ErrMsgInsufficientStock)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	ErrInvalidQuantity = errors.New(ErrMsgInvalidQuantity)
	ErrDuplicateName   = errors.New(ErrMsgDuplicateName)

	ErrEntityReferenced  = errors.New(ErrMsgEntityReferenced)
	ErrDanglingReference = errors.New(ErrMsgDanglingReference)
	ErrInvalidCatalog    = errors.New(ErrMsgInvalidCatalog)

	ErrSaveNotFound = errors.New(ErrMsgSaveNotFound)
)

// Failure is a domain failure whose message is shown to the operator as-is.
// Error returns the message unchanged; Unwrap exposes the sentinel for classification.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Fail builds a Failure wrapping sentinel with a formatted message.
func Fail(sentinel error, format string, args ...any) *Failure {
	return &Failure{
		Message: fmt.Sprintf(format, args...),
		Err:     sentinel,
	}
}
