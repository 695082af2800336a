package pos

import "errors"

// Error taxonomy for the invoice/table/stock core. Handlers translate these
// to HTTP statuses with errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrLocked            = errors.New("invoice is locked")
	ErrLockedPrinted     = errors.New("line is locked and printed")
)
