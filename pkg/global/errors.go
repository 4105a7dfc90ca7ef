package global

import "errors"

// Engine error taxonomy. Handlers translate these to HTTP responses;
// the pricing/loyalty/vault packages never log or panic on them.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidCurrency     = errors.New("unsupported currency")
	ErrEntitlementDenied   = errors.New("entitlement denied")
	ErrLimitExceeded       = errors.New("limit exceeded")
	ErrInsufficientPoints  = errors.New("insufficient loyalty points")
	ErrConcurrencyConflict = errors.New("concurrent update conflict")
	ErrSizeNotSelected     = errors.New("size not selected")
	ErrOutOfStock          = errors.New("out of stock")
	ErrNotFound            = errors.New("not found")
	ErrAlreadyClaimed      = errors.New("bonus already claimed")
)
