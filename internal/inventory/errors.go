package inventory

import "errors"

// The three caller-recoverable conditions. Everything else bubbles up
// untouched and is treated as fatal for the request.
var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrNotFound          = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrDuplicateTransaction is a caller-fixable conflict: the store
	// enforces transaction id uniqueness as the final word.
	ErrDuplicateTransaction = errors.New("transaction id already used")
)
