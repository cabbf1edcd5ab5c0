package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure, with no infrastructure dependency.

var (
	// Validation failures: reported to the user, nothing mutated.
	ErrZeroAmount    = errors.New("amount must be a nonzero number")
	ErrEmptyCustomer = errors.New("customer name is required")

	// Not-found conditions: recoverable navigation states, never fatal.
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Directory errors
	ErrDuplicateCustomer = errors.New("customer already exists")
)
