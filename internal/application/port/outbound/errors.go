package outbound

import "errors"

var (
	ErrNotFound            = errors.New("record not found")
	ErrConcurrencyConflict = errors.New("record was modified by another transaction")
	ErrConstraintViolation = errors.New("storage constraint violated")
	ErrIdentityAssigned    = errors.New("identity must be unset on insert")
	ErrIdentityMissing     = errors.New("identity is required")
)
