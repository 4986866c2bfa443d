package domain

import "errors"

// Error kinds surfaced by the escrow engine. Usecases and repositories wrap
// these with %w so callers can classify failures with errors.Is.
var (
	ErrValidation          = errors.New("validation failed")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrUnauthorized        = errors.New("actor is not authorized")
	ErrDuplicateApproval   = errors.New("duplicate approval")
	ErrIdempotencyConflict = errors.New("idempotency key already used")
	ErrAlreadyResolved     = errors.New("dispute already resolved")
	ErrNotFound            = errors.New("entity not found")
	ErrPersistence         = errors.New("persistence failed")
)
