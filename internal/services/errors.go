package services

import "errors"

// Failure set of the sale controller. Every error aborts the enclosing
// arena transaction; callers observe a clean failure and may retry.
var (
	ErrNotAuthorized      = errors.New("not authorized")
	ErrNotActive          = errors.New("mint not active")
	ErrInvalidStage       = errors.New("invalid stage")
	ErrNotAllowed         = errors.New("not allowed")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrAlreadyExists      = errors.New("already exists")
	ErrAlreadyInitialized = errors.New("already initialized")
	ErrNotFound           = errors.New("not found")
)

// ErrorCode maps a controller error to its stable wire code. Unknown
// errors map to "internal".
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotAuthorized):
		return "not_authorized"
	case errors.Is(err, ErrNotActive):
		return "not_active"
	case errors.Is(err, ErrInvalidStage):
		return "invalid_stage"
	case errors.Is(err, ErrNotAllowed):
		return "not_allowed"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrAlreadyInitialized):
		return "already_initialized"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
