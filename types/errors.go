package types

import "errors"

const (
	ErrInvalidInput  = "Invalid input"
	ErrDatabaseError = "Database error"
	ErrUnauthorized  = "Unauthorized access"
	ErrInternalError = "internal server error"
)

// Sentinel errors returned by the service layer. Handlers map them to
// HTTP statuses; anything else is treated as a storage failure.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("record already exists")
	ErrNotFound   = errors.New("record not found")
)
