package repository

import "errors"

// Common repository errors
var (
	// ErrDuplicateCode is returned when a machine code is already taken
	ErrDuplicateCode = errors.New("machine code already in use")
)
