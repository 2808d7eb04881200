package domain

import "errors"

// Common domain errors returned by repositories. Usecases translate these
// into caller-facing apperror values.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("resource already exists")
)
