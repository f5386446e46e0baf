package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors. Callers match them with errors.Is; services wrap
	// them with a short detail, e.g. fmt.Errorf("%w: missing name", ErrInvalidArgument).
	ErrUnauthenticated  = errors.New("unauthorized")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrAlreadyExists    = errors.New("already exist")
	ErrInvalidParent    = errors.New("parent not found")
	ErrParentNotFolder  = errors.New("parent is not a folder")
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrInternal         = errors.New("internal error")
)
