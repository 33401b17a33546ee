package service

import "errors"

// Error kinds callers branch on. Anything else bubbling out of a service is
// a persistence failure wrapped with context.
var (
	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied means the record exists but belongs to another
	// user. Never folded into ErrNotFound so the caller can tell the two
	// apart.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidInput covers malformed dates, non-positive grid counts and
	// weekly schedules without weekdays.
	ErrInvalidInput = errors.New("invalid input")
)
