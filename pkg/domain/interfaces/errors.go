package interfaces

import "errors"

// Errors returned by every repository implementation. Backends alias these so
// that callers can match with errors.Is regardless of the store in use.
var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("duplicate name")
)
