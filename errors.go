package router

import "errors"

// Registration and navigation errors.
var (
	// ErrRouteExists is returned when adding a pattern that is already
	// registered. Replacing a handler is the explicit Update operation.
	ErrRouteExists = errors.New("route already registered")

	// ErrRedirectExists is returned when adding a redirect whose source
	// is already registered.
	ErrRedirectExists = errors.New("redirect already registered")

	// ErrInvalidPattern is returned for patterns that do not start with
	// "/" or fail to compile.
	ErrInvalidPattern = errors.New("invalid route pattern")

	// ErrDuplicateParam is returned when a pattern binds the same
	// parameter name twice.
	ErrDuplicateParam = errors.New("duplicate parameter name in pattern")

	// ErrTooManyRedirects is surfaced on the error channel when a
	// navigation exceeds the configured redirect budget.
	ErrTooManyRedirects = errors.New("too many redirects")
)
