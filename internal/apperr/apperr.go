// Package apperr defines the error taxonomy shared by the repository,
// session, and handler layers. Repositories and the session manager wrap
// these sentinels with context; the handlers package is the single place
// that maps them to HTTP status codes.
package apperr

import "errors"

var (
	// ErrValidation marks malformed or empty input.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateIdentity marks a username or email that is already taken.
	ErrDuplicateIdentity = errors.New("duplicate identity")

	// ErrInvalidCredentials marks a failed login. It carries no
	// user-not-found vs wrong-password distinction.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized marks a request with no identity attempting a
	// write operation.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden marks an authenticated actor denied by policy.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound marks a missing resource.
	ErrNotFound = errors.New("not found")
)
