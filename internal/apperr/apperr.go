// Package apperr defines the failure taxonomy shared by the store, service
// and handler layers. Services return these sentinels (possibly wrapped);
// handlers are the only place they are translated to HTTP statuses.
package apperr

import "errors"

var (
	// ErrUnauthenticated means the request carried no valid identity.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidInput means the request was rejected before any mutation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound means the record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the record exists but belongs to another owner.
	// It is kept distinct from ErrNotFound internally even when the external
	// response intentionally conflates the two.
	ErrForbidden = errors.New("forbidden")
)
