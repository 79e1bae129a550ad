package services

import "errors"

var (
	// ErrInvalidCredentials covers unknown name and wrong password alike;
	// callers must not reveal which.
	ErrInvalidCredentials = errors.New("invalid name or password")

	// ErrUnauthenticated covers unknown and expired tokens alike.
	ErrUnauthenticated = errors.New("invalid or expired token")

	// ErrForbidden means the identity is valid but lacks privilege for the
	// target resource.
	ErrForbidden = errors.New("insufficient privileges")

	// ErrIssuanceFailed means token generation kept colliding past the retry
	// budget. Retryable server fault.
	ErrIssuanceFailed = errors.New("token issuance failed")

	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)
