package repository

import "errors"

// Sentinel errors for the credential repository.
var (
	// ErrUserNotFound indicates the user does not exist in storage.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUsername indicates a unique-constraint violation on the
	// username column, distinct from any other storage failure.
	ErrDuplicateUsername = errors.New("username already exists")
)
