package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when trying to create an identity with an existing email
	ErrDuplicateEmail = errors.New("identity with this email already exists")

	// ErrDuplicateProfile is returned when a profile already exists for an identity
	ErrDuplicateProfile = errors.New("profile for this identity already exists")

	// ErrDuplicateToken is returned when trying to create a token with an existing hash
	ErrDuplicateToken = errors.New("token with this hash already exists")

	// ErrDuplicateFederatedLink is returned when a provider connection already exists
	ErrDuplicateFederatedLink = errors.New("federated link already exists")
)
