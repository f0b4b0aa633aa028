package services

import "errors"

// Sentinel errors mapped to HTTP statuses at the handler layer.
var (
	// ErrValidation indicates a recoverable input problem the caller can correct.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateAccount indicates a signup conflict on email or badge number.
	ErrDuplicateAccount = errors.New("account already exists")
	// ErrInvalidCredentials is returned for both unknown email and wrong password,
	// deliberately not distinguishing the two.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound indicates a missing record.
	ErrNotFound = errors.New("not found")
)
