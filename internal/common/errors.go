// Package common defines shared constants and sentinel errors used across
// the ledger service. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Validation errors (malformed or missing input).
	ErrValidation = errors.New("validation error")

	// Business-rule errors on a value (non-positive amount, self-transfer).
	ErrInvalidValue = errors.New("invalid value")

	// Auth errors. ErrInvalidCredentials is returned for both an unknown
	// username and a wrong password so callers cannot probe for accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")

	// Generic/internal flow control.
	ErrInternal = errors.New("internal error")
)
