// Package common defines shared constants and sentinel errors used across
// client and server layers of the Social Battery Forecast. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Identity gate errors.
	ErrorInvalidCredentials    = errors.New("invalid credentials")
	ErrorIdentityAlreadyExists = errors.New("identity already exists")
	ErrorIdentityNotFound      = errors.New("identity not found")
	ErrorCredentialMismatch    = errors.New("credential mismatch")

	// Oracle boundary errors. Any transport failure or schema violation on the
	// forecast path collapses into this one value; the caller only ever decides
	// between "show the saturated-sensors message" and "keep going".
	ErrorOracleUnavailable = errors.New("oracle unavailable")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
