package authservice

import "errors"

var (
	// ErrTokenInvalid is returned when the auth service rejects the token
	ErrTokenInvalid = errors.New("auth token invalid or expired")

	// ErrInternal is returned on internal client errors
	ErrInternal = errors.New("authservice client: internal error")

	// ErrInvalidResponse is returned on a malformed auth service response
	ErrInvalidResponse = errors.New("authservice client: invalid response")
)
