package establishments

import "errors"

var (
	// ErrEstablishmentNotFound is returned when the tenant does not exist
	ErrEstablishmentNotFound = errors.New("establishment not found")

	// ErrSlugTaken is returned when the slug is already claimed
	ErrSlugTaken = errors.New("slug already taken")

	// ErrAccessDenied is returned when the caller may not create tenants
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput is returned for malformed input
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service errors
	ErrInternal = errors.New("service: internal error")
)
