package staff

import "errors"

var (
	// ErrEstablishmentNotFound is returned when the tenant does not exist
	ErrEstablishmentNotFound = errors.New("establishment not found")

	// ErrProfessionalNotFound is returned when the professional does not exist
	ErrProfessionalNotFound = errors.New("professional not found")

	// ErrAccessDenied is returned when the caller may not manage staff
	ErrAccessDenied = errors.New("access denied")

	// ErrEstablishmentInactive is returned when the tenant's subscription does not admit changes
	ErrEstablishmentInactive = errors.New("establishment is not active")

	// ErrQuotaExceeded is returned when the plan's professional ceiling is reached
	ErrQuotaExceeded = errors.New("professional quota exceeded for current plan")

	// ErrEmailTaken is returned when the email already belongs to a professional
	ErrEmailTaken = errors.New("email already registered")

	// ErrHasFutureAppointments is returned when removing a professional with upcoming work
	ErrHasFutureAppointments = errors.New("professional has future appointments")

	// ErrAlreadyInactive is returned on a second removal
	ErrAlreadyInactive = errors.New("professional already inactive")

	// ErrInvalidInput is returned for malformed input
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service errors
	ErrInternal = errors.New("service: internal error")
)
