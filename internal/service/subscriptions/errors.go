package subscriptions

import "errors"

var (
	// ErrEstablishmentNotFound is returned when the tenant does not exist
	ErrEstablishmentNotFound = errors.New("establishment not found")

	// ErrAccessDenied is returned when the caller may not manage the subscription
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidPlan is returned for a plan outside the enumeration
	ErrInvalidPlan = errors.New("invalid subscription plan")

	// ErrSamePlan is returned when changing to the currently held plan
	ErrSamePlan = errors.New("subscription already on this plan")

	// ErrAlreadyInactive is returned on a second cancellation
	ErrAlreadyInactive = errors.New("subscription already inactive")

	// ErrNotInactive is returned when reactivating a subscription that is not inactive
	ErrNotInactive = errors.New("subscription is not inactive")

	// ErrTooManyProfessionals is returned when the target plan cannot hold the current staff
	ErrTooManyProfessionals = errors.New("active professionals exceed the target plan limit")

	// ErrNoPaymentMethod is returned when reactivation lacks a stored payment token
	ErrNoPaymentMethod = errors.New("no payment method on file")

	// ErrInvalidInput is returned for malformed input
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service errors
	ErrInternal = errors.New("service: internal error")
)
