package appointments

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAccessDenied is returned when the caller may not touch the appointment
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition is returned for a lifecycle move the state machine forbids
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrCancellationTooLate is returned when the customer cancels inside the notice window
	ErrCancellationTooLate = errors.New("cancellation window has closed")

	// ErrNotCompleted is returned when rating a not-yet-completed appointment
	ErrNotCompleted = errors.New("appointment is not completed")

	// ErrAlreadyRated is returned on a second rating attempt
	ErrAlreadyRated = errors.New("appointment already rated")

	// ErrInvalidRating is returned for a score outside 1-5
	ErrInvalidRating = errors.New("rating score must be between 1 and 5")

	// ErrInvalidInput is returned for malformed input
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service errors
	ErrInternal = errors.New("service: internal error")
)
