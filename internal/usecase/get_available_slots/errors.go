package get_available_slots

import "errors"

var (
	ErrEstablishmentNotFound = errors.New("establishment not found")
	ErrProfessionalNotFound  = errors.New("professional not found")
	ErrInvalidDate           = errors.New("date is in the past")
	ErrInternal              = errors.New("internal error")
)
