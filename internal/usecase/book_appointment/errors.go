package book_appointment

import "errors"

var (
	ErrEstablishmentNotFound = errors.New("establishment not found")
	ErrEstablishmentInactive = errors.New("establishment not accepting appointments")
	ErrProfessionalNotFound  = errors.New("professional not found")
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrServiceNotFound       = errors.New("one or more services not found")
	ErrSlotTaken             = errors.New("time slot already taken")
	ErrInvalidDate           = errors.New("appointment date is in the past")
	ErrInvalidTimeSlot       = errors.New("time slot is not aligned to the booking grid")
	ErrNoServices            = errors.New("at least one service is required")
	ErrInternal              = errors.New("internal error")
)
