package book_appointment

import (
	"time"

	"github.com/barberhub/scheduling-service/internal/domain"
)

// validateRequest performs the stateless checks before anything is fetched.
func validateRequest(req *Request) error {
	if len(req.ServiceIDs) == 0 {
		return ErrNoServices
	}
	if err := req.TimeSlot.Validate(); err != nil {
		return ErrInvalidTimeSlot
	}
	if req.TimeSlot.Minutes()%domain.SlotIntervalMinutes != 0 {
		return ErrInvalidTimeSlot
	}
	return nil
}

// validateDate rejects dates strictly before today. Same-day bookings are
// allowed even when the slot itself already passed.
func validateDate(date, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return ErrInvalidDate
	}
	return nil
}
