package domain

import (
	"time"

	"github.com/barberhub/scheduling-service/pkg/types"
)

// WorkingHours is a professional's weekly working template: one daily
// [Start, End) window applied to every available weekday.
type WorkingHours struct {
	Start             types.TimeString
	End               types.TimeString
	AvailableWeekdays []int // 0 (Sunday) - 6 (Saturday)
}

// Validate checks the window and weekday set.
func (w WorkingHours) Validate() error {
	if err := w.Start.Validate(); err != nil {
		return err
	}
	if err := w.End.Validate(); err != nil {
		return err
	}
	if !w.Start.IsBefore(w.End) {
		return ErrInvalidWorkingHours
	}
	if len(w.AvailableWeekdays) == 0 {
		return ErrInvalidWorkingHours
	}
	for _, d := range w.AvailableWeekdays {
		if d < 0 || d > 6 {
			return ErrInvalidWorkingHours
		}
	}
	return nil
}

// WorksOn reports whether the weekday belongs to the template.
func (w WorkingHours) WorksOn(weekday time.Weekday) bool {
	for _, d := range w.AvailableWeekdays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// Professional is a tenant-scoped staff member performing services.
// Removal is always logical: Active flips to false, the row stays.
type Professional struct {
	ID              int64
	EstablishmentID int64
	Name            string
	Email           string
	Specialties     []string
	WorkingHours    WorkingHours
	Active          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
