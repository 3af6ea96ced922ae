package book_appointment

import (
	"time"

	"github.com/barberhub/scheduling-service/internal/domain"
	"github.com/barberhub/scheduling-service/pkg/types"
)

// Request carries the booking intent.
type Request struct {
	EstablishmentID int64
	CustomerID      int64
	ProfessionalID  int64
	ServiceIDs      []int64
	Date            time.Time
	TimeSlot        types.TimeString
}

// Response is the created appointment with its captured price and duration.
type Response struct {
	ID              int64
	EstablishmentID int64
	CustomerID      int64
	ProfessionalID  int64
	ServiceIDs      []int64
	Date            time.Time
	TimeSlot        types.TimeString
	TotalDuration   int
	TotalPrice      float64
	Status          domain.AppointmentStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
