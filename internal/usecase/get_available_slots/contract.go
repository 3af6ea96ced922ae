package get_available_slots

import (
	"context"
	"time"

	"github.com/barberhub/scheduling-service/internal/domain"
)

// AppointmentRepository reads the occupied slots.
type AppointmentRepository interface {
	ListActiveByProfessionalAndDate(ctx context.Context, professionalID int64, date time.Time, forUpdate bool) ([]domain.Appointment, error)
}

// EstablishmentRepository reads tenants.
type EstablishmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Establishment, error)
}

// ProfessionalRepository reads staff members.
type ProfessionalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Professional, error)
}

// TimeProvider supplies the current time (swappable in tests).
type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time source.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
