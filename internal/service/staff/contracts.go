package staff

import (
	"context"
	"time"

	"github.com/barberhub/scheduling-service/internal/domain"
)

// ProfessionalRepository is the staff storage surface.
type ProfessionalRepository interface {
	Create(ctx context.Context, prof *domain.Professional) (*domain.Professional, error)
	GetByID(ctx context.Context, id int64) (*domain.Professional, error)
	ListByEstablishment(ctx context.Context, establishmentID int64, onlyActive bool) ([]domain.Professional, error)
	CountActive(ctx context.Context, establishmentID int64) (int, error)
	Deactivate(ctx context.Context, id int64) error
}

// EstablishmentRepository reads the tenant's plan for the quota check and
// records a trial that expired while being touched.
type EstablishmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Establishment, error)
	UpdateSubscriptionStatus(ctx context.Context, establishmentID int64, status domain.SubscriptionStatus) error
}

// AppointmentRepository checks for future work before a removal.
type AppointmentRepository interface {
	ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]domain.Appointment, error)
}

// TransactionManager serializes the quota check against concurrent adds.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
