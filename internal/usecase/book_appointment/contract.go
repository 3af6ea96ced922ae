package book_appointment

import (
	"context"
	"time"

	"github.com/barberhub/scheduling-service/internal/domain"
)

// AppointmentRepository is the slice of appointment storage used for booking.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	ListActiveByProfessionalAndDate(ctx context.Context, professionalID int64, date time.Time, forUpdate bool) ([]domain.Appointment, error)
}

// EstablishmentRepository reads and expires tenants.
type EstablishmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Establishment, error)
	UpdateSubscriptionStatus(ctx context.Context, id int64, status domain.SubscriptionStatus) error
}

// ProfessionalRepository reads staff members.
type ProfessionalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Professional, error)
}

// CustomerRepository reads customers and grows their appointment log.
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	AppendAppointment(ctx context.Context, customerID, appointmentID int64) error
}

// CatalogRepository resolves the booked services.
type CatalogRepository interface {
	GetActiveByIDs(ctx context.Context, establishmentID int64, ids []int64) ([]domain.Service, error)
}

// TransactionManager runs the slot check and insert atomically.
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
