package establishments

import (
	"context"
	"time"

	"github.com/barberhub/scheduling-service/internal/domain"
)

// EstablishmentRepository is the tenant storage surface.
type EstablishmentRepository interface {
	Create(ctx context.Context, est *domain.Establishment) (*domain.Establishment, error)
	GetByID(ctx context.Context, id int64) (*domain.Establishment, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Establishment, error)
}

// ServiceRepository reads the public catalog.
type ServiceRepository interface {
	ListByEstablishment(ctx context.Context, establishmentID int64, onlyActive bool) ([]domain.Service, error)
}

// ProfessionalRepository reads the public staff listing.
type ProfessionalRepository interface {
	ListByEstablishment(ctx context.Context, establishmentID int64, onlyActive bool) ([]domain.Professional, error)
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
