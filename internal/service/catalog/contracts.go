package catalog

import (
	"context"
	"time"

	"github.com/barberhub/scheduling-service/internal/domain"
)

// ServiceRepository is the catalog storage surface.
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	ListByEstablishment(ctx context.Context, establishmentID int64, onlyActive bool) ([]domain.Service, error)
	SetPromotion(ctx context.Context, serviceID int64, promo domain.Promotion) error
	ClearPromotion(ctx context.Context, serviceID int64) error
}

// EstablishmentRepository verifies the tenant exists and is active, and
// records a trial that expired while being touched.
type EstablishmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Establishment, error)
	UpdateSubscriptionStatus(ctx context.Context, establishmentID int64, status domain.SubscriptionStatus) error
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
