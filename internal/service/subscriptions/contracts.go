package subscriptions

import (
	"context"
	"time"

	"github.com/barberhub/scheduling-service/internal/domain"
)

// EstablishmentRepository is the tenant storage surface used for billing.
type EstablishmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Establishment, error)
	UpdateSubscriptionStatus(ctx context.Context, id int64, status domain.SubscriptionStatus) error
	RenewSubscription(ctx context.Context, id int64, plan domain.Plan, status domain.SubscriptionStatus, renewalDate time.Time, entry domain.BillingEntry) error
	SetPaymentMethod(ctx context.Context, id int64, pm domain.PaymentMethod) error
}

// ProfessionalRepository counts active staff for the downgrade guard.
type ProfessionalRepository interface {
	CountActive(ctx context.Context, establishmentID int64) (int, error)
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
