package cancel_subscription

import (
	"context"

	"github.com/barberhub/scheduling-service/internal/service/subscriptions/models"
)

type SubscriptionService interface {
	Cancel(ctx context.Context, establishmentID int64, actor models.Actor) (*models.SubscriptionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
