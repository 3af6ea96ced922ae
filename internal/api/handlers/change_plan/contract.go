package change_plan

import (
	"context"

	"github.com/barberhub/scheduling-service/internal/service/subscriptions/models"
)

type SubscriptionService interface {
	ChangePlan(ctx context.Context, req *models.ChangePlanRequest, actor models.Actor) (*models.SubscriptionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
