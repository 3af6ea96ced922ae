package end_promotion

import (
	"context"

	"github.com/barberhub/scheduling-service/internal/service/catalog/models"
)

type CatalogService interface {
	EndPromotion(ctx context.Context, serviceID int64, actor models.Actor) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
