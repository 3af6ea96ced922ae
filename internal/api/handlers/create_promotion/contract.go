package create_promotion

import (
	"context"

	"github.com/barberhub/scheduling-service/internal/service/catalog/models"
)

type CatalogService interface {
	CreatePromotion(ctx context.Context, req *models.CreatePromotionRequest, actor models.Actor) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
