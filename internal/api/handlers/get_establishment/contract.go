package get_establishment

import (
	"context"

	"github.com/barberhub/scheduling-service/internal/service/establishments/models"
)

type EstablishmentService interface {
	GetByID(ctx context.Context, id int64) (*models.EstablishmentResponse, error)
	GetBySlug(ctx context.Context, slug string) (*models.EstablishmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
