package create_establishment

import (
	"context"

	"github.com/barberhub/scheduling-service/internal/service/establishments/models"
)

type EstablishmentService interface {
	Create(ctx context.Context, req *models.CreateEstablishmentRequest, actor models.Actor) (*models.EstablishmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
