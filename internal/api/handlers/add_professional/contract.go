package add_professional

import (
	"context"

	"github.com/barberhub/scheduling-service/internal/service/staff/models"
)

type StaffService interface {
	AddProfessional(ctx context.Context, req *models.AddProfessionalRequest, actor models.Actor) (*models.ProfessionalResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
