package list_professionals

import (
	"context"

	"github.com/barberhub/scheduling-service/internal/service/staff/models"
)

type StaffService interface {
	ListProfessionals(ctx context.Context, establishmentID int64, onlyActive bool) (*models.ProfessionalListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
