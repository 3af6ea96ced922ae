package remove_professional

import (
	"context"

	"github.com/barberhub/scheduling-service/internal/service/staff/models"
)

type StaffService interface {
	RemoveProfessional(ctx context.Context, establishmentID, professionalID int64, actor models.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
