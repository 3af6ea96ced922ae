package list_appointments

import (
	"context"

	"github.com/barberhub/scheduling-service/internal/service/appointments/models"
)

type AppointmentService interface {
	List(ctx context.Context, req *models.ListRequest, actor models.Actor) (*models.AppointmentListResponse, error)
	ListForCustomer(ctx context.Context, establishmentID int64, actor models.Actor) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
