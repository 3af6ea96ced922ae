package rate_appointment

import (
	"context"

	"github.com/barberhub/scheduling-service/internal/service/appointments/models"
)

type AppointmentService interface {
	Rate(ctx context.Context, req *models.RateRequest, actor models.Actor) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
