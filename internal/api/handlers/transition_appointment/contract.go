package transition_appointment

import (
	"context"

	"github.com/barberhub/scheduling-service/internal/service/appointments/models"
)

type AppointmentService interface {
	Transition(ctx context.Context, req *models.TransitionRequest, actor models.Actor) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
