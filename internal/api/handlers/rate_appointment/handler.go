package rate_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barberhub/scheduling-service/internal/api/handlers"
	"github.com/barberhub/scheduling-service/internal/api/middleware"
	"github.com/barberhub/scheduling-service/internal/service/appointments"
	"github.com/barberhub/scheduling-service/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "invalid appointment ID"
	msgInvalidRequestBody   = "invalid request body"
	msgMissingIdentity      = "missing identity"
	msgNotFound             = "appointment not found"
	msgForbidden            = "access denied"
	msgNotCompleted         = "appointment is not completed"
	msgAlreadyRated         = "appointment already rated"
	msgInvalidScore         = "rating score must be between 1 and 5"
)

// RateRequest HTTP request model
type RateRequest struct {
	Score   int    `json:"score"`
	Comment string `json:"comment,omitempty"`
}

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/rating
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/rating - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/rating - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req RateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/rating - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := models.Actor{
		UserID:          identity.UserID,
		Role:            identity.Role,
		EstablishmentID: identity.EstablishmentID,
	}

	result, err := h.service.Rate(r.Context(), &models.RateRequest{
		AppointmentID: appointmentID,
		Score:         req.Score,
		Comment:       req.Comment,
	}, actor)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/rating - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("POST /appointments/{id}/rating - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrNotCompleted):
			h.logger.Warn("POST /appointments/{id}/rating - Not completed: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNotCompleted)

		case errors.Is(err, appointments.ErrAlreadyRated):
			h.logger.Warn("POST /appointments/{id}/rating - Already rated: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyRated)

		case errors.Is(err, appointments.ErrInvalidRating):
			h.logger.Warn("POST /appointments/{id}/rating - Invalid score: appointment_id=%d, score=%d",
				appointmentID, req.Score)
			handlers.RespondBadRequest(w, msgInvalidScore)

		default:
			h.logger.Error("POST /appointments/{id}/rating - Failed to rate: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/rating - Rated: appointment_id=%d, score=%d, user_id=%d",
		appointmentID, req.Score, identity.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
