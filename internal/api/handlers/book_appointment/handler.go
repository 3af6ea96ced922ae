package book_appointment

import (
	"errors"
	"net/http"

	"github.com/barberhub/scheduling-service/internal/api/handlers"
	"github.com/barberhub/scheduling-service/internal/api/middleware"
	bookAppointment "github.com/barberhub/scheduling-service/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody    = "invalid request body"
	msgMissingIdentity       = "missing identity"
	msgInvalidDateOrTime     = "invalid date or time format, expected YYYY-MM-DD and HH:MM"
	msgSlotTaken             = "time slot is not available"
	msgEstablishmentNotFound = "establishment not found"
	msgEstablishmentInactive = "establishment is not accepting appointments"
	msgProfessionalNotFound  = "professional not found"
	msgCustomerNotFound      = "customer not found"
	msgServiceNotFound       = "one or more services not found"
	msgPastDate              = "appointment date is in the past"
	msgInvalidTimeSlot       = "time slot is not aligned to the booking grid"
	msgNoServices            = "at least one service is required"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(identity.UserID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: customer_id=%d, professional_id=%d, slot=%s",
				identity.UserID, req.ProfessionalID, req.TimeSlot)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, bookAppointment.ErrEstablishmentNotFound):
			h.logger.Warn("POST /appointments - Establishment not found: establishment_id=%d", req.EstablishmentID)
			handlers.RespondNotFound(w, msgEstablishmentNotFound)

		case errors.Is(err, bookAppointment.ErrEstablishmentInactive):
			h.logger.Warn("POST /appointments - Establishment inactive: establishment_id=%d", req.EstablishmentID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgEstablishmentInactive)

		case errors.Is(err, bookAppointment.ErrProfessionalNotFound):
			h.logger.Warn("POST /appointments - Professional not found: professional_id=%d", req.ProfessionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, bookAppointment.ErrCustomerNotFound):
			h.logger.Warn("POST /appointments - Customer not found: customer_id=%d", identity.UserID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, bookAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: establishment_id=%d", req.EstablishmentID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, bookAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Past date: customer_id=%d, date=%s", identity.UserID, req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, bookAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Misaligned slot: customer_id=%d, slot=%s", identity.UserID, req.TimeSlot)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, bookAppointment.ErrNoServices):
			h.logger.Warn("POST /appointments - No services: customer_id=%d", identity.UserID)
			handlers.RespondBadRequest(w, msgNoServices)

		default:
			h.logger.Error("POST /appointments - Failed to book: customer_id=%d, establishment_id=%d, error=%v",
				identity.UserID, req.EstablishmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Booked: appointment_id=%d, customer_id=%d, professional_id=%d, slot=%s %s",
		result.ID, identity.UserID, req.ProfessionalID, req.Date, req.TimeSlot)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
