package list_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/barberhub/scheduling-service/internal/api/handlers"
	"github.com/barberhub/scheduling-service/internal/api/middleware"
	"github.com/barberhub/scheduling-service/internal/domain"
	"github.com/barberhub/scheduling-service/internal/service/appointments"
	"github.com/barberhub/scheduling-service/internal/service/appointments/models"
)

const (
	msgInvalidEstablishmentID = "invalid establishment ID"
	msgInvalidProfessionalID  = "invalid professionalId filter"
	msgInvalidCustomerID      = "invalid customerId filter"
	msgInvalidDate            = "invalid date format, expected YYYY-MM-DD"
	msgInvalidStatus          = "invalid status filter"
	msgMissingIdentity        = "missing identity"
	msgForbidden              = "access denied"
)

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

// Handle GET /api/v1/establishments/{establishmentId}/appointments
// Query params: date, status, professionalId, customerId (all optional).
// Customers always get their own appointments regardless of filters.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	establishmentID, err := strconv.ParseInt(vars["establishmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /establishments/{id}/appointments - Invalid establishment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstablishmentID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("GET /establishments/{id}/appointments - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	actor := models.Actor{
		UserID:          identity.UserID,
		Role:            identity.Role,
		EstablishmentID: identity.EstablishmentID,
	}

	var result *models.AppointmentListResponse
	if identity.Role == domain.RoleCustomer {
		result, err = h.service.ListForCustomer(r.Context(), establishmentID, actor)
	} else {
		req := &models.ListRequest{EstablishmentID: establishmentID}
		query := r.URL.Query()

		if raw := query.Get("professionalId"); raw != "" {
			id, parseErr := strconv.ParseInt(raw, 10, 64)
			if parseErr != nil {
				h.logger.Warn("GET /establishments/{id}/appointments - Invalid professionalId: %v", parseErr)
				handlers.RespondBadRequest(w, msgInvalidProfessionalID)
				return
			}
			req.ProfessionalID = &id
		}
		if raw := query.Get("customerId"); raw != "" {
			id, parseErr := strconv.ParseInt(raw, 10, 64)
			if parseErr != nil {
				h.logger.Warn("GET /establishments/{id}/appointments - Invalid customerId: %v", parseErr)
				handlers.RespondBadRequest(w, msgInvalidCustomerID)
				return
			}
			req.CustomerID = &id
		}
		if raw := query.Get("date"); raw != "" {
			date, parseErr := time.Parse(domain.DateFormat, raw)
			if parseErr != nil {
				h.logger.Warn("GET /establishments/{id}/appointments - Invalid date: %v", parseErr)
				handlers.RespondBadRequest(w, msgInvalidDate)
				return
			}
			req.Date = &date
		}
		if raw := query.Get("status"); raw != "" {
			req.Status = &raw
		}

		result, err = h.service.List(r.Context(), req, actor)
	}
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /establishments/{id}/appointments - Access denied: establishment_id=%d, user_id=%d",
				establishmentID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /establishments/{id}/appointments - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /establishments/{id}/appointments - Failed to list: establishment_id=%d, error=%v",
				establishmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /establishments/{id}/appointments - Retrieved %d appointments: establishment_id=%d, user_id=%d",
		result.Total, establishmentID, identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
