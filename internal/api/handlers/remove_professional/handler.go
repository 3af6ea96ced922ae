package remove_professional

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barberhub/scheduling-service/internal/api/handlers"
	"github.com/barberhub/scheduling-service/internal/api/middleware"
	"github.com/barberhub/scheduling-service/internal/service/staff"
	"github.com/barberhub/scheduling-service/internal/service/staff/models"
)

const (
	msgInvalidEstablishmentID = "invalid establishment ID"
	msgInvalidProfessionalID  = "invalid professional ID"
	msgMissingIdentity        = "missing identity"
	msgForbidden              = "access denied"
	msgEstablishmentNotFound  = "establishment not found"
	msgEstablishmentInactive  = "establishment is not active"
	msgProfessionalNotFound   = "professional not found"
	msgAlreadyInactive        = "professional is already deactivated"
	msgHasFutureAppointments  = "professional has future appointments"
)

type Handler struct {
	service StaffService
	logger  Logger
}

func NewHandler(service StaffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/establishments/{establishmentId}/professionals/{professionalId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	establishmentID, err := strconv.ParseInt(vars["establishmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /establishments/{id}/professionals/{id} - Invalid establishment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstablishmentID)
		return
	}
	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /establishments/{id}/professionals/{id} - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("DELETE /establishments/{id}/professionals/{id} - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	actor := models.Actor{
		UserID:          identity.UserID,
		Role:            identity.Role,
		EstablishmentID: identity.EstablishmentID,
	}

	if err := h.service.RemoveProfessional(r.Context(), establishmentID, professionalID, actor); err != nil {
		switch {
		case errors.Is(err, staff.ErrAccessDenied):
			h.logger.Warn("DELETE /establishments/{id}/professionals/{id} - Access denied: user_id=%d", identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, staff.ErrEstablishmentNotFound):
			h.logger.Warn("DELETE /establishments/{id}/professionals/{id} - Establishment not found: establishment_id=%d",
				establishmentID)
			handlers.RespondNotFound(w, msgEstablishmentNotFound)

		case errors.Is(err, staff.ErrEstablishmentInactive):
			h.logger.Warn("DELETE /establishments/{id}/professionals/{id} - Establishment inactive: establishment_id=%d",
				establishmentID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgEstablishmentInactive)

		case errors.Is(err, staff.ErrProfessionalNotFound):
			h.logger.Warn("DELETE /establishments/{id}/professionals/{id} - Professional not found: professional_id=%d",
				professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, staff.ErrAlreadyInactive):
			h.logger.Warn("DELETE /establishments/{id}/professionals/{id} - Already inactive: professional_id=%d",
				professionalID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyInactive)

		case errors.Is(err, staff.ErrHasFutureAppointments):
			h.logger.Warn("DELETE /establishments/{id}/professionals/{id} - Future appointments exist: professional_id=%d",
				professionalID)
			handlers.RespondError(w, http.StatusConflict, msgHasFutureAppointments)

		default:
			h.logger.Error("DELETE /establishments/{id}/professionals/{id} - Failed to remove: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /establishments/{id}/professionals/{id} - Deactivated: professional_id=%d, establishment_id=%d",
		professionalID, establishmentID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
