package add_professional

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
	msgInvalidRequestBody     = "invalid request body"
	msgMissingIdentity        = "missing identity"
	msgForbidden              = "access denied"
	msgEstablishmentNotFound  = "establishment not found"
	msgEstablishmentInactive  = "establishment is not active"
	msgQuotaExceeded          = "professional quota for the current plan is exhausted"
	msgEmailTaken             = "email already registered"
	msgInvalidInput           = "invalid professional data"
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

// Handle POST /api/v1/establishments/{establishmentId}/professionals
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	establishmentID, err := strconv.ParseInt(vars["establishmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /establishments/{id}/professionals - Invalid establishment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstablishmentID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /establishments/{id}/professionals - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req AddProfessionalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /establishments/{id}/professionals - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := models.Actor{
		UserID:          identity.UserID,
		Role:            identity.Role,
		EstablishmentID: identity.EstablishmentID,
	}

	created, err := h.service.AddProfessional(r.Context(), req.ToServiceRequest(establishmentID), actor)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrAccessDenied):
			h.logger.Warn("POST /establishments/{id}/professionals - Access denied: establishment_id=%d, user_id=%d",
				establishmentID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, staff.ErrEstablishmentNotFound):
			h.logger.Warn("POST /establishments/{id}/professionals - Establishment not found: establishment_id=%d",
				establishmentID)
			handlers.RespondNotFound(w, msgEstablishmentNotFound)

		case errors.Is(err, staff.ErrEstablishmentInactive):
			h.logger.Warn("POST /establishments/{id}/professionals - Establishment inactive: establishment_id=%d",
				establishmentID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgEstablishmentInactive)

		case errors.Is(err, staff.ErrQuotaExceeded):
			h.logger.Warn("POST /establishments/{id}/professionals - Quota exceeded: establishment_id=%d",
				establishmentID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgQuotaExceeded)

		case errors.Is(err, staff.ErrEmailTaken):
			h.logger.Warn("POST /establishments/{id}/professionals - Email taken: email=%s", req.Email)
			handlers.RespondError(w, http.StatusConflict, msgEmailTaken)

		case errors.Is(err, staff.ErrInvalidInput):
			h.logger.Warn("POST /establishments/{id}/professionals - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /establishments/{id}/professionals - Failed to add: establishment_id=%d, error=%v",
				establishmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /establishments/{id}/professionals - Added: professional_id=%d, establishment_id=%d",
		created.ID, establishmentID)
	handlers.RespondJSON(w, http.StatusCreated, created)
}
