package end_promotion

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barberhub/scheduling-service/internal/api/handlers"
	"github.com/barberhub/scheduling-service/internal/api/middleware"
	"github.com/barberhub/scheduling-service/internal/service/catalog"
	"github.com/barberhub/scheduling-service/internal/service/catalog/models"
)

const (
	msgInvalidServiceID      = "invalid service ID"
	msgMissingIdentity       = "missing identity"
	msgForbidden             = "access denied"
	msgServiceNotFound       = "service not found"
	msgEstablishmentInactive = "establishment is not active"
	msgNoPromotion           = "service has no active promotion"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/services/{serviceId}/promotion
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /services/{id}/promotion - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("DELETE /services/{id}/promotion - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	actor := models.Actor{
		UserID:          identity.UserID,
		Role:            identity.Role,
		EstablishmentID: identity.EstablishmentID,
	}

	result, err := h.service.EndPromotion(r.Context(), serviceID, actor)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("DELETE /services/{id}/promotion - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("DELETE /services/{id}/promotion - Access denied: service_id=%d, user_id=%d",
				serviceID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrEstablishmentInactive):
			h.logger.Warn("DELETE /services/{id}/promotion - Establishment inactive: service_id=%d", serviceID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgEstablishmentInactive)

		case errors.Is(err, catalog.ErrNoPromotion):
			h.logger.Warn("DELETE /services/{id}/promotion - No promotion: service_id=%d", serviceID)
			handlers.RespondError(w, http.StatusConflict, msgNoPromotion)

		default:
			h.logger.Error("DELETE /services/{id}/promotion - Failed to end: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /services/{id}/promotion - Ended: service_id=%d", serviceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
