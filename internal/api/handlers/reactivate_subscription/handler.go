package reactivate_subscription

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barberhub/scheduling-service/internal/api/handlers"
	"github.com/barberhub/scheduling-service/internal/api/middleware"
	"github.com/barberhub/scheduling-service/internal/service/subscriptions"
	"github.com/barberhub/scheduling-service/internal/service/subscriptions/models"
)

const (
	msgInvalidEstablishmentID = "invalid establishment ID"
	msgMissingIdentity        = "missing identity"
	msgForbidden              = "access denied"
	msgNotFound               = "establishment not found"
	msgNotInactive            = "subscription is not inactive"
	msgNoPaymentMethod        = "no payment method on file"
)

type Handler struct {
	service SubscriptionService
	logger  Logger
}

func NewHandler(service SubscriptionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/establishments/{establishmentId}/subscription/reactivate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	establishmentID, err := strconv.ParseInt(vars["establishmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /establishments/{id}/subscription/reactivate - Invalid establishment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstablishmentID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /establishments/{id}/subscription/reactivate - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	actor := models.Actor{
		UserID:          identity.UserID,
		Role:            identity.Role,
		EstablishmentID: identity.EstablishmentID,
	}

	sub, err := h.service.Reactivate(r.Context(), establishmentID, actor)
	if err != nil {
		switch {
		case errors.Is(err, subscriptions.ErrAccessDenied):
			h.logger.Warn("POST /establishments/{id}/subscription/reactivate - Access denied: establishment_id=%d, user_id=%d",
				establishmentID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, subscriptions.ErrEstablishmentNotFound):
			h.logger.Warn("POST /establishments/{id}/subscription/reactivate - Not found: establishment_id=%d",
				establishmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, subscriptions.ErrNotInactive):
			h.logger.Warn("POST /establishments/{id}/subscription/reactivate - Not inactive: establishment_id=%d",
				establishmentID)
			handlers.RespondError(w, http.StatusConflict, msgNotInactive)

		case errors.Is(err, subscriptions.ErrNoPaymentMethod):
			h.logger.Warn("POST /establishments/{id}/subscription/reactivate - No payment method: establishment_id=%d",
				establishmentID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNoPaymentMethod)

		default:
			h.logger.Error("POST /establishments/{id}/subscription/reactivate - Failed to reactivate: establishment_id=%d, error=%v",
				establishmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /establishments/{id}/subscription/reactivate - Reactivated: establishment_id=%d", establishmentID)
	handlers.RespondJSON(w, http.StatusOK, sub)
}
