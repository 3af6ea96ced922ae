package list_invoices

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

// Handle GET /api/v1/establishments/{establishmentId}/subscription/invoices
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	establishmentID, err := strconv.ParseInt(vars["establishmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /establishments/{id}/subscription/invoices - Invalid establishment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstablishmentID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("GET /establishments/{id}/subscription/invoices - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	actor := models.Actor{
		UserID:          identity.UserID,
		Role:            identity.Role,
		EstablishmentID: identity.EstablishmentID,
	}

	invoices, err := h.service.ListInvoices(r.Context(), establishmentID, actor)
	if err != nil {
		switch {
		case errors.Is(err, subscriptions.ErrAccessDenied):
			h.logger.Warn("GET /establishments/{id}/subscription/invoices - Access denied: establishment_id=%d, user_id=%d",
				establishmentID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, subscriptions.ErrEstablishmentNotFound):
			h.logger.Warn("GET /establishments/{id}/subscription/invoices - Not found: establishment_id=%d",
				establishmentID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /establishments/{id}/subscription/invoices - Failed to list: establishment_id=%d, error=%v",
				establishmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /establishments/{id}/subscription/invoices - Retrieved %d invoices: establishment_id=%d",
		invoices.Total, establishmentID)
	handlers.RespondJSON(w, http.StatusOK, invoices)
}
