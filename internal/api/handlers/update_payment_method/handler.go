package update_payment_method

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
	msgInvalidRequestBody     = "invalid request body"
	msgMissingIdentity        = "missing identity"
	msgForbidden              = "access denied"
	msgNotFound               = "establishment not found"
	msgInvalidInput           = "payment method type and last digits are required"
)

// UpdatePaymentMethodRequest HTTP request model
type UpdatePaymentMethodRequest struct {
	Type       string `json:"type"`       // "card"
	LastDigits string `json:"lastDigits"` // "4242"
}

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

// Handle PUT /api/v1/establishments/{establishmentId}/subscription/payment-method
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	establishmentID, err := strconv.ParseInt(vars["establishmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /establishments/{id}/subscription/payment-method - Invalid establishment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstablishmentID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("PUT /establishments/{id}/subscription/payment-method - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req UpdatePaymentMethodRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /establishments/{id}/subscription/payment-method - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := models.Actor{
		UserID:          identity.UserID,
		Role:            identity.Role,
		EstablishmentID: identity.EstablishmentID,
	}

	sub, err := h.service.UpdatePaymentMethod(r.Context(), &models.UpdatePaymentMethodRequest{
		EstablishmentID: establishmentID,
		Type:            req.Type,
		LastDigits:      req.LastDigits,
	}, actor)
	if err != nil {
		switch {
		case errors.Is(err, subscriptions.ErrAccessDenied):
			h.logger.Warn("PUT /establishments/{id}/subscription/payment-method - Access denied: establishment_id=%d, user_id=%d",
				establishmentID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, subscriptions.ErrEstablishmentNotFound):
			h.logger.Warn("PUT /establishments/{id}/subscription/payment-method - Not found: establishment_id=%d",
				establishmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, subscriptions.ErrInvalidInput):
			h.logger.Warn("PUT /establishments/{id}/subscription/payment-method - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /establishments/{id}/subscription/payment-method - Failed to update: establishment_id=%d, error=%v",
				establishmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /establishments/{id}/subscription/payment-method - Updated: establishment_id=%d", establishmentID)
	handlers.RespondJSON(w, http.StatusOK, sub)
}
