package change_plan

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
	msgInvalidPlan            = "unknown subscription plan"
	msgSamePlan               = "subscription already on this plan"
	msgTooManyProfessionals   = "active professionals exceed the target plan limit"
)

// ChangePlanRequest HTTP request model
type ChangePlanRequest struct {
	Plan string `json:"plan"`
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

// Handle PUT /api/v1/establishments/{establishmentId}/subscription/plan
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	establishmentID, err := strconv.ParseInt(vars["establishmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /establishments/{id}/subscription/plan - Invalid establishment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstablishmentID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("PUT /establishments/{id}/subscription/plan - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req ChangePlanRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /establishments/{id}/subscription/plan - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := models.Actor{
		UserID:          identity.UserID,
		Role:            identity.Role,
		EstablishmentID: identity.EstablishmentID,
	}

	sub, err := h.service.ChangePlan(r.Context(), &models.ChangePlanRequest{
		EstablishmentID: establishmentID,
		Plan:            req.Plan,
	}, actor)
	if err != nil {
		switch {
		case errors.Is(err, subscriptions.ErrAccessDenied):
			h.logger.Warn("PUT /establishments/{id}/subscription/plan - Access denied: establishment_id=%d, user_id=%d",
				establishmentID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, subscriptions.ErrEstablishmentNotFound):
			h.logger.Warn("PUT /establishments/{id}/subscription/plan - Not found: establishment_id=%d", establishmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, subscriptions.ErrInvalidPlan):
			h.logger.Warn("PUT /establishments/{id}/subscription/plan - Invalid plan: plan=%s", req.Plan)
			handlers.RespondBadRequest(w, msgInvalidPlan)

		case errors.Is(err, subscriptions.ErrSamePlan):
			h.logger.Warn("PUT /establishments/{id}/subscription/plan - Same plan: establishment_id=%d, plan=%s",
				establishmentID, req.Plan)
			handlers.RespondError(w, http.StatusConflict, msgSamePlan)

		case errors.Is(err, subscriptions.ErrTooManyProfessionals):
			h.logger.Warn("PUT /establishments/{id}/subscription/plan - Too many professionals: establishment_id=%d, plan=%s",
				establishmentID, req.Plan)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgTooManyProfessionals)

		default:
			h.logger.Error("PUT /establishments/{id}/subscription/plan - Failed to change plan: establishment_id=%d, error=%v",
				establishmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /establishments/{id}/subscription/plan - Changed: establishment_id=%d, plan=%s",
		establishmentID, req.Plan)
	handlers.RespondJSON(w, http.StatusOK, sub)
}
