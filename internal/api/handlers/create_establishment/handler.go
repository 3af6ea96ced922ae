package create_establishment

import (
	"errors"
	"net/http"

	"github.com/barberhub/scheduling-service/internal/api/handlers"
	"github.com/barberhub/scheduling-service/internal/api/middleware"
	"github.com/barberhub/scheduling-service/internal/service/establishments"
	"github.com/barberhub/scheduling-service/internal/service/establishments/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingIdentity    = "missing identity"
	msgForbidden          = "access denied"
	msgSlugTaken          = "slug already taken"
	msgInvalidInput       = "invalid establishment data"
)

type Handler struct {
	service EstablishmentService
	logger  Logger
}

func NewHandler(service EstablishmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/establishments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /establishments - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req CreateEstablishmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /establishments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := models.Actor{
		UserID:          identity.UserID,
		Role:            identity.Role,
		EstablishmentID: identity.EstablishmentID,
	}

	created, err := h.service.Create(r.Context(), req.ToServiceRequest(), actor)
	if err != nil {
		switch {
		case errors.Is(err, establishments.ErrAccessDenied):
			h.logger.Warn("POST /establishments - Access denied: user_id=%d", identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, establishments.ErrSlugTaken):
			h.logger.Warn("POST /establishments - Slug taken: slug=%s", req.Slug)
			handlers.RespondError(w, http.StatusConflict, msgSlugTaken)

		case errors.Is(err, establishments.ErrInvalidInput):
			h.logger.Warn("POST /establishments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /establishments - Failed to create: user_id=%d, error=%v", identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /establishments - Created: establishment_id=%d, slug=%s, user_id=%d",
		created.ID, created.Slug, identity.UserID)
	handlers.RespondJSON(w, http.StatusCreated, created)
}
