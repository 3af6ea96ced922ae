package create_service

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
	msgInvalidEstablishmentID = "invalid establishment ID"
	msgInvalidRequestBody     = "invalid request body"
	msgMissingIdentity        = "missing identity"
	msgForbidden              = "access denied"
	msgEstablishmentNotFound  = "establishment not found"
	msgEstablishmentInactive  = "establishment is not active"
	msgInvalidInput           = "invalid service data"
)

// CreateServiceRequest HTTP request model
type CreateServiceRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	Category        string  `json:"category,omitempty"`
}

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

// Handle POST /api/v1/establishments/{establishmentId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	establishmentID, err := strconv.ParseInt(vars["establishmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /establishments/{id}/services - Invalid establishment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstablishmentID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /establishments/{id}/services - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /establishments/{id}/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := models.Actor{
		UserID:          identity.UserID,
		Role:            identity.Role,
		EstablishmentID: identity.EstablishmentID,
	}

	created, err := h.service.CreateService(r.Context(), &models.CreateServiceRequest{
		EstablishmentID: establishmentID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Category:        req.Category,
	}, actor)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /establishments/{id}/services - Access denied: establishment_id=%d, user_id=%d",
				establishmentID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrEstablishmentNotFound):
			h.logger.Warn("POST /establishments/{id}/services - Establishment not found: establishment_id=%d",
				establishmentID)
			handlers.RespondNotFound(w, msgEstablishmentNotFound)

		case errors.Is(err, catalog.ErrEstablishmentInactive):
			h.logger.Warn("POST /establishments/{id}/services - Establishment inactive: establishment_id=%d",
				establishmentID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgEstablishmentInactive)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /establishments/{id}/services - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /establishments/{id}/services - Failed to create: establishment_id=%d, error=%v",
				establishmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /establishments/{id}/services - Created: service_id=%d, establishment_id=%d",
		created.ID, establishmentID)
	handlers.RespondJSON(w, http.StatusCreated, created)
}
