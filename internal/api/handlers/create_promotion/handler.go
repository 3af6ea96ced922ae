package create_promotion

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/barberhub/scheduling-service/internal/api/handlers"
	"github.com/barberhub/scheduling-service/internal/api/middleware"
	"github.com/barberhub/scheduling-service/internal/domain"
	"github.com/barberhub/scheduling-service/internal/service/catalog"
	"github.com/barberhub/scheduling-service/internal/service/catalog/models"
)

const (
	msgInvalidServiceID      = "invalid service ID"
	msgInvalidRequestBody    = "invalid request body"
	msgInvalidDates          = "invalid date format, expected YYYY-MM-DD"
	msgMissingIdentity       = "missing identity"
	msgForbidden             = "access denied"
	msgServiceNotFound       = "service not found"
	msgEstablishmentInactive = "establishment is not active"
	msgInvalidPrice          = "discounted price must be positive and below the base price"
	msgInvalidWindow         = "promotion end date must be after the start date"
)

// CreatePromotionRequest HTTP request model
type CreatePromotionRequest struct {
	DiscountedPrice float64 `json:"discountedPrice"`
	StartDate       string  `json:"startDate"` // "2026-03-01"
	EndDate         string  `json:"endDate"`   // "2026-03-31"
	Description     string  `json:"description,omitempty"`
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

// Handle POST /api/v1/services/{serviceId}/promotion
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /services/{id}/promotion - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /services/{id}/promotion - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req CreatePromotionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services/{id}/promotion - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, req.StartDate)
	if err != nil {
		h.logger.Warn("POST /services/{id}/promotion - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}
	endDate, err := time.Parse(domain.DateFormat, req.EndDate)
	if err != nil {
		h.logger.Warn("POST /services/{id}/promotion - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	actor := models.Actor{
		UserID:          identity.UserID,
		Role:            identity.Role,
		EstablishmentID: identity.EstablishmentID,
	}

	result, err := h.service.CreatePromotion(r.Context(), &models.CreatePromotionRequest{
		ServiceID:       serviceID,
		DiscountedPrice: req.DiscountedPrice,
		StartDate:       startDate,
		EndDate:         endDate,
		Description:     req.Description,
	}, actor)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("POST /services/{id}/promotion - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /services/{id}/promotion - Access denied: service_id=%d, user_id=%d",
				serviceID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrEstablishmentInactive):
			h.logger.Warn("POST /services/{id}/promotion - Establishment inactive: service_id=%d", serviceID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgEstablishmentInactive)

		case errors.Is(err, catalog.ErrInvalidPromotionPrice):
			h.logger.Warn("POST /services/{id}/promotion - Invalid price: service_id=%d, price=%.2f",
				serviceID, req.DiscountedPrice)
			handlers.RespondBadRequest(w, msgInvalidPrice)

		case errors.Is(err, catalog.ErrInvalidPromotionWindow):
			h.logger.Warn("POST /services/{id}/promotion - Invalid window: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("POST /services/{id}/promotion - Failed to create: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services/{id}/promotion - Created: service_id=%d, discounted_price=%.2f",
		serviceID, req.DiscountedPrice)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
