package get_establishment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barberhub/scheduling-service/internal/api/handlers"
	"github.com/barberhub/scheduling-service/internal/service/establishments"
)

const (
	msgInvalidEstablishmentID = "invalid establishment ID"
	msgMissingSlug            = "slug query parameter is required"
	msgNotFound               = "establishment not found"
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

// HandleByID GET /api/v1/establishments/{establishmentId}
func (h *Handler) HandleByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	establishmentID, err := strconv.ParseInt(vars["establishmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /establishments/{id} - Invalid establishment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstablishmentID)
		return
	}

	view, err := h.service.GetByID(r.Context(), establishmentID)
	if err != nil {
		h.respondError(w, err, establishmentID)
		return
	}

	h.logger.Info("GET /establishments/{id} - Retrieved: establishment_id=%d", establishmentID)
	handlers.RespondJSON(w, http.StatusOK, view)
}

// HandleBySlug GET /api/v1/establishments?slug=corner-cuts
func (h *Handler) HandleBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		h.logger.Warn("GET /establishments - Missing slug")
		handlers.RespondBadRequest(w, msgMissingSlug)
		return
	}

	view, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, establishments.ErrEstablishmentNotFound):
			h.logger.Warn("GET /establishments - Not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("GET /establishments - Failed to get establishment: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /establishments - Retrieved: slug=%s", slug)
	handlers.RespondJSON(w, http.StatusOK, view)
}

func (h *Handler) respondError(w http.ResponseWriter, err error, establishmentID int64) {
	switch {
	case errors.Is(err, establishments.ErrEstablishmentNotFound):
		h.logger.Warn("GET /establishments/{id} - Not found: establishment_id=%d", establishmentID)
		handlers.RespondNotFound(w, msgNotFound)
	default:
		h.logger.Error("GET /establishments/{id} - Failed to get establishment: establishment_id=%d, error=%v", establishmentID, err)
		handlers.RespondInternalError(w)
	}
}
