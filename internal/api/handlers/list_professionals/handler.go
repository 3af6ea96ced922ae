package list_professionals

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barberhub/scheduling-service/internal/api/handlers"
)

const (
	msgInvalidEstablishmentID = "invalid establishment ID"
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

// Handle GET /api/v1/establishments/{establishmentId}/professionals
// Query params: onlyActive (optional, "true"/"false", defaults to true)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	establishmentID, err := strconv.ParseInt(vars["establishmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /establishments/{id}/professionals - Invalid establishment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstablishmentID)
		return
	}

	onlyActive := r.URL.Query().Get("onlyActive") != "false"

	result, err := h.service.ListProfessionals(r.Context(), establishmentID, onlyActive)
	if err != nil {
		h.logger.Error("GET /establishments/{id}/professionals - Failed to list: establishment_id=%d, error=%v",
			establishmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /establishments/{id}/professionals - Retrieved %d professionals: establishment_id=%d",
		result.Total, establishmentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
