package get_available_slots

import (
	"github.com/barberhub/scheduling-service/internal/domain"
	getAvailableSlots "github.com/barberhub/scheduling-service/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	EstablishmentID int64    `json:"establishmentId"`
	ProfessionalID  int64    `json:"professionalId"`
	Date            string   `json:"date"`
	Slots           []string `json:"slots"`
}

// FromUseCaseResponse converts the use case response into the HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, slot.String())
	}
	return &AvailableSlotsResponse{
		EstablishmentID: resp.EstablishmentID,
		ProfessionalID:  resp.ProfessionalID,
		Date:            resp.Date.Format(domain.DateFormat),
		Slots:           slots,
	}
}
