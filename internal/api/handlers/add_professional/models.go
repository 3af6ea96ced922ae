package add_professional

import (
	"github.com/barberhub/scheduling-service/internal/service/staff/models"
)

// AddProfessionalRequest HTTP request model
type AddProfessionalRequest struct {
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Specialties       []string `json:"specialties,omitempty"`
	WorkStart         string   `json:"workStart"` // "09:00"
	WorkEnd           string   `json:"workEnd"`   // "18:00"
	AvailableWeekdays []int    `json:"availableWeekdays"`
}

// ToServiceRequest converts the HTTP request into the service model
func (r *AddProfessionalRequest) ToServiceRequest(establishmentID int64) *models.AddProfessionalRequest {
	return &models.AddProfessionalRequest{
		EstablishmentID:   establishmentID,
		Name:              r.Name,
		Email:             r.Email,
		Specialties:       r.Specialties,
		WorkStart:         r.WorkStart,
		WorkEnd:           r.WorkEnd,
		AvailableWeekdays: r.AvailableWeekdays,
	}
}
