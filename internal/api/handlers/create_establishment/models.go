package create_establishment

import (
	"github.com/barberhub/scheduling-service/internal/service/establishments/models"
)

// CreateEstablishmentRequest HTTP request model
type CreateEstablishmentRequest struct {
	Name                    string `json:"name"`
	Slug                    string `json:"slug,omitempty"`
	CancellationNoticeHours int    `json:"cancellationNoticeHours,omitempty"`
	Plan                    string `json:"plan,omitempty"`
}

// ToServiceRequest converts the HTTP request into the service model
func (r *CreateEstablishmentRequest) ToServiceRequest() *models.CreateEstablishmentRequest {
	return &models.CreateEstablishmentRequest{
		Name:                    r.Name,
		Slug:                    r.Slug,
		CancellationNoticeHours: r.CancellationNoticeHours,
		Plan:                    r.Plan,
	}
}
