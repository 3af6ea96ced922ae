package models

import (
	"time"

	"github.com/barberhub/scheduling-service/internal/domain"
)

// Actor is the verified caller on whose behalf the service acts.
type Actor struct {
	UserID          int64
	Role            domain.Role
	EstablishmentID *int64
}

// SameEstablishment reports whether the actor is bound to the tenant.
func (a Actor) SameEstablishment(establishmentID int64) bool {
	return a.EstablishmentID != nil && *a.EstablishmentID == establishmentID
}

// CreateServiceRequest adds an offering to the tenant's catalog.
type CreateServiceRequest struct {
	EstablishmentID int64
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
	Category        string
}

// ToDomain builds the domain service.
func (r *CreateServiceRequest) ToDomain() *domain.Service {
	return &domain.Service{
		EstablishmentID: r.EstablishmentID,
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		Category:        r.Category,
		Active:          true,
	}
}

// CreatePromotionRequest opens a discounted window on a service.
type CreatePromotionRequest struct {
	ServiceID       int64
	DiscountedPrice float64
	StartDate       time.Time
	EndDate         time.Time
	Description     string
}

// PromotionResponse mirrors a promotion for API consumption.
type PromotionResponse struct {
	Active          bool      `json:"active"`
	DiscountedPrice float64   `json:"discountedPrice"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	Description     string    `json:"description,omitempty"`
}

// ServiceResponse is the service-level catalog view.
type ServiceResponse struct {
	ID              int64              `json:"id"`
	EstablishmentID int64              `json:"establishmentId"`
	Name            string             `json:"name"`
	Description     string             `json:"description,omitempty"`
	Price           float64            `json:"price"`
	DurationMinutes int                `json:"durationMinutes"`
	Category        string             `json:"category,omitempty"`
	Promotion       *PromotionResponse `json:"promotion,omitempty"`
	Active          bool               `json:"active"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// ServiceListResponse wraps a catalog listing.
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}

// FromDomainService converts a domain service into the response view.
func FromDomainService(svc *domain.Service) *ServiceResponse {
	resp := &ServiceResponse{
		ID:              svc.ID,
		EstablishmentID: svc.EstablishmentID,
		Name:            svc.Name,
		Description:     svc.Description,
		Price:           svc.Price,
		DurationMinutes: svc.DurationMinutes,
		Category:        svc.Category,
		Active:          svc.Active,
		CreatedAt:       svc.CreatedAt,
		UpdatedAt:       svc.UpdatedAt,
	}
	if svc.Promotion != nil && svc.Promotion.Active {
		resp.Promotion = &PromotionResponse{
			Active:          svc.Promotion.Active,
			DiscountedPrice: svc.Promotion.DiscountedPrice,
			StartDate:       svc.Promotion.StartDate,
			EndDate:         svc.Promotion.EndDate,
			Description:     svc.Promotion.Description,
		}
	}
	return resp
}

// FromDomainServiceList converts a listing.
func FromDomainServiceList(svcs []domain.Service) *ServiceListResponse {
	list := make([]ServiceResponse, 0, len(svcs))
	for i := range svcs {
		list = append(list, *FromDomainService(&svcs[i]))
	}
	return &ServiceListResponse{
		Services: list,
		Total:    len(list),
	}
}
