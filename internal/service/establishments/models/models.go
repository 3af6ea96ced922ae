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

// CreateEstablishmentRequest registers a new tenant. The slug is derived
// from the name unless given explicitly.
type CreateEstablishmentRequest struct {
	Name                    string
	Slug                    string
	CancellationNoticeHours int
	Plan                    string
}

// ServiceSummary is the public catalog entry.
type ServiceSummary struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Price           float64  `json:"price"`
	PromotionPrice  *float64 `json:"promotionPrice,omitempty"`
	DurationMinutes int      `json:"durationMinutes"`
	Category        string   `json:"category,omitempty"`
}

// ProfessionalSummary is the public staff entry.
type ProfessionalSummary struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Specialties       []string `json:"specialties,omitempty"`
	WorkStart         string   `json:"workStart"`
	WorkEnd           string   `json:"workEnd"`
	AvailableWeekdays []int    `json:"availableWeekdays"`
}

// EstablishmentResponse is the public tenant view: profile, active catalog
// and active staff. Subscription internals stay private.
type EstablishmentResponse struct {
	ID                      int64                 `json:"id"`
	Name                    string                `json:"name"`
	Slug                    string                `json:"slug"`
	Active                  bool                  `json:"active"`
	Bookable                bool                  `json:"bookable"`
	CancellationNoticeHours int                   `json:"cancellationNoticeHours"`
	Services                []ServiceSummary      `json:"services"`
	Professionals           []ProfessionalSummary `json:"professionals"`
	CreatedAt               time.Time             `json:"createdAt"`
}

// FromDomain assembles the public view. The promotion price is surfaced only
// while its window covers now.
func FromDomain(est *domain.Establishment, services []domain.Service, professionals []domain.Professional, now time.Time) *EstablishmentResponse {
	resp := &EstablishmentResponse{
		ID:                      est.ID,
		Name:                    est.Name,
		Slug:                    est.Slug,
		Active:                  est.Active,
		Bookable:                est.IsBookable(),
		CancellationNoticeHours: est.CancellationNoticeHours,
		Services:                make([]ServiceSummary, 0, len(services)),
		Professionals:           make([]ProfessionalSummary, 0, len(professionals)),
		CreatedAt:               est.CreatedAt,
	}

	for i := range services {
		svc := &services[i]
		summary := ServiceSummary{
			ID:              svc.ID,
			Name:            svc.Name,
			Price:           svc.Price,
			DurationMinutes: svc.DurationMinutes,
			Category:        svc.Category,
		}
		if svc.Promotion != nil && svc.Promotion.AppliesAt(now) {
			price := svc.Promotion.DiscountedPrice
			summary.PromotionPrice = &price
		}
		resp.Services = append(resp.Services, summary)
	}

	for i := range professionals {
		prof := &professionals[i]
		resp.Professionals = append(resp.Professionals, ProfessionalSummary{
			ID:                prof.ID,
			Name:              prof.Name,
			Specialties:       prof.Specialties,
			WorkStart:         prof.WorkingHours.Start.String(),
			WorkEnd:           prof.WorkingHours.End.String(),
			AvailableWeekdays: prof.WorkingHours.AvailableWeekdays,
		})
	}

	return resp
}
