package models

import (
	"time"

	"github.com/barberhub/scheduling-service/internal/domain"
	"github.com/barberhub/scheduling-service/pkg/types"
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

// AddProfessionalRequest registers a new staff member.
type AddProfessionalRequest struct {
	EstablishmentID   int64
	Name              string
	Email             string
	Specialties       []string
	WorkStart         string // "HH:MM"
	WorkEnd           string // "HH:MM"
	AvailableWeekdays []int
}

// ToDomain builds the domain professional, validating the working template.
func (r *AddProfessionalRequest) ToDomain() (*domain.Professional, error) {
	start, err := types.NewTimeStringFromString(r.WorkStart)
	if err != nil {
		return nil, err
	}
	end, err := types.NewTimeStringFromString(r.WorkEnd)
	if err != nil {
		return nil, err
	}

	prof := &domain.Professional{
		EstablishmentID: r.EstablishmentID,
		Name:            r.Name,
		Email:           r.Email,
		Specialties:     r.Specialties,
		WorkingHours: domain.WorkingHours{
			Start:             start,
			End:               end,
			AvailableWeekdays: r.AvailableWeekdays,
		},
		Active: true,
	}

	if err := prof.WorkingHours.Validate(); err != nil {
		return nil, err
	}
	return prof, nil
}

// ProfessionalResponse is the service-level staff view.
type ProfessionalResponse struct {
	ID                int64     `json:"id"`
	EstablishmentID   int64     `json:"establishmentId"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Specialties       []string  `json:"specialties"`
	WorkStart         string    `json:"workStart"`
	WorkEnd           string    `json:"workEnd"`
	AvailableWeekdays []int     `json:"availableWeekdays"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ProfessionalListResponse wraps a staff listing.
type ProfessionalListResponse struct {
	Professionals []ProfessionalResponse `json:"professionals"`
	Total         int                    `json:"total"`
}

// FromDomainProfessional converts a domain professional into the response view.
func FromDomainProfessional(prof *domain.Professional) *ProfessionalResponse {
	return &ProfessionalResponse{
		ID:                prof.ID,
		EstablishmentID:   prof.EstablishmentID,
		Name:              prof.Name,
		Email:             prof.Email,
		Specialties:       prof.Specialties,
		WorkStart:         prof.WorkingHours.Start.String(),
		WorkEnd:           prof.WorkingHours.End.String(),
		AvailableWeekdays: prof.WorkingHours.AvailableWeekdays,
		Active:            prof.Active,
		CreatedAt:         prof.CreatedAt,
		UpdatedAt:         prof.UpdatedAt,
	}
}

// FromDomainProfessionalList converts a listing.
func FromDomainProfessionalList(profs []domain.Professional) *ProfessionalListResponse {
	list := make([]ProfessionalResponse, 0, len(profs))
	for i := range profs {
		list = append(list, *FromDomainProfessional(&profs[i]))
	}
	return &ProfessionalListResponse{
		Professionals: list,
		Total:         len(list),
	}
}
