package models

import (
	"errors"
	"time"

	"github.com/barberhub/scheduling-service/internal/domain"
)

var (
	// ErrInvalidStatus is returned for a status string outside the enumeration
	ErrInvalidStatus = errors.New("invalid appointment status")
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

// TransitionRequest moves an appointment to a new lifecycle status.
type TransitionRequest struct {
	AppointmentID int64
	Status        string
}

// RateRequest attaches the customer's rating.
type RateRequest struct {
	AppointmentID int64
	Score         int
	Comment       string
}

// ListRequest narrows an establishment-scoped listing.
type ListRequest struct {
	EstablishmentID int64
	ProfessionalID  *int64
	CustomerID      *int64
	Date            *time.Time
	Status          *string
	OnlyActive      bool
}

// ToDomainFilter converts the request into a storage filter.
func (r *ListRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		EstablishmentID: r.EstablishmentID,
		ProfessionalID:  r.ProfessionalID,
		CustomerID:      r.CustomerID,
		Date:            r.Date,
		OnlyActive:      r.OnlyActive,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ToDomainStatus converts a status string, rejecting unknown values.
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// RatingResponse mirrors domain.Rating for API consumption.
type RatingResponse struct {
	Score   int    `json:"score"`
	Comment string `json:"comment,omitempty"`
}

// NotificationResponse is one recorded delivery intent.
type NotificationResponse struct {
	Type   string    `json:"type"`
	Status string    `json:"status"`
	SentAt time.Time `json:"sentAt"`
}

// AppointmentResponse is the service-level appointment view.
type AppointmentResponse struct {
	ID              int64                  `json:"id"`
	EstablishmentID int64                  `json:"establishmentId"`
	CustomerID      int64                  `json:"customerId"`
	ProfessionalID  int64                  `json:"professionalId"`
	ServiceIDs      []int64                `json:"serviceIds"`
	Date            string                 `json:"date"`
	TimeSlot        string                 `json:"timeSlot"`
	TotalDuration   int                    `json:"totalDurationMinutes"`
	TotalPrice      float64                `json:"totalPrice"`
	Status          string                 `json:"status"`
	Rating          *RatingResponse        `json:"rating,omitempty"`
	Notifications   []NotificationResponse `json:"notifications,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// AppointmentListResponse wraps a listing.
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FromDomainAppointment converts a domain appointment into the response view.
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:              appt.ID,
		EstablishmentID: appt.EstablishmentID,
		CustomerID:      appt.CustomerID,
		ProfessionalID:  appt.ProfessionalID,
		ServiceIDs:      appt.ServiceIDs,
		Date:            appt.Date.Format(domain.DateFormat),
		TimeSlot:        appt.TimeSlot.String(),
		TotalDuration:   appt.TotalDuration,
		TotalPrice:      appt.TotalPrice,
		Status:          string(appt.Status),
		CreatedAt:       appt.CreatedAt,
		UpdatedAt:       appt.UpdatedAt,
	}

	if appt.Rating != nil {
		resp.Rating = &RatingResponse{
			Score:   appt.Rating.Score,
			Comment: appt.Rating.Comment,
		}
	}

	for _, n := range appt.Notifications {
		resp.Notifications = append(resp.Notifications, NotificationResponse{
			Type:   string(n.Type),
			Status: string(n.Status),
			SentAt: n.SentAt,
		})
	}

	return resp
}

// FromDomainAppointmentList converts a listing.
func FromDomainAppointmentList(appts []domain.Appointment) *AppointmentListResponse {
	list := make([]AppointmentResponse, 0, len(appts))
	for i := range appts {
		list = append(list, *FromDomainAppointment(&appts[i]))
	}
	return &AppointmentListResponse{
		Appointments: list,
		Total:        len(list),
	}
}
