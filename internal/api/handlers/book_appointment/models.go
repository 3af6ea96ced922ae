package book_appointment

import (
	"time"

	"github.com/barberhub/scheduling-service/internal/domain"
	bookAppointment "github.com/barberhub/scheduling-service/internal/usecase/book_appointment"
	"github.com/barberhub/scheduling-service/pkg/types"
)

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	EstablishmentID int64   `json:"establishmentId"`
	ProfessionalID  int64   `json:"professionalId"`
	ServiceIDs      []int64 `json:"serviceIds"`
	Date            string  `json:"date"`     // "2026-03-03"
	TimeSlot        string  `json:"timeSlot"` // "10:00"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	EstablishmentID int64   `json:"establishmentId"`
	CustomerID      int64   `json:"customerId"`
	ProfessionalID  int64   `json:"professionalId"`
	ServiceIDs      []int64 `json:"serviceIds"`
	Date            string  `json:"date"`
	TimeSlot        string  `json:"timeSlot"`
	TotalDuration   int     `json:"totalDurationMinutes"`
	TotalPrice      float64 `json:"totalPrice"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
// The customer identity comes from the verified token, never the body.
func (r *BookAppointmentRequest) ToUseCaseRequest(customerID int64) (*bookAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	slot, err := types.NewTimeStringFromString(r.TimeSlot)
	if err != nil {
		return nil, err
	}

	return &bookAppointment.Request{
		EstablishmentID: r.EstablishmentID,
		CustomerID:      customerID,
		ProfessionalID:  r.ProfessionalID,
		ServiceIDs:      r.ServiceIDs,
		Date:            date,
		TimeSlot:        slot,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		EstablishmentID: resp.EstablishmentID,
		CustomerID:      resp.CustomerID,
		ProfessionalID:  resp.ProfessionalID,
		ServiceIDs:      resp.ServiceIDs,
		Date:            resp.Date.Format(domain.DateFormat),
		TimeSlot:        resp.TimeSlot.String(),
		TotalDuration:   resp.TotalDuration,
		TotalPrice:      resp.TotalPrice,
		Status:          string(resp.Status),
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
