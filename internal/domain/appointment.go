package domain

import (
	"time"

	"github.com/barberhub/scheduling-service/pkg/types"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// ActiveStatuses are the statuses that occupy a time slot.
// Used both for availability calculation and for the partial unique index
// guarding the slot.
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
}

// NotificationType delivery channel of a notification intent
type NotificationType string

const (
	NotificationEmail NotificationType = "email"
)

// NotificationStatus delivery state of a notification intent
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// Notification is one entry of an appointment's append-only delivery log.
// Actual delivery is out of scope; the service only records intent.
type Notification struct {
	Type   NotificationType   `json:"type"`
	Status NotificationStatus `json:"status"`
	SentAt time.Time          `json:"sentAt"`
}

// Rating is the customer's post-completion evaluation.
type Rating struct {
	Score   int    `json:"score"` // 1-5
	Comment string `json:"comment,omitempty"`
}

// Appointment is the central reservation record binding a customer, a
// professional, a date/time slot and one or more services of an establishment.
// Price and duration are captured at booking time and never recomputed.
type Appointment struct {
	ID              int64
	EstablishmentID int64
	CustomerID      int64
	ProfessionalID  int64
	ServiceIDs      []int64
	Date            time.Time
	TimeSlot        types.TimeString
	TotalDuration   int // minutes
	TotalPrice      float64
	Status          AppointmentStatus

	Rating        *Rating
	Notifications []Notification

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the appointment occupies its slot.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// IsTerminal reports whether the appointment reached a final state.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted
}

// CanBeCancelled reports whether a cancellation is still meaningful.
func (a *Appointment) CanBeCancelled() bool {
	return a.IsActive()
}

// StartsAt anchors the appointment's wall-clock slot on its date.
func (a *Appointment) StartsAt() time.Time {
	return a.TimeSlot.OnDate(a.Date)
}

// OccupiedUntil is the exclusive end of the occupied interval
// [TimeSlot, TimeSlot+TotalDuration).
func (a *Appointment) OccupiedUntil() (types.TimeString, error) {
	return a.TimeSlot.AddMinutes(a.TotalDuration)
}

// CanTransitionTo validates the lifecycle state machine:
// scheduled and confirmed may move between each other and into cancelled or
// completed; cancelled and completed are terminal.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	if !target.Valid() {
		return false
	}
	if s == StatusCancelled || s == StatusCompleted {
		return false
	}
	return s != target
}

// Valid reports whether the status is one of the enumerated values.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// AppointmentsFilter narrows establishment-scoped appointment listings.
type AppointmentsFilter struct {
	EstablishmentID int64
	ProfessionalID  *int64
	CustomerID      *int64
	Date            *time.Time
	Status          *AppointmentStatus
	OnlyActive      bool // restrict to slot-occupying statuses
}
