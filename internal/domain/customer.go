package domain

import "time"

// Customer is a tenant-independent end user; one customer may book with many
// establishments. AppointmentHistory is an ordered append-only log of
// appointment ids, never reordered.
type Customer struct {
	ID                 int64
	Name               string
	Email              string
	Phone              string
	AppointmentHistory []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
