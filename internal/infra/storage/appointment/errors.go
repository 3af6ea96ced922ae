package appointment

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment storage: appointment not found")
	ErrSlotTaken           = errors.New("appointment storage: slot already taken")
	ErrBuildQuery          = errors.New("appointment storage: failed to build query")
	ErrExecQuery           = errors.New("appointment storage: failed to execute query")
	ErrScanRow             = errors.New("appointment storage: failed to scan row")
)
