package domain

import "errors"

var (
	// ErrInvalidWorkingHours is returned for a malformed weekly working template
	ErrInvalidWorkingHours = errors.New("domain: invalid working hours")
)
