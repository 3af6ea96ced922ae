package domain

// Scheduling defaults
const (
	// SlotIntervalMinutes fixed slot granularity for the whole platform
	SlotIntervalMinutes = 30

	// DefaultCancellationNoticeHours minimum notice for customer-initiated cancellations
	DefaultCancellationNoticeHours = 24
)

// Business validation constants
const (
	MinRatingScore = 1
	MaxRatingScore = 5

	MaxRatingCommentLength = 500
	MaxServiceNameLength   = 120
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
