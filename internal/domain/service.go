package domain

import "time"

// Promotion is a time-windowed discounted price on a service.
// DiscountedPrice must stay below the service's base price.
type Promotion struct {
	Active          bool
	DiscountedPrice float64
	StartDate       time.Time
	EndDate         time.Time
	Description     string
}

// AppliesAt reports whether the promotion is active and its window covers t.
func (p Promotion) AppliesAt(t time.Time) bool {
	if !p.Active {
		return false
	}
	if t.Before(p.StartDate) {
		return false
	}
	if t.After(p.EndDate) {
		return false
	}
	return true
}

// Service is a sellable, timed offering of an establishment.
type Service struct {
	ID              int64
	EstablishmentID int64
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
	Category        string
	Promotion       *Promotion
	Active          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PriceAt resolves the effective price at time t: the promotional price when a
// promotion applies, the base price otherwise. Booking evaluates this against
// the current wall clock, not against the appointment date.
func (s *Service) PriceAt(t time.Time) float64 {
	if s.Promotion != nil && s.Promotion.AppliesAt(t) {
		return s.Promotion.DiscountedPrice
	}
	return s.Price
}
