package domain

import (
	"regexp"
	"time"
)

// SubscriptionStatus represents the billing state of a tenant
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionTrial    SubscriptionStatus = "trial"
	SubscriptionInactive SubscriptionStatus = "inactive"
	SubscriptionPending  SubscriptionStatus = "pending"
)

// Valid reports whether the status is one of the enumerated values.
func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionActive, SubscriptionTrial, SubscriptionInactive, SubscriptionPending:
		return true
	}
	return false
}

// BillingEntry is one record of the subscription's append-only billing log.
type BillingEntry struct {
	Date       time.Time `json:"date"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
	ReceiptRef string    `json:"receiptRef"`
}

// PaymentMethod is the mocked payment token stored for a tenant.
// No real gateway integration exists; the token only gates reactivation.
type PaymentMethod struct {
	Type          string
	LastDigits    string
	ProviderToken string
}

// HasToken reports whether a usable payment token is stored.
func (p PaymentMethod) HasToken() bool {
	return p.ProviderToken != ""
}

// Subscription is owned 1:1 by an Establishment.
// RenewalDate only ever advances, through plan changes or reactivation.
type Subscription struct {
	Plan           Plan
	Status         SubscriptionStatus
	StartDate      time.Time
	RenewalDate    time.Time
	PaymentMethod  PaymentMethod
	BillingHistory []BillingEntry
}

// IsTrialExpired reports whether a trial ran past its renewal date.
// The caller is responsible for transitioning the status to pending.
func (s *Subscription) IsTrialExpired(now time.Time) bool {
	return s.Status == SubscriptionTrial && now.After(s.RenewalDate)
}

// Establishment is a tenant shop selling timed services.
type Establishment struct {
	ID   int64
	Name string
	Slug string

	OwnerID int64

	// CancellationNoticeHours minimum notice, in hours, for customer cancellations
	CancellationNoticeHours int

	Active       bool
	Subscription Subscription

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable reports whether new appointments may target this tenant.
func (e *Establishment) IsBookable() bool {
	return e.Active &&
		(e.Subscription.Status == SubscriptionActive || e.Subscription.Status == SubscriptionTrial)
}

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidSlug reports whether s satisfies the URL-safe slug invariant.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
