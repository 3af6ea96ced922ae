package catalog

import "errors"

var (
	// ErrEstablishmentNotFound is returned when the tenant does not exist
	ErrEstablishmentNotFound = errors.New("establishment not found")

	// ErrServiceNotFound is returned when the service does not exist
	ErrServiceNotFound = errors.New("service not found")

	// ErrAccessDenied is returned when the caller may not manage the catalog
	ErrAccessDenied = errors.New("access denied")

	// ErrEstablishmentInactive is returned when the tenant's subscription does not admit changes
	ErrEstablishmentInactive = errors.New("establishment is not active")

	// ErrInvalidPromotionPrice is returned when the discount does not undercut the base price
	ErrInvalidPromotionPrice = errors.New("promotional price must be below the base price")

	// ErrInvalidPromotionWindow is returned for an inverted or empty window
	ErrInvalidPromotionWindow = errors.New("promotion end must be after its start")

	// ErrNoPromotion is returned when ending a service without an active promotion
	ErrNoPromotion = errors.New("service has no active promotion")

	// ErrInvalidInput is returned for malformed input
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service errors
	ErrInternal = errors.New("service: internal error")
)
