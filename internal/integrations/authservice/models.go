package authservice

import "github.com/barberhub/scheduling-service/internal/domain"

// Identity is the verified caller identity returned by the auth service.
// EstablishmentID is set only for proprietor and professional roles.
type Identity struct {
	UserID          int64       `json:"user_id"`
	Role            domain.Role `json:"role"`
	EstablishmentID *int64      `json:"establishment_id,omitempty"`
}

// ErrorResponse is the auth service error payload
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
