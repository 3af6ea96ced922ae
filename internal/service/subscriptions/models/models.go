package models

import (
	"time"

	"github.com/barberhub/scheduling-service/internal/domain"
)

// Actor is the verified caller on whose behalf the service acts.
type Actor struct {
	UserID          int64
	Role            domain.Role
	EstablishmentID *int64
}

// SameEstablishment reports whether the actor is bound to the tenant.
func (a Actor) SameEstablishment(establishmentID int64) bool {
	return a.EstablishmentID != nil && *a.EstablishmentID == establishmentID
}

// ChangePlanRequest moves the tenant to another plan.
type ChangePlanRequest struct {
	EstablishmentID int64
	Plan            string
}

// UpdatePaymentMethodRequest stores a mocked payment token.
type UpdatePaymentMethodRequest struct {
	EstablishmentID int64
	Type            string
	LastDigits      string
}

// BillingEntryResponse is one invoice line.
type BillingEntryResponse struct {
	Date       time.Time `json:"date"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
	ReceiptRef string    `json:"receiptRef"`
}

// SubscriptionResponse is the service-level subscription view. The payment
// token itself is never exposed.
type SubscriptionResponse struct {
	EstablishmentID   int64                  `json:"establishmentId"`
	Plan              string                 `json:"plan"`
	Status            string                 `json:"status"`
	MonthlyPrice      float64                `json:"monthlyPrice"`
	StartDate         time.Time              `json:"startDate"`
	RenewalDate       time.Time              `json:"renewalDate"`
	PaymentMethodType string                 `json:"paymentMethodType,omitempty"`
	PaymentLastDigits string                 `json:"paymentLastDigits,omitempty"`
	BillingHistory    []BillingEntryResponse `json:"billingHistory,omitempty"`
}

// InvoiceListResponse wraps the billing history.
type InvoiceListResponse struct {
	Invoices []BillingEntryResponse `json:"invoices"`
	Total    int                    `json:"total"`
}

// FromDomainSubscription converts a tenant's subscription into the response view.
func FromDomainSubscription(est *domain.Establishment) *SubscriptionResponse {
	sub := est.Subscription
	resp := &SubscriptionResponse{
		EstablishmentID:   est.ID,
		Plan:              string(sub.Plan),
		Status:            string(sub.Status),
		MonthlyPrice:      sub.Plan.MonthlyPrice(),
		StartDate:         sub.StartDate,
		RenewalDate:       sub.RenewalDate,
		PaymentMethodType: sub.PaymentMethod.Type,
		PaymentLastDigits: sub.PaymentMethod.LastDigits,
	}
	for _, entry := range sub.BillingHistory {
		resp.BillingHistory = append(resp.BillingHistory, FromDomainBillingEntry(entry))
	}
	return resp
}

// FromDomainBillingEntry converts one billing record.
func FromDomainBillingEntry(entry domain.BillingEntry) BillingEntryResponse {
	return BillingEntryResponse{
		Date:       entry.Date,
		Amount:     entry.Amount,
		Status:     entry.Status,
		ReceiptRef: entry.ReceiptRef,
	}
}

// FromDomainBillingHistory converts the whole invoice log.
func FromDomainBillingHistory(entries []domain.BillingEntry) *InvoiceListResponse {
	invoices := make([]BillingEntryResponse, 0, len(entries))
	for _, entry := range entries {
		invoices = append(invoices, FromDomainBillingEntry(entry))
	}
	return &InvoiceListResponse{
		Invoices: invoices,
		Total:    len(invoices),
	}
}
