package subscriptions

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/barberhub/scheduling-service/internal/domain"
	establishmentRepo "github.com/barberhub/scheduling-service/internal/infra/storage/establishment"
	"github.com/barberhub/scheduling-service/internal/service/subscriptions/models"
)

const (
	billingStatusPaid = "paid"
)

// Service manages the tenant's subscription: plan changes, cancellation,
// reactivation, payment method and invoices. Charging is mocked; every
// accepted operation records a paid billing entry with a generated receipt.
type Service struct {
	establishmentRepo EstablishmentRepository
	professionalRepo  ProfessionalRepository
	timeProvider      TimeProvider
	logger            Logger
}

// NewService creates a new subscription service.
func NewService(
	establishmentRepo EstablishmentRepository,
	professionalRepo ProfessionalRepository,
	logger Logger,
) *Service {
	return &Service{
		establishmentRepo: establishmentRepo,
		professionalRepo:  professionalRepo,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// Get returns the tenant's subscription.
func (s *Service) Get(ctx context.Context, establishmentID int64, actor models.Actor) (*models.SubscriptionResponse, error) {
	est, err := s.getManagedEstablishment(ctx, establishmentID, actor)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSubscription(est), nil
}

// ChangePlan moves the subscription to another plan and forces it active;
// this is also the trial-to-paid conversion path. A downgrade is refused
// while the active staff count exceeds the target plan's ceiling. The
// renewal date restarts one month from now and a billing entry for the new
// plan's price is appended.
func (s *Service) ChangePlan(ctx context.Context, req *models.ChangePlanRequest, actor models.Actor) (*models.SubscriptionResponse, error) {
	s.logger.Info("ChangePlan: establishment=%d to plan=%s by user=%d", req.EstablishmentID, req.Plan, actor.UserID)

	est, err := s.getManagedEstablishment(ctx, req.EstablishmentID, actor)
	if err != nil {
		return nil, err
	}

	plan := domain.Plan(req.Plan)
	if !plan.Valid() {
		s.logger.Warn("ChangePlan: invalid plan=%s", req.Plan)
		return nil, ErrInvalidPlan
	}
	if plan == est.Subscription.Plan {
		return nil, ErrSamePlan
	}

	activeCount, err := s.professionalRepo.CountActive(ctx, est.ID)
	if err != nil {
		s.logger.Error("ChangePlan: failed to count professionals for establishment=%d: %v", est.ID, err)
		return nil, fmt.Errorf("%w: failed to count professionals: %v", ErrInternal, err)
	}
	if !plan.AllowsProfessionalCount(activeCount) {
		s.logger.Warn("ChangePlan: establishment=%d has %d active professionals, plan=%s refuses", est.ID, activeCount, plan)
		return nil, ErrTooManyProfessionals
	}

	now := s.timeProvider.Now()
	renewal := now.AddDate(0, 1, 0)
	entry := domain.BillingEntry{
		Date:       now,
		Amount:     plan.MonthlyPrice(),
		Status:     billingStatusPaid,
		ReceiptRef: uuid.NewString(),
	}

	if err := s.establishmentRepo.RenewSubscription(ctx, est.ID, plan, domain.SubscriptionActive, renewal, entry); err != nil {
		s.logger.Error("ChangePlan: repository error for establishment=%d: %v", est.ID, err)
		return nil, fmt.Errorf("%w: ChangePlan - repository error: %v", ErrInternal, err)
	}

	est.Subscription.Plan = plan
	est.Subscription.Status = domain.SubscriptionActive
	est.Subscription.RenewalDate = renewal
	est.Subscription.BillingHistory = append(est.Subscription.BillingHistory, entry)

	s.logger.Info("ChangePlan: establishment=%d now on plan=%s, renews %s", est.ID, plan, renewal.Format(domain.DateFormat))
	return models.FromDomainSubscription(est), nil
}

// Cancel moves the subscription to inactive. Existing appointments stay
// untouched; only new bookings are blocked.
func (s *Service) Cancel(ctx context.Context, establishmentID int64, actor models.Actor) (*models.SubscriptionResponse, error) {
	s.logger.Info("Cancel: establishment=%d by user=%d", establishmentID, actor.UserID)

	est, err := s.getManagedEstablishment(ctx, establishmentID, actor)
	if err != nil {
		return nil, err
	}

	if est.Subscription.Status == domain.SubscriptionInactive {
		return nil, ErrAlreadyInactive
	}

	if err := s.establishmentRepo.UpdateSubscriptionStatus(ctx, est.ID, domain.SubscriptionInactive); err != nil {
		s.logger.Error("Cancel: repository error for establishment=%d: %v", est.ID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	est.Subscription.Status = domain.SubscriptionInactive
	s.logger.Info("Cancel: establishment=%d subscription cancelled", est.ID)
	return models.FromDomainSubscription(est), nil
}

// Reactivate turns an inactive subscription back on. A stored payment token
// is required; the mocked charge appends a billing entry and restarts the
// renewal date one month from now.
func (s *Service) Reactivate(ctx context.Context, establishmentID int64, actor models.Actor) (*models.SubscriptionResponse, error) {
	s.logger.Info("Reactivate: establishment=%d by user=%d", establishmentID, actor.UserID)

	est, err := s.getManagedEstablishment(ctx, establishmentID, actor)
	if err != nil {
		return nil, err
	}

	if est.Subscription.Status != domain.SubscriptionInactive && est.Subscription.Status != domain.SubscriptionPending {
		s.logger.Warn("Reactivate: establishment=%d subscription is %s", est.ID, est.Subscription.Status)
		return nil, ErrNotInactive
	}
	if !est.Subscription.PaymentMethod.HasToken() {
		s.logger.Warn("Reactivate: establishment=%d has no payment method", est.ID)
		return nil, ErrNoPaymentMethod
	}

	now := s.timeProvider.Now()
	renewal := now.AddDate(0, 1, 0)
	entry := domain.BillingEntry{
		Date:       now,
		Amount:     est.Subscription.Plan.MonthlyPrice(),
		Status:     billingStatusPaid,
		ReceiptRef: uuid.NewString(),
	}

	if err := s.establishmentRepo.RenewSubscription(ctx, est.ID, est.Subscription.Plan, domain.SubscriptionActive, renewal, entry); err != nil {
		s.logger.Error("Reactivate: repository error for establishment=%d: %v", est.ID, err)
		return nil, fmt.Errorf("%w: Reactivate - repository error: %v", ErrInternal, err)
	}

	est.Subscription.Status = domain.SubscriptionActive
	est.Subscription.RenewalDate = renewal
	est.Subscription.BillingHistory = append(est.Subscription.BillingHistory, entry)

	s.logger.Info("Reactivate: establishment=%d subscription active, renews %s", est.ID, renewal.Format(domain.DateFormat))
	return models.FromDomainSubscription(est), nil
}

// UpdatePaymentMethod stores a mocked payment token for the tenant.
func (s *Service) UpdatePaymentMethod(ctx context.Context, req *models.UpdatePaymentMethodRequest, actor models.Actor) (*models.SubscriptionResponse, error) {
	s.logger.Info("UpdatePaymentMethod: establishment=%d by user=%d", req.EstablishmentID, actor.UserID)

	est, err := s.getManagedEstablishment(ctx, req.EstablishmentID, actor)
	if err != nil {
		return nil, err
	}

	if req.Type == "" || req.LastDigits == "" {
		return nil, fmt.Errorf("%w: payment method type and last digits are required", ErrInvalidInput)
	}

	pm := domain.PaymentMethod{
		Type:          req.Type,
		LastDigits:    req.LastDigits,
		ProviderToken: uuid.NewString(),
	}

	if err := s.establishmentRepo.SetPaymentMethod(ctx, est.ID, pm); err != nil {
		s.logger.Error("UpdatePaymentMethod: repository error for establishment=%d: %v", est.ID, err)
		return nil, fmt.Errorf("%w: UpdatePaymentMethod - repository error: %v", ErrInternal, err)
	}

	est.Subscription.PaymentMethod = pm
	s.logger.Info("UpdatePaymentMethod: establishment=%d payment method stored", est.ID)
	return models.FromDomainSubscription(est), nil
}

// ListInvoices returns the append-only billing history, oldest first.
func (s *Service) ListInvoices(ctx context.Context, establishmentID int64, actor models.Actor) (*models.InvoiceListResponse, error) {
	est, err := s.getManagedEstablishment(ctx, establishmentID, actor)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBillingHistory(est.Subscription.BillingHistory), nil
}

func (s *Service) getManagedEstablishment(ctx context.Context, establishmentID int64, actor models.Actor) (*domain.Establishment, error) {
	if !actor.Role.Can(domain.ActionManageSubscription) {
		return nil, ErrAccessDenied
	}
	if actor.Role != domain.RoleAdmin && !actor.SameEstablishment(establishmentID) {
		s.logger.Warn("user=%d not bound to establishment=%d", actor.UserID, establishmentID)
		return nil, ErrAccessDenied
	}

	est, err := s.establishmentRepo.GetByID(ctx, establishmentID)
	if err != nil {
		if errors.Is(err, establishmentRepo.ErrEstablishmentNotFound) {
			s.logger.Warn("establishment id=%d not found", establishmentID)
			return nil, ErrEstablishmentNotFound
		}
		s.logger.Error("repository error for establishment id=%d: %v", establishmentID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return est, nil
}
