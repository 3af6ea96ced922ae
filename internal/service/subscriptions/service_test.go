package subscriptions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberhub/scheduling-service/internal/domain"
	establishmentRepo "github.com/barberhub/scheduling-service/internal/infra/storage/establishment"
	"github.com/barberhub/scheduling-service/internal/service/subscriptions/models"
	"github.com/barberhub/scheduling-service/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeEstablishmentStore struct {
	est *domain.Establishment
}

func (s *fakeEstablishmentStore) GetByID(_ context.Context, id int64) (*domain.Establishment, error) {
	if s.est == nil || s.est.ID != id {
		return nil, establishmentRepo.ErrEstablishmentNotFound
	}
	out := *s.est
	return &out, nil
}

func (s *fakeEstablishmentStore) UpdateSubscriptionStatus(_ context.Context, id int64, status domain.SubscriptionStatus) error {
	s.est.Subscription.Status = status
	return nil
}

func (s *fakeEstablishmentStore) RenewSubscription(_ context.Context, id int64, plan domain.Plan, status domain.SubscriptionStatus, renewalDate time.Time, entry domain.BillingEntry) error {
	s.est.Subscription.Plan = plan
	s.est.Subscription.Status = status
	s.est.Subscription.RenewalDate = renewalDate
	s.est.Subscription.BillingHistory = append(s.est.Subscription.BillingHistory, entry)
	return nil
}

func (s *fakeEstablishmentStore) SetPaymentMethod(_ context.Context, id int64, pm domain.PaymentMethod) error {
	s.est.Subscription.PaymentMethod = pm
	return nil
}

type fakeProfessionalCounter struct {
	active int
}

func (s *fakeProfessionalCounter) CountActive(_ context.Context, _ int64) (int, error) {
	return s.active, nil
}

func fixtureNow() time.Time {
	return time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
}

func fixtureService(plan domain.Plan, status domain.SubscriptionStatus, activeProfessionals int) (*Service, *fakeEstablishmentStore) {
	store := &fakeEstablishmentStore{est: &domain.Establishment{
		ID:     1,
		Active: true,
		Subscription: domain.Subscription{
			Plan:        plan,
			Status:      status,
			StartDate:   fixtureNow().AddDate(0, -2, 0),
			RenewalDate: fixtureNow().AddDate(0, 0, 14),
		},
	}}
	svc := NewService(store, &fakeProfessionalCounter{active: activeProfessionals}, nopLogger{})
	svc.timeProvider = fixedTime{now: fixtureNow()}
	return svc, store
}

func proprietorActor() models.Actor {
	return models.Actor{UserID: 1, Role: domain.RoleProprietor, EstablishmentID: ptr.Ptr(int64(1))}
}

func TestChangePlan_UpgradeAppendsBillingAndAdvancesRenewal(t *testing.T) {
	svc, store := fixtureService(domain.PlanBasic, domain.SubscriptionActive, 2)

	resp, err := svc.ChangePlan(context.Background(),
		&models.ChangePlanRequest{EstablishmentID: 1, Plan: "professional"}, proprietorActor())
	require.NoError(t, err)

	assert.Equal(t, "professional", resp.Plan)
	assert.Equal(t, fixtureNow().AddDate(0, 1, 0), resp.RenewalDate)
	require.Len(t, store.est.Subscription.BillingHistory, 1)
	entry := store.est.Subscription.BillingHistory[0]
	assert.InDelta(t, 199.90, entry.Amount, 0.001)
	assert.Equal(t, "paid", entry.Status)
	assert.NotEmpty(t, entry.ReceiptRef)
}

func TestChangePlan_DowngradeBlockedByStaffCount(t *testing.T) {
	svc, _ := fixtureService(domain.PlanProfessional, domain.SubscriptionActive, 5)

	_, err := svc.ChangePlan(context.Background(),
		&models.ChangePlanRequest{EstablishmentID: 1, Plan: "basic"}, proprietorActor())
	assert.ErrorIs(t, err, ErrTooManyProfessionals)
}

func TestChangePlan_DowngradeAllowedWithinLimit(t *testing.T) {
	svc, _ := fixtureService(domain.PlanProfessional, domain.SubscriptionActive, 3)

	resp, err := svc.ChangePlan(context.Background(),
		&models.ChangePlanRequest{EstablishmentID: 1, Plan: "basic"}, proprietorActor())
	require.NoError(t, err)
	assert.Equal(t, "basic", resp.Plan)
}

func TestChangePlan_TrialConvertsToActive(t *testing.T) {
	svc, store := fixtureService(domain.PlanBasic, domain.SubscriptionTrial, 0)

	resp, err := svc.ChangePlan(context.Background(),
		&models.ChangePlanRequest{EstablishmentID: 1, Plan: "premium"}, proprietorActor())
	require.NoError(t, err)

	assert.Equal(t, "premium", resp.Plan)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, domain.SubscriptionActive, store.est.Subscription.Status)
	require.Len(t, store.est.Subscription.BillingHistory, 1)
	assert.InDelta(t, 299.90, store.est.Subscription.BillingHistory[0].Amount, 0.001)
}

func TestChangePlan_InactiveReactivatesOnNewPlan(t *testing.T) {
	svc, store := fixtureService(domain.PlanBasic, domain.SubscriptionInactive, 0)

	resp, err := svc.ChangePlan(context.Background(),
		&models.ChangePlanRequest{EstablishmentID: 1, Plan: "professional"}, proprietorActor())
	require.NoError(t, err)

	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, domain.SubscriptionActive, store.est.Subscription.Status)
}

func TestChangePlan_SamePlanRejected(t *testing.T) {
	svc, _ := fixtureService(domain.PlanBasic, domain.SubscriptionActive, 0)

	_, err := svc.ChangePlan(context.Background(),
		&models.ChangePlanRequest{EstablishmentID: 1, Plan: "basic"}, proprietorActor())
	assert.ErrorIs(t, err, ErrSamePlan)
}

func TestChangePlan_UnknownPlan(t *testing.T) {
	svc, _ := fixtureService(domain.PlanBasic, domain.SubscriptionActive, 0)

	_, err := svc.ChangePlan(context.Background(),
		&models.ChangePlanRequest{EstablishmentID: 1, Plan: "platinum"}, proprietorActor())
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestCancel_LeavesRenewalDateUntouched(t *testing.T) {
	svc, store := fixtureService(domain.PlanBasic, domain.SubscriptionActive, 0)
	renewal := store.est.Subscription.RenewalDate

	resp, err := svc.Cancel(context.Background(), 1, proprietorActor())
	require.NoError(t, err)

	assert.Equal(t, "inactive", resp.Status)
	assert.Equal(t, renewal, store.est.Subscription.RenewalDate)
}

func TestCancel_TwiceRejected(t *testing.T) {
	svc, _ := fixtureService(domain.PlanBasic, domain.SubscriptionInactive, 0)

	_, err := svc.Cancel(context.Background(), 1, proprietorActor())
	assert.ErrorIs(t, err, ErrAlreadyInactive)
}

func TestReactivate_RequiresPaymentMethod(t *testing.T) {
	svc, _ := fixtureService(domain.PlanBasic, domain.SubscriptionInactive, 0)

	_, err := svc.Reactivate(context.Background(), 1, proprietorActor())
	assert.ErrorIs(t, err, ErrNoPaymentMethod)
}

func TestReactivate_WithTokenChargesAndActivates(t *testing.T) {
	svc, store := fixtureService(domain.PlanPremium, domain.SubscriptionInactive, 0)
	store.est.Subscription.PaymentMethod = domain.PaymentMethod{
		Type: "card", LastDigits: "4242", ProviderToken: "tok-1",
	}

	resp, err := svc.Reactivate(context.Background(), 1, proprietorActor())
	require.NoError(t, err)

	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, fixtureNow().AddDate(0, 1, 0), resp.RenewalDate)
	require.Len(t, store.est.Subscription.BillingHistory, 1)
	assert.InDelta(t, 299.90, store.est.Subscription.BillingHistory[0].Amount, 0.001)
}

func TestUpdatePaymentMethod_GeneratesToken(t *testing.T) {
	svc, store := fixtureService(domain.PlanBasic, domain.SubscriptionActive, 0)

	resp, err := svc.UpdatePaymentMethod(context.Background(),
		&models.UpdatePaymentMethodRequest{EstablishmentID: 1, Type: "card", LastDigits: "4242"}, proprietorActor())
	require.NoError(t, err)

	assert.Equal(t, "4242", resp.PaymentLastDigits)
	assert.NotEmpty(t, store.est.Subscription.PaymentMethod.ProviderToken)
}

func TestAccess_WrongTenantAndRole(t *testing.T) {
	svc, _ := fixtureService(domain.PlanBasic, domain.SubscriptionActive, 0)

	other := models.Actor{UserID: 2, Role: domain.RoleProprietor, EstablishmentID: ptr.Ptr(int64(2))}
	_, err := svc.Get(context.Background(), 1, other)
	assert.ErrorIs(t, err, ErrAccessDenied)

	customer := models.Actor{UserID: 3, Role: domain.RoleCustomer}
	_, err = svc.Get(context.Background(), 1, customer)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
