package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberhub/scheduling-service/internal/domain"
	catalogRepo "github.com/barberhub/scheduling-service/internal/infra/storage/catalog"
	establishmentRepo "github.com/barberhub/scheduling-service/internal/infra/storage/establishment"
	"github.com/barberhub/scheduling-service/internal/service/catalog/models"
	"github.com/barberhub/scheduling-service/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeServiceStore struct {
	nextID int64
	byID   map[int64]*domain.Service
}

func newFakeServiceStore() *fakeServiceStore {
	return &fakeServiceStore{nextID: 1, byID: make(map[int64]*domain.Service)}
}

func (s *fakeServiceStore) Create(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	created := *svc
	created.ID = s.nextID
	s.nextID++
	s.byID[created.ID] = &created
	out := created
	return &out, nil
}

func (s *fakeServiceStore) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := s.byID[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	out := *svc
	if svc.Promotion != nil {
		promo := *svc.Promotion
		out.Promotion = &promo
	}
	return &out, nil
}

func (s *fakeServiceStore) ListByEstablishment(_ context.Context, establishmentID int64, onlyActive bool) ([]domain.Service, error) {
	var out []domain.Service
	for _, svc := range s.byID {
		if svc.EstablishmentID != establishmentID {
			continue
		}
		if onlyActive && !svc.Active {
			continue
		}
		out = append(out, *svc)
	}
	return out, nil
}

func (s *fakeServiceStore) SetPromotion(_ context.Context, id int64, promo domain.Promotion) error {
	svc, ok := s.byID[id]
	if !ok {
		return catalogRepo.ErrServiceNotFound
	}
	svc.Promotion = &promo
	return nil
}

func (s *fakeServiceStore) ClearPromotion(_ context.Context, id int64) error {
	svc, ok := s.byID[id]
	if !ok {
		return catalogRepo.ErrServiceNotFound
	}
	if svc.Promotion != nil {
		svc.Promotion.Active = false
	}
	return nil
}

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

func (s *fakeEstablishmentStore) UpdateSubscriptionStatus(_ context.Context, _ int64, status domain.SubscriptionStatus) error {
	s.est.Subscription.Status = status
	return nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func fixtureNow() time.Time {
	return time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
}

func fixtureService(t *testing.T) (*Service, *fakeServiceStore) {
	t.Helper()
	store := newFakeServiceStore()
	ests := &fakeEstablishmentStore{est: &domain.Establishment{
		ID:     1,
		Active: true,
		Subscription: domain.Subscription{
			Plan:   domain.PlanBasic,
			Status: domain.SubscriptionActive,
		},
	}}
	svc := NewService(store, ests, nopLogger{})
	svc.timeProvider = fixedTime{now: fixtureNow()}

	_, err := store.Create(context.Background(), &domain.Service{
		EstablishmentID: 1,
		Name:            "Classic Cut",
		Price:           50,
		DurationMinutes: 30,
		Active:          true,
	})
	require.NoError(t, err)
	return svc, store
}

func proprietorActor() models.Actor {
	return models.Actor{UserID: 1, Role: domain.RoleProprietor, EstablishmentID: ptr.Ptr(int64(1))}
}

func promotionRequest(price float64) *models.CreatePromotionRequest {
	return &models.CreatePromotionRequest{
		ServiceID:       1,
		DiscountedPrice: price,
		StartDate:       time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC),
		Description:     "spring special",
	}
}

func TestCreateService_Success(t *testing.T) {
	svc, _ := fixtureService(t)

	resp, err := svc.CreateService(context.Background(), &models.CreateServiceRequest{
		EstablishmentID: 1,
		Name:            "Beard Trim",
		Price:           30,
		DurationMinutes: 30,
		Category:        "beard",
	}, proprietorActor())
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.ID)
	assert.True(t, resp.Active)
	assert.Nil(t, resp.Promotion)
}

func TestCreateService_Validation(t *testing.T) {
	svc, _ := fixtureService(t)

	for _, req := range []*models.CreateServiceRequest{
		{EstablishmentID: 1, Name: "", Price: 30, DurationMinutes: 30},
		{EstablishmentID: 1, Name: "Trim", Price: 0, DurationMinutes: 30},
		{EstablishmentID: 1, Name: "Trim", Price: 30, DurationMinutes: 0},
	} {
		_, err := svc.CreateService(context.Background(), req, proprietorActor())
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestCreatePromotion_Success(t *testing.T) {
	svc, store := fixtureService(t)

	resp, err := svc.CreatePromotion(context.Background(), promotionRequest(35), proprietorActor())
	require.NoError(t, err)

	require.NotNil(t, resp.Promotion)
	assert.InDelta(t, 35, resp.Promotion.DiscountedPrice, 0.001)

	stored := store.byID[1]
	require.NotNil(t, stored.Promotion)
	assert.True(t, stored.Promotion.Active)
}

func TestCreatePromotion_PriceMustBeBelowBase(t *testing.T) {
	svc, _ := fixtureService(t)

	for _, price := range []float64{0, -5, 50, 60} {
		_, err := svc.CreatePromotion(context.Background(), promotionRequest(price), proprietorActor())
		assert.ErrorIs(t, err, ErrInvalidPromotionPrice)
	}
}

func TestCreatePromotion_EmptyWindowRejected(t *testing.T) {
	svc, _ := fixtureService(t)

	req := promotionRequest(35)
	req.EndDate = req.StartDate
	_, err := svc.CreatePromotion(context.Background(), req, proprietorActor())
	assert.ErrorIs(t, err, ErrInvalidPromotionWindow)

	req = promotionRequest(35)
	req.StartDate, req.EndDate = req.EndDate, req.StartDate
	_, err = svc.CreatePromotion(context.Background(), req, proprietorActor())
	assert.ErrorIs(t, err, ErrInvalidPromotionWindow)
}

func TestCreatePromotion_TenantDerivedFromService(t *testing.T) {
	svc, _ := fixtureService(t)

	otherTenant := models.Actor{UserID: 2, Role: domain.RoleProprietor, EstablishmentID: ptr.Ptr(int64(2))}
	_, err := svc.CreatePromotion(context.Background(), promotionRequest(35), otherTenant)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreatePromotion_ExpiredTrialMovesToPendingAndRejects(t *testing.T) {
	store := newFakeServiceStore()
	ests := &fakeEstablishmentStore{est: &domain.Establishment{
		ID:     1,
		Active: true,
		Subscription: domain.Subscription{
			Plan:        domain.PlanBasic,
			Status:      domain.SubscriptionTrial,
			RenewalDate: fixtureNow().AddDate(0, 0, -1),
		},
	}}
	svc := NewService(store, ests, nopLogger{})
	svc.timeProvider = fixedTime{now: fixtureNow()}

	_, err := store.Create(context.Background(), &domain.Service{
		EstablishmentID: 1, Name: "Classic Cut", Price: 50, DurationMinutes: 30, Active: true,
	})
	require.NoError(t, err)

	_, err = svc.CreatePromotion(context.Background(), promotionRequest(35), proprietorActor())
	assert.ErrorIs(t, err, ErrEstablishmentInactive)
	assert.Equal(t, domain.SubscriptionPending, ests.est.Subscription.Status)
}

func TestCreateService_InactiveTenantRejected(t *testing.T) {
	store := newFakeServiceStore()
	ests := &fakeEstablishmentStore{est: &domain.Establishment{
		ID:     1,
		Active: true,
		Subscription: domain.Subscription{
			Plan:   domain.PlanBasic,
			Status: domain.SubscriptionInactive,
		},
	}}
	svc := NewService(store, ests, nopLogger{})
	svc.timeProvider = fixedTime{now: fixtureNow()}

	_, err := svc.CreateService(context.Background(), &models.CreateServiceRequest{
		EstablishmentID: 1, Name: "Trim", Price: 30, DurationMinutes: 30,
	}, proprietorActor())
	assert.ErrorIs(t, err, ErrEstablishmentInactive)
}

func TestCreatePromotion_UnknownService(t *testing.T) {
	svc, _ := fixtureService(t)

	req := promotionRequest(35)
	req.ServiceID = 99
	_, err := svc.CreatePromotion(context.Background(), req, proprietorActor())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestEndPromotion_ClosesActiveWindow(t *testing.T) {
	svc, store := fixtureService(t)

	_, err := svc.CreatePromotion(context.Background(), promotionRequest(35), proprietorActor())
	require.NoError(t, err)

	resp, err := svc.EndPromotion(context.Background(), 1, proprietorActor())
	require.NoError(t, err)

	assert.Nil(t, resp.Promotion)
	assert.False(t, store.byID[1].Promotion.Active)
}

func TestEndPromotion_WithoutPromotionRejected(t *testing.T) {
	svc, _ := fixtureService(t)

	_, err := svc.EndPromotion(context.Background(), 1, proprietorActor())
	assert.ErrorIs(t, err, ErrNoPromotion)
}

func TestList_OnlyActiveFilters(t *testing.T) {
	svc, store := fixtureService(t)
	_, err := store.Create(context.Background(), &domain.Service{
		EstablishmentID: 1, Name: "Retired", Price: 20, DurationMinutes: 30, Active: false,
	})
	require.NoError(t, err)

	all, err := svc.List(context.Background(), 1, false)
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)

	active, err := svc.List(context.Background(), 1, true)
	require.NoError(t, err)
	assert.Equal(t, 1, active.Total)
}
