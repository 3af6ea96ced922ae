package establishments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberhub/scheduling-service/internal/domain"
	establishmentRepo "github.com/barberhub/scheduling-service/internal/infra/storage/establishment"
	"github.com/barberhub/scheduling-service/internal/service/establishments/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeEstablishmentStore struct {
	nextID int64
	byID   map[int64]*domain.Establishment
	bySlug map[string]int64
}

func newFakeEstablishmentStore() *fakeEstablishmentStore {
	return &fakeEstablishmentStore{
		nextID: 1,
		byID:   make(map[int64]*domain.Establishment),
		bySlug: make(map[string]int64),
	}
}

func (s *fakeEstablishmentStore) Create(_ context.Context, est *domain.Establishment) (*domain.Establishment, error) {
	if _, taken := s.bySlug[est.Slug]; taken {
		return nil, establishmentRepo.ErrSlugTaken
	}
	created := *est
	created.ID = s.nextID
	s.nextID++
	s.byID[created.ID] = &created
	s.bySlug[created.Slug] = created.ID
	out := created
	return &out, nil
}

func (s *fakeEstablishmentStore) GetByID(_ context.Context, id int64) (*domain.Establishment, error) {
	est, ok := s.byID[id]
	if !ok {
		return nil, establishmentRepo.ErrEstablishmentNotFound
	}
	out := *est
	return &out, nil
}

func (s *fakeEstablishmentStore) GetBySlug(_ context.Context, slug string) (*domain.Establishment, error) {
	id, ok := s.bySlug[slug]
	if !ok {
		return nil, establishmentRepo.ErrEstablishmentNotFound
	}
	out := *s.byID[id]
	return &out, nil
}

type fakeServiceLister struct {
	services []domain.Service
}

func (s *fakeServiceLister) ListByEstablishment(_ context.Context, establishmentID int64, onlyActive bool) ([]domain.Service, error) {
	var out []domain.Service
	for _, svc := range s.services {
		if svc.EstablishmentID != establishmentID {
			continue
		}
		if onlyActive && !svc.Active {
			continue
		}
		out = append(out, svc)
	}
	return out, nil
}

type fakeProfessionalLister struct {
	professionals []domain.Professional
}

func (s *fakeProfessionalLister) ListByEstablishment(_ context.Context, establishmentID int64, onlyActive bool) ([]domain.Professional, error) {
	var out []domain.Professional
	for _, prof := range s.professionals {
		if prof.EstablishmentID != establishmentID {
			continue
		}
		if onlyActive && !prof.Active {
			continue
		}
		out = append(out, prof)
	}
	return out, nil
}

func fixtureNow() time.Time {
	return time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
}

func fixtureService() (*Service, *fakeEstablishmentStore, *fakeServiceLister, *fakeProfessionalLister) {
	store := newFakeEstablishmentStore()
	services := &fakeServiceLister{}
	professionals := &fakeProfessionalLister{}
	svc := NewService(store, services, professionals, nopLogger{})
	svc.timeProvider = fixedTime{now: fixtureNow()}
	return svc, store, services, professionals
}

func proprietorActor() models.Actor {
	return models.Actor{UserID: 1, Role: domain.RoleProprietor}
}

func TestCreate_SlugNormalizedFromName(t *testing.T) {
	svc, store, _, _ := fixtureService()

	resp, err := svc.Create(context.Background(),
		&models.CreateEstablishmentRequest{Name: "Corner Cuts & Co."}, proprietorActor())
	require.NoError(t, err)

	assert.Equal(t, "corner-cuts-and-co", resp.Slug)
	assert.True(t, resp.Bookable)

	created := store.byID[resp.ID]
	assert.Equal(t, int64(1), created.OwnerID)
	assert.Equal(t, domain.PlanBasic, created.Subscription.Plan)
	assert.Equal(t, domain.SubscriptionTrial, created.Subscription.Status)
	assert.Equal(t, fixtureNow().AddDate(0, 1, 0), created.Subscription.RenewalDate)
	assert.Equal(t, domain.DefaultCancellationNoticeHours, created.CancellationNoticeHours)
}

func TestCreate_ExplicitSlugAndPlan(t *testing.T) {
	svc, store, _, _ := fixtureService()

	resp, err := svc.Create(context.Background(), &models.CreateEstablishmentRequest{
		Name:                    "Corner Cuts",
		Slug:                    "cc-downtown",
		Plan:                    "premium",
		CancellationNoticeHours: 48,
	}, proprietorActor())
	require.NoError(t, err)

	assert.Equal(t, "cc-downtown", resp.Slug)
	assert.Equal(t, 48, resp.CancellationNoticeHours)
	assert.Equal(t, domain.PlanPremium, store.byID[resp.ID].Subscription.Plan)
}

func TestCreate_SlugTaken(t *testing.T) {
	svc, _, _, _ := fixtureService()

	_, err := svc.Create(context.Background(),
		&models.CreateEstablishmentRequest{Name: "Corner Cuts"}, proprietorActor())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(),
		&models.CreateEstablishmentRequest{Name: "Corner Cuts"}, proprietorActor())
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestCreate_InvalidInput(t *testing.T) {
	svc, _, _, _ := fixtureService()

	_, err := svc.Create(context.Background(),
		&models.CreateEstablishmentRequest{Name: ""}, proprietorActor())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(),
		&models.CreateEstablishmentRequest{Name: "Corner Cuts", Slug: "Has Spaces"}, proprietorActor())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(),
		&models.CreateEstablishmentRequest{Name: "Corner Cuts", Plan: "platinum"}, proprietorActor())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_CustomersCannotRegister(t *testing.T) {
	svc, _, _, _ := fixtureService()

	customer := models.Actor{UserID: 100, Role: domain.RoleCustomer}
	_, err := svc.Create(context.Background(),
		&models.CreateEstablishmentRequest{Name: "Corner Cuts"}, customer)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetBySlug_PublicViewSurfacesPromotion(t *testing.T) {
	svc, _, services, professionals := fixtureService()

	_, err := svc.Create(context.Background(),
		&models.CreateEstablishmentRequest{Name: "Corner Cuts"}, proprietorActor())
	require.NoError(t, err)

	services.services = []domain.Service{
		{
			ID: 5, EstablishmentID: 1, Name: "Classic Cut", Price: 50, DurationMinutes: 30, Active: true,
			Promotion: &domain.Promotion{
				Active:          true,
				DiscountedPrice: 35,
				StartDate:       fixtureNow().AddDate(0, 0, -1),
				EndDate:         fixtureNow().AddDate(0, 0, 7),
			},
		},
		{
			ID: 6, EstablishmentID: 1, Name: "Beard Trim", Price: 30, DurationMinutes: 30, Active: true,
			Promotion: &domain.Promotion{
				Active:          true,
				DiscountedPrice: 20,
				StartDate:       fixtureNow().AddDate(0, 0, 5),
				EndDate:         fixtureNow().AddDate(0, 0, 10),
			},
		},
	}
	professionals.professionals = []domain.Professional{
		{ID: 10, EstablishmentID: 1, Name: "Alex", Active: true,
			WorkingHours: domain.WorkingHours{Start: "09:00", End: "18:00", AvailableWeekdays: []int{1, 2, 3, 4, 5}}},
		{ID: 11, EstablishmentID: 1, Name: "Gone", Active: false},
	}

	resp, err := svc.GetBySlug(context.Background(), "corner-cuts")
	require.NoError(t, err)

	require.Len(t, resp.Services, 2)
	require.NotNil(t, resp.Services[0].PromotionPrice)
	assert.InDelta(t, 35, *resp.Services[0].PromotionPrice, 0.001)
	assert.Nil(t, resp.Services[1].PromotionPrice, "promotion window has not opened yet")

	require.Len(t, resp.Professionals, 1)
	assert.Equal(t, "Alex", resp.Professionals[0].Name)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _, _, _ := fixtureService()

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrEstablishmentNotFound)

	_, err = svc.GetBySlug(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrEstablishmentNotFound)
}

func TestGetByID_PendingTenantNotBookable(t *testing.T) {
	svc, store, _, _ := fixtureService()

	resp, err := svc.Create(context.Background(),
		&models.CreateEstablishmentRequest{Name: "Corner Cuts"}, proprietorActor())
	require.NoError(t, err)

	store.byID[resp.ID].Subscription.Status = domain.SubscriptionPending

	view, err := svc.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.False(t, view.Bookable)
}
