package staff

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberhub/scheduling-service/internal/domain"
	establishmentRepo "github.com/barberhub/scheduling-service/internal/infra/storage/establishment"
	professionalRepo "github.com/barberhub/scheduling-service/internal/infra/storage/professional"
	"github.com/barberhub/scheduling-service/internal/service/staff/models"
	"github.com/barberhub/scheduling-service/pkg/ptr"
	"github.com/barberhub/scheduling-service/pkg/txmanager"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// serialTx runs blocks one at a time so the count-then-insert sequence
// stays atomic, as a serializable transaction would make it.
type serialTx struct {
	mu sync.Mutex
}

func (m *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// abortedTx mimics PostgreSQL aborting the transaction under a concurrent
// writer.
type abortedTx struct{}

func (abortedTx) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return fmt.Errorf("%w: could not serialize access due to concurrent update", txmanager.ErrSerialization)
}

type fakeProfessionalStore struct {
	mu      sync.Mutex
	nextID  int64
	byID    map[int64]*domain.Professional
	byEmail map[string]int64
}

func newFakeProfessionalStore() *fakeProfessionalStore {
	return &fakeProfessionalStore{
		nextID:  1,
		byID:    make(map[int64]*domain.Professional),
		byEmail: make(map[string]int64),
	}
}

func (s *fakeProfessionalStore) Create(_ context.Context, prof *domain.Professional) (*domain.Professional, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byEmail[prof.Email]; taken {
		return nil, professionalRepo.ErrEmailTaken
	}
	created := *prof
	created.ID = s.nextID
	s.nextID++
	s.byID[created.ID] = &created
	s.byEmail[created.Email] = created.ID
	return &created, nil
}

func (s *fakeProfessionalStore) GetByID(_ context.Context, id int64) (*domain.Professional, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prof, ok := s.byID[id]
	if !ok {
		return nil, professionalRepo.ErrProfessionalNotFound
	}
	out := *prof
	return &out, nil
}

func (s *fakeProfessionalStore) ListByEstablishment(_ context.Context, establishmentID int64, onlyActive bool) ([]domain.Professional, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Professional
	for _, prof := range s.byID {
		if prof.EstablishmentID != establishmentID {
			continue
		}
		if onlyActive && !prof.Active {
			continue
		}
		out = append(out, *prof)
	}
	return out, nil
}

func (s *fakeProfessionalStore) CountActive(_ context.Context, establishmentID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, prof := range s.byID {
		if prof.EstablishmentID == establishmentID && prof.Active {
			count++
		}
	}
	return count, nil
}

func (s *fakeProfessionalStore) Deactivate(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prof, ok := s.byID[id]
	if !ok {
		return professionalRepo.ErrProfessionalNotFound
	}
	prof.Active = false
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

type fakeAppointmentStore struct {
	appts []domain.Appointment
}

func (s *fakeAppointmentStore) ListWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]domain.Appointment, error) {
	var out []domain.Appointment
	for _, appt := range s.appts {
		if appt.EstablishmentID != filter.EstablishmentID {
			continue
		}
		if filter.ProfessionalID != nil && appt.ProfessionalID != *filter.ProfessionalID {
			continue
		}
		if filter.OnlyActive && appt.IsTerminal() {
			continue
		}
		out = append(out, appt)
	}
	return out, nil
}

func fixtureNow() time.Time {
	return time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
}

func fixtureService(plan domain.Plan) (*Service, *fakeProfessionalStore, *fakeAppointmentStore) {
	profs := newFakeProfessionalStore()
	appts := &fakeAppointmentStore{}
	ests := &fakeEstablishmentStore{est: &domain.Establishment{
		ID:     1,
		Active: true,
		Subscription: domain.Subscription{
			Plan:   plan,
			Status: domain.SubscriptionActive,
		},
	}}
	svc := NewService(profs, ests, appts, &serialTx{}, nopLogger{})
	svc.timeProvider = fixedTime{now: fixtureNow()}
	return svc, profs, appts
}

func proprietorActor() models.Actor {
	return models.Actor{UserID: 1, Role: domain.RoleProprietor, EstablishmentID: ptr.Ptr(int64(1))}
}

func addRequest(name, email string) *models.AddProfessionalRequest {
	return &models.AddProfessionalRequest{
		EstablishmentID:   1,
		Name:              name,
		Email:             email,
		Specialties:       []string{"haircut"},
		WorkStart:         "09:00",
		WorkEnd:           "18:00",
		AvailableWeekdays: []int{1, 2, 3, 4, 5},
	}
}

func seedProfessionals(t *testing.T, svc *Service, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		req := addRequest("Barber", "barber"+string(rune('a'+i))+"@corner-cuts.com")
		_, err := svc.AddProfessional(context.Background(), req, proprietorActor())
		require.NoError(t, err)
	}
}

func TestAddProfessional_BasicPlanStopsAtThree(t *testing.T) {
	svc, _, _ := fixtureService(domain.PlanBasic)
	seedProfessionals(t, svc, 3)

	_, err := svc.AddProfessional(context.Background(), addRequest("One Too Many", "d@corner-cuts.com"), proprietorActor())
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestAddProfessional_ProfessionalPlanAllowsSeven(t *testing.T) {
	svc, profs, _ := fixtureService(domain.PlanProfessional)
	seedProfessionals(t, svc, 7)

	count, err := profs.CountActive(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 7, count)

	_, err = svc.AddProfessional(context.Background(), addRequest("Eighth", "h@corner-cuts.com"), proprietorActor())
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestAddProfessional_PremiumPlanUnbounded(t *testing.T) {
	svc, _, _ := fixtureService(domain.PlanPremium)
	seedProfessionals(t, svc, 12)
}

func TestAddProfessional_DeactivatedStaffFreesQuota(t *testing.T) {
	svc, _, _ := fixtureService(domain.PlanBasic)
	seedProfessionals(t, svc, 3)

	require.NoError(t, svc.RemoveProfessional(context.Background(), 1, 2, proprietorActor()))

	resp, err := svc.AddProfessional(context.Background(), addRequest("Replacement", "r@corner-cuts.com"), proprietorActor())
	require.NoError(t, err)
	assert.True(t, resp.Active)
}

func TestAddProfessional_ConcurrentAtCeilingAdmitsOne(t *testing.T) {
	svc, profs, _ := fixtureService(domain.PlanBasic)
	seedProfessionals(t, svc, 2)

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := addRequest("Racer", "racer"+string(rune('0'+i))+"@corner-cuts.com")
			_, err := svc.AddProfessional(context.Background(), req, proprietorActor())
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	admitted := 0
	for err := range errs {
		if err == nil {
			admitted++
		} else {
			assert.ErrorIs(t, err, ErrQuotaExceeded)
		}
	}
	assert.Equal(t, 1, admitted)

	count, err := profs.CountActive(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestAddProfessional_ExpiredTrialMovesToPendingAndRejects(t *testing.T) {
	profs := newFakeProfessionalStore()
	ests := &fakeEstablishmentStore{est: &domain.Establishment{
		ID:     1,
		Active: true,
		Subscription: domain.Subscription{
			Plan:        domain.PlanBasic,
			Status:      domain.SubscriptionTrial,
			RenewalDate: fixtureNow().AddDate(0, 0, -1),
		},
	}}
	svc := NewService(profs, ests, &fakeAppointmentStore{}, &serialTx{}, nopLogger{})
	svc.timeProvider = fixedTime{now: fixtureNow()}

	_, err := svc.AddProfessional(context.Background(), addRequest("Late", "late@corner-cuts.com"), proprietorActor())
	assert.ErrorIs(t, err, ErrEstablishmentInactive)
	assert.Equal(t, domain.SubscriptionPending, ests.est.Subscription.Status)

	count, err := profs.CountActive(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAddProfessional_SerializationConflictReportsQuota(t *testing.T) {
	profs := newFakeProfessionalStore()
	ests := &fakeEstablishmentStore{est: &domain.Establishment{
		ID:     1,
		Active: true,
		Subscription: domain.Subscription{
			Plan:   domain.PlanBasic,
			Status: domain.SubscriptionActive,
		},
	}}
	svc := NewService(profs, ests, &fakeAppointmentStore{}, &abortedTx{}, nopLogger{})
	svc.timeProvider = fixedTime{now: fixtureNow()}

	_, err := svc.AddProfessional(context.Background(), addRequest("Racer", "racer@corner-cuts.com"), proprietorActor())
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestAddProfessional_DuplicateEmail(t *testing.T) {
	svc, _, _ := fixtureService(domain.PlanPremium)

	_, err := svc.AddProfessional(context.Background(), addRequest("First", "same@corner-cuts.com"), proprietorActor())
	require.NoError(t, err)

	_, err = svc.AddProfessional(context.Background(), addRequest("Second", "same@corner-cuts.com"), proprietorActor())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAddProfessional_InvalidWorkingWindow(t *testing.T) {
	svc, _, _ := fixtureService(domain.PlanBasic)

	req := addRequest("Backwards", "b@corner-cuts.com")
	req.WorkStart = "18:00"
	req.WorkEnd = "09:00"
	_, err := svc.AddProfessional(context.Background(), req, proprietorActor())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddProfessional_AccessDenied(t *testing.T) {
	svc, _, _ := fixtureService(domain.PlanBasic)

	customer := models.Actor{UserID: 100, Role: domain.RoleCustomer}
	_, err := svc.AddProfessional(context.Background(), addRequest("X", "x@corner-cuts.com"), customer)
	assert.ErrorIs(t, err, ErrAccessDenied)

	otherTenant := models.Actor{UserID: 2, Role: domain.RoleProprietor, EstablishmentID: ptr.Ptr(int64(2))}
	_, err = svc.AddProfessional(context.Background(), addRequest("X", "x@corner-cuts.com"), otherTenant)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestRemoveProfessional_BlockedByFutureAppointment(t *testing.T) {
	svc, _, appts := fixtureService(domain.PlanBasic)
	seedProfessionals(t, svc, 1)

	appts.appts = append(appts.appts, domain.Appointment{
		ID:              1,
		EstablishmentID: 1,
		ProfessionalID:  1,
		Date:            time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot:        "10:00",
		Status:          domain.StatusScheduled,
	})

	err := svc.RemoveProfessional(context.Background(), 1, 1, proprietorActor())
	assert.ErrorIs(t, err, ErrHasFutureAppointments)
}

func TestRemoveProfessional_PastAndCancelledAppointmentsDoNotBlock(t *testing.T) {
	svc, profs, appts := fixtureService(domain.PlanBasic)
	seedProfessionals(t, svc, 1)

	appts.appts = append(appts.appts,
		domain.Appointment{
			ID: 1, EstablishmentID: 1, ProfessionalID: 1,
			Date: time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC), TimeSlot: "10:00", Status: domain.StatusCompleted,
		},
		domain.Appointment{
			ID: 2, EstablishmentID: 1, ProfessionalID: 1,
			Date: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), TimeSlot: "10:00", Status: domain.StatusCancelled,
		},
	)

	require.NoError(t, svc.RemoveProfessional(context.Background(), 1, 1, proprietorActor()))

	prof, err := profs.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, prof.Active)
}

func TestRemoveProfessional_WrongTenantLooksLikeNotFound(t *testing.T) {
	svc, profs, _ := fixtureService(domain.PlanBasic)
	prof := &domain.Professional{EstablishmentID: 2, Name: "Elsewhere", Email: "e@other.com", Active: true}
	_, err := profs.Create(context.Background(), prof)
	require.NoError(t, err)

	err = svc.RemoveProfessional(context.Background(), 1, 1, proprietorActor())
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestRemoveProfessional_AlreadyInactive(t *testing.T) {
	svc, _, _ := fixtureService(domain.PlanBasic)
	seedProfessionals(t, svc, 1)

	require.NoError(t, svc.RemoveProfessional(context.Background(), 1, 1, proprietorActor()))
	err := svc.RemoveProfessional(context.Background(), 1, 1, proprietorActor())
	assert.ErrorIs(t, err, ErrAlreadyInactive)
}

func TestListProfessionals_OnlyActiveFilters(t *testing.T) {
	svc, _, _ := fixtureService(domain.PlanProfessional)
	seedProfessionals(t, svc, 3)
	require.NoError(t, svc.RemoveProfessional(context.Background(), 1, 2, proprietorActor()))

	all, err := svc.ListProfessionals(context.Background(), 1, false)
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)

	active, err := svc.ListProfessionals(context.Background(), 1, true)
	require.NoError(t, err)
	assert.Equal(t, 2, active.Total)
}
