package book_appointment

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberhub/scheduling-service/internal/domain"
	appointmentRepo "github.com/barberhub/scheduling-service/internal/infra/storage/appointment"
	customerRepo "github.com/barberhub/scheduling-service/internal/infra/storage/customer"
	establishmentRepo "github.com/barberhub/scheduling-service/internal/infra/storage/establishment"
	professionalRepo "github.com/barberhub/scheduling-service/internal/infra/storage/professional"
	"github.com/barberhub/scheduling-service/pkg/txmanager"
	"github.com/barberhub/scheduling-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// fakeAppointmentStore emulates the partial unique index: one active
// appointment per (professional, date, slot), guarded by a mutex.
type fakeAppointmentStore struct {
	mu     sync.Mutex
	nextID int64
	byKey  map[string]*domain.Appointment
}

func newFakeAppointmentStore() *fakeAppointmentStore {
	return &fakeAppointmentStore{nextID: 1, byKey: make(map[string]*domain.Appointment)}
}

func slotKey(professionalID int64, date time.Time, slot types.TimeString) string {
	return fmt.Sprintf("%d/%s/%s", professionalID, date.Format(domain.DateFormat), slot)
}

func (s *fakeAppointmentStore) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := slotKey(appt.ProfessionalID, appt.Date, appt.TimeSlot)
	if _, taken := s.byKey[key]; taken {
		return nil, appointmentRepo.ErrSlotTaken
	}

	stored := *appt
	stored.ID = s.nextID
	s.nextID++
	s.byKey[key] = &stored

	out := stored
	return &out, nil
}

func (s *fakeAppointmentStore) ListActiveByProfessionalAndDate(_ context.Context, professionalID int64, date time.Time, _ bool) ([]domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appts := make([]domain.Appointment, 0)
	for _, appt := range s.byKey {
		if appt.ProfessionalID == professionalID && appt.Date.Equal(date) && appt.IsActive() {
			appts = append(appts, *appt)
		}
	}
	return appts, nil
}

type fakeEstablishmentStore struct {
	mu  sync.Mutex
	est *domain.Establishment

	statusUpdates []domain.SubscriptionStatus
}

func (s *fakeEstablishmentStore) GetByID(_ context.Context, id int64) (*domain.Establishment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.est == nil || s.est.ID != id {
		return nil, establishmentRepo.ErrEstablishmentNotFound
	}
	out := *s.est
	return &out, nil
}

func (s *fakeEstablishmentStore) UpdateSubscriptionStatus(_ context.Context, id int64, status domain.SubscriptionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.est == nil || s.est.ID != id {
		return establishmentRepo.ErrEstablishmentNotFound
	}
	s.est.Subscription.Status = status
	s.statusUpdates = append(s.statusUpdates, status)
	return nil
}

type fakeProfessionalStore struct {
	prof *domain.Professional
}

func (s *fakeProfessionalStore) GetByID(_ context.Context, id int64) (*domain.Professional, error) {
	if s.prof == nil || s.prof.ID != id {
		return nil, professionalRepo.ErrProfessionalNotFound
	}
	out := *s.prof
	return &out, nil
}

type fakeCustomerStore struct {
	mu       sync.Mutex
	cust     *domain.Customer
	appended []int64
}

func (s *fakeCustomerStore) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	if s.cust == nil || s.cust.ID != id {
		return nil, customerRepo.ErrCustomerNotFound
	}
	out := *s.cust
	return &out, nil
}

func (s *fakeCustomerStore) AppendAppointment(_ context.Context, _, appointmentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appended = append(s.appended, appointmentID)
	return nil
}

type fakeCatalogStore struct {
	services []domain.Service
}

func (s *fakeCatalogStore) GetActiveByIDs(_ context.Context, establishmentID int64, ids []int64) ([]domain.Service, error) {
	matched := make([]domain.Service, 0)
	for _, svc := range s.services {
		if svc.EstablishmentID != establishmentID || !svc.Active {
			continue
		}
		for _, id := range ids {
			if svc.ID == id {
				matched = append(matched, svc)
				break
			}
		}
	}
	return matched, nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func fixtureNow() time.Time {
	return time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
}

func fixtureDate() time.Time {
	return time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
}

func fixtureEstablishment() *domain.Establishment {
	return &domain.Establishment{
		ID:     1,
		Name:   "Corner Cuts",
		Slug:   "corner-cuts",
		Active: true,
		Subscription: domain.Subscription{
			Plan:        domain.PlanBasic,
			Status:      domain.SubscriptionActive,
			RenewalDate: fixtureNow().AddDate(0, 1, 0),
		},
	}
}

func fixtureUseCase() (*UseCase, *fakeAppointmentStore, *fakeEstablishmentStore, *fakeCustomerStore) {
	appointments := newFakeAppointmentStore()
	establishments := &fakeEstablishmentStore{est: fixtureEstablishment()}
	professionals := &fakeProfessionalStore{prof: &domain.Professional{
		ID:              10,
		EstablishmentID: 1,
		Name:            "Ana",
		Active:          true,
		WorkingHours: domain.WorkingHours{
			Start:             "09:00",
			End:               "18:00",
			AvailableWeekdays: []int{1, 2, 3, 4, 5},
		},
	}}
	customers := &fakeCustomerStore{cust: &domain.Customer{ID: 100, Name: "Bruno"}}
	catalog := &fakeCatalogStore{services: []domain.Service{
		{ID: 5, EstablishmentID: 1, Name: "Haircut", Price: 50, DurationMinutes: 30, Active: true},
		{ID: 6, EstablishmentID: 1, Name: "Beard trim", Price: 30, DurationMinutes: 30, Active: true},
	}}

	uc := NewUseCase(appointments, establishments, professionals, customers, catalog, passthroughTx{}, nopLogger{})
	uc.timeProvider = fixedTime{now: fixtureNow()}

	return uc, appointments, establishments, customers
}

func fixtureRequest() *Request {
	return &Request{
		EstablishmentID: 1,
		CustomerID:      100,
		ProfessionalID:  10,
		ServiceIDs:      []int64{5, 6},
		Date:            fixtureDate(),
		TimeSlot:        "10:00",
	}
}

func TestExecute_Success(t *testing.T) {
	uc, _, _, customers := fixtureUseCase()

	resp, err := uc.Execute(context.Background(), fixtureRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusScheduled, resp.Status)
	assert.Equal(t, 60, resp.TotalDuration)
	assert.InDelta(t, 80.0, resp.TotalPrice, 0.001)
	assert.Equal(t, []int64{resp.ID}, customers.appended)
}

func TestExecute_PromotionalPriceCaptured(t *testing.T) {
	uc, _, _, _ := fixtureUseCase()
	catalog := uc.catalogRepo.(*fakeCatalogStore)
	catalog.services[0].Promotion = &domain.Promotion{
		Active:          true,
		DiscountedPrice: 35,
		StartDate:       fixtureNow().AddDate(0, 0, -1),
		EndDate:         fixtureNow().AddDate(0, 0, 1),
	}

	resp, err := uc.Execute(context.Background(), fixtureRequest())
	require.NoError(t, err)

	assert.InDelta(t, 65.0, resp.TotalPrice, 0.001)
}

func TestExecute_EstablishmentNotFound(t *testing.T) {
	uc, _, _, _ := fixtureUseCase()

	req := fixtureRequest()
	req.EstablishmentID = 999

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrEstablishmentNotFound)
}

func TestExecute_EstablishmentNotBookable(t *testing.T) {
	uc, _, establishments, _ := fixtureUseCase()
	establishments.est.Subscription.Status = domain.SubscriptionInactive

	_, err := uc.Execute(context.Background(), fixtureRequest())
	assert.ErrorIs(t, err, ErrEstablishmentInactive)
}

func TestExecute_ExpiredTrialMovesToPending(t *testing.T) {
	uc, _, establishments, _ := fixtureUseCase()
	establishments.est.Subscription.Status = domain.SubscriptionTrial
	establishments.est.Subscription.RenewalDate = fixtureNow().AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), fixtureRequest())
	assert.ErrorIs(t, err, ErrEstablishmentInactive)
	assert.Equal(t, []domain.SubscriptionStatus{domain.SubscriptionPending}, establishments.statusUpdates)
}

func TestExecute_UnknownServiceRejectsWholeBooking(t *testing.T) {
	uc, _, _, _ := fixtureUseCase()

	req := fixtureRequest()
	req.ServiceIDs = []int64{5, 999}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveProfessional(t *testing.T) {
	uc, _, _, _ := fixtureUseCase()
	uc.professionalRepo.(*fakeProfessionalStore).prof.Active = false

	_, err := uc.Execute(context.Background(), fixtureRequest())
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestExecute_PastDate(t *testing.T) {
	uc, _, _, _ := fixtureUseCase()

	req := fixtureRequest()
	req.Date = fixtureNow().AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_MisalignedSlot(t *testing.T) {
	uc, _, _, _ := fixtureUseCase()

	req := fixtureRequest()
	req.TimeSlot = "10:15"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_SlotCoveredByLongerAppointment(t *testing.T) {
	uc, appointments, _, _ := fixtureUseCase()

	// 10:00 for 60 minutes occupies 10:00 and 10:30
	_, err := appointments.Create(context.Background(), &domain.Appointment{
		EstablishmentID: 1,
		CustomerID:      200,
		ProfessionalID:  10,
		ServiceIDs:      []int64{5},
		Date:            fixtureDate(),
		TimeSlot:        "10:00",
		TotalDuration:   60,
		Status:          domain.StatusScheduled,
	})
	require.NoError(t, err)

	req := fixtureRequest()
	req.TimeSlot = "10:30"

	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_ConcurrentSameSlotHasOneWinner(t *testing.T) {
	uc, _, _, _ := fixtureUseCase()

	const attempts = 16

	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = uc.Execute(context.Background(), fixtureRequest())
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrSlotTaken)
		}
	}
	assert.Equal(t, 1, winners)
}

// abortedTx mimics PostgreSQL aborting the transaction under a concurrent
// writer.
type abortedTx struct{}

func (abortedTx) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return fmt.Errorf("%w: could not serialize access due to concurrent update", txmanager.ErrSerialization)
}

func TestExecute_SerializationConflictLosesSlotRace(t *testing.T) {
	uc, _, _, _ := fixtureUseCase()
	uc.txManager = abortedTx{}

	_, err := uc.Execute(context.Background(), fixtureRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_DuplicateServiceIDsStoredOnce(t *testing.T) {
	uc, appointments, _, _ := fixtureUseCase()

	req := fixtureRequest()
	req.ServiceIDs = []int64{5, 5, 6, 5}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []int64{5, 6}, resp.ServiceIDs)
	assert.Equal(t, 60, resp.TotalDuration)
	assert.InDelta(t, 80.0, resp.TotalPrice, 0.001)

	stored := appointments.byKey[slotKey(10, fixtureDate(), "10:00")]
	require.NotNil(t, stored)
	assert.Equal(t, []int64{5, 6}, stored.ServiceIDs)
}
