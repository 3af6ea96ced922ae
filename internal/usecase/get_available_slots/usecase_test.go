package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberhub/scheduling-service/internal/domain"
	establishmentRepo "github.com/barberhub/scheduling-service/internal/infra/storage/establishment"
	professionalRepo "github.com/barberhub/scheduling-service/internal/infra/storage/professional"
	"github.com/barberhub/scheduling-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeAppointmentStore struct {
	appointments []domain.Appointment
}

func (s *fakeAppointmentStore) ListActiveByProfessionalAndDate(_ context.Context, professionalID int64, date time.Time, _ bool) ([]domain.Appointment, error) {
	appts := make([]domain.Appointment, 0)
	for _, appt := range s.appointments {
		if appt.ProfessionalID == professionalID && appt.Date.Equal(date) && appt.IsActive() {
			appts = append(appts, appt)
		}
	}
	return appts, nil
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

func fixtureNow() time.Time {
	return time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
}

// Tuesday
func fixtureDate() time.Time {
	return time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
}

func fixtureUseCase(appointments []domain.Appointment) *UseCase {
	uc := NewUseCase(
		&fakeAppointmentStore{appointments: appointments},
		&fakeEstablishmentStore{est: &domain.Establishment{ID: 1, Active: true}},
		&fakeProfessionalStore{prof: &domain.Professional{
			ID:              10,
			EstablishmentID: 1,
			Active:          true,
			WorkingHours: domain.WorkingHours{
				Start:             "09:00",
				End:               "12:00",
				AvailableWeekdays: []int{1, 2, 3, 4, 5},
			},
		}},
		nopLogger{},
	)
	uc.timeProvider = fixedTime{now: fixtureNow()}
	return uc
}

func fixtureRequest() *Request {
	return &Request{ProfessionalID: 10, Date: fixtureDate()}
}

func TestExecute_FullGridWhenFree(t *testing.T) {
	uc := fixtureUseCase(nil)

	resp, err := uc.Execute(context.Background(), fixtureRequest())
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, resp.Slots)
}

func TestExecute_DurationAwareOccupancy(t *testing.T) {
	uc := fixtureUseCase([]domain.Appointment{
		{
			ID:             1,
			ProfessionalID: 10,
			Date:           fixtureDate(),
			TimeSlot:       "10:00",
			TotalDuration:  60,
			Status:         domain.StatusConfirmed,
		},
	})

	resp, err := uc.Execute(context.Background(), fixtureRequest())
	require.NoError(t, err)

	// 10:00 and 10:30 are covered by the 60-minute appointment
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "11:00", "11:30"}, resp.Slots)
}

func TestExecute_CancelledAppointmentFreesSlot(t *testing.T) {
	uc := fixtureUseCase([]domain.Appointment{
		{
			ID:             1,
			ProfessionalID: 10,
			Date:           fixtureDate(),
			TimeSlot:       "10:00",
			TotalDuration:  30,
			Status:         domain.StatusCancelled,
		},
	})

	resp, err := uc.Execute(context.Background(), fixtureRequest())
	require.NoError(t, err)

	assert.Contains(t, resp.Slots, types.TimeString("10:00"))
}

func TestExecute_NonWorkingDayIsEmptyNotError(t *testing.T) {
	uc := fixtureUseCase(nil)

	req := fixtureRequest()
	req.Date = time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC) // Sunday

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDate(t *testing.T) {
	uc := fixtureUseCase(nil)

	req := fixtureRequest()
	req.Date = fixtureNow().AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_UnknownProfessional(t *testing.T) {
	uc := fixtureUseCase(nil)

	req := fixtureRequest()
	req.ProfessionalID = 999

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}
