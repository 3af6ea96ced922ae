package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/barberhub/scheduling-service/internal/domain"
	establishmentRepo "github.com/barberhub/scheduling-service/internal/infra/storage/establishment"
	professionalRepo "github.com/barberhub/scheduling-service/internal/infra/storage/professional"
	"github.com/barberhub/scheduling-service/pkg/types"
)

// UseCase computes the free slots of a professional on a given day. The
// result is advisory: booking re-checks occupancy under a transaction, so a
// listed slot can still be lost to a concurrent booking.
type UseCase struct {
	appointmentRepo   AppointmentRepository
	establishmentRepo EstablishmentRepository
	professionalRepo  ProfessionalRepository
	timeProvider      TimeProvider
	logger            Logger
}

// NewUseCase creates a new availability use case.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	establishmentRepo EstablishmentRepository,
	professionalRepo ProfessionalRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:   appointmentRepo,
		establishmentRepo: establishmentRepo,
		professionalRepo:  professionalRepo,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// Execute runs the availability flow.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: professional=%d, date=%s",
		req.ProfessionalID, req.Date.Format(domain.DateFormat))

	// 1. Validate the date
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 2. Professional must exist and be active
	prof, err := uc.professionalRepo.GetByID(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("GetAvailableSlots: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}
	if !prof.Active {
		uc.logger.Warn("GetAvailableSlots: professional id=%d is inactive", req.ProfessionalID)
		return nil, ErrProfessionalNotFound
	}

	// 3. The owning tenant must still exist
	if _, err := uc.establishmentRepo.GetByID(ctx, prof.EstablishmentID); err != nil {
		if errors.Is(err, establishmentRepo.ErrEstablishmentNotFound) {
			uc.logger.Warn("GetAvailableSlots: establishment id=%d not found", prof.EstablishmentID)
			return nil, ErrEstablishmentNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get establishment id=%d: %v", prof.EstablishmentID, err)
		return nil, fmt.Errorf("%w: failed to get establishment: %v", ErrInternal, err)
	}

	// 4. A non-working weekday yields an empty list
	if !prof.WorkingHours.WorksOn(req.Date.Weekday()) {
		uc.logger.Info("GetAvailableSlots: professional id=%d does not work on %s",
			req.ProfessionalID, req.Date.Weekday())
		return &Response{
			EstablishmentID: prof.EstablishmentID,
			ProfessionalID:  req.ProfessionalID,
			Date:            req.Date,
			Slots:           []types.TimeString{},
		}, nil
	}

	// 5. Build the slot grid over the working window
	grid, err := buildSlotGrid(prof.WorkingHours.Start, prof.WorkingHours.End)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build slot grid: %v", err)
		return nil, fmt.Errorf("%w: failed to build slot grid: %v", ErrInternal, err)
	}

	// 6. Remove slots covered by the day's active appointments
	occupied, err := uc.appointmentRepo.ListActiveByProfessionalAndDate(ctx, req.ProfessionalID, req.Date, false)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	free, err := freeSlots(grid, occupied)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to filter slots: %v", err)
		return nil, fmt.Errorf("%w: failed to filter slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: %d of %d slots free for professional id=%d on %s",
		len(free), len(grid), req.ProfessionalID, req.Date.Format(domain.DateFormat))

	return &Response{
		EstablishmentID: prof.EstablishmentID,
		ProfessionalID:  req.ProfessionalID,
		Date:            req.Date,
		Slots:           free,
	}, nil
}
