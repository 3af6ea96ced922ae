package book_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/barberhub/scheduling-service/internal/domain"
	appointmentRepo "github.com/barberhub/scheduling-service/internal/infra/storage/appointment"
	customerRepo "github.com/barberhub/scheduling-service/internal/infra/storage/customer"
	establishmentRepo "github.com/barberhub/scheduling-service/internal/infra/storage/establishment"
	professionalRepo "github.com/barberhub/scheduling-service/internal/infra/storage/professional"
	"github.com/barberhub/scheduling-service/pkg/txmanager"
	"github.com/barberhub/scheduling-service/pkg/types"
)

// UseCase books an appointment. The slot re-check and insert run inside a
// serializable transaction, and the partial unique index backs them up: a
// concurrent booking of the same slot loses with ErrSlotTaken either way.
type UseCase struct {
	appointmentRepo   AppointmentRepository
	establishmentRepo EstablishmentRepository
	professionalRepo  ProfessionalRepository
	customerRepo      CustomerRepository
	catalogRepo       CatalogRepository
	txManager         TransactionManager
	timeProvider      TimeProvider
	logger            Logger
}

// NewUseCase creates a new booking use case.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	establishmentRepo EstablishmentRepository,
	professionalRepo ProfessionalRepository,
	customerRepo CustomerRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:   appointmentRepo,
		establishmentRepo: establishmentRepo,
		professionalRepo:  professionalRepo,
		customerRepo:      customerRepo,
		catalogRepo:       catalogRepo,
		txManager:         txManager,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// Execute runs the booking flow.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: establishment=%d, customer=%d, professional=%d, date=%s, slot=%s",
		req.EstablishmentID, req.CustomerID, req.ProfessionalID, req.Date.Format(domain.DateFormat), req.TimeSlot)

	// 1. Stateless validation
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Current time
	now := uc.timeProvider.Now()

	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("BookAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 3. Establishment gate
	est, err := uc.establishmentRepo.GetByID(ctx, req.EstablishmentID)
	if err != nil {
		if errors.Is(err, establishmentRepo.ErrEstablishmentNotFound) {
			uc.logger.Warn("BookAppointment: establishment id=%d not found", req.EstablishmentID)
			return nil, ErrEstablishmentNotFound
		}
		uc.logger.Error("BookAppointment: failed to get establishment id=%d: %v", req.EstablishmentID, err)
		return nil, fmt.Errorf("%w: failed to get establishment: %v", ErrInternal, err)
	}

	// An expired trial flips to pending on first touch; the booking that
	// discovered it is rejected like any other non-bookable tenant.
	if est.Subscription.IsTrialExpired(now) {
		if err := uc.establishmentRepo.UpdateSubscriptionStatus(ctx, est.ID, domain.SubscriptionPending); err != nil {
			uc.logger.Error("BookAppointment: failed to expire trial for establishment id=%d: %v", est.ID, err)
			return nil, fmt.Errorf("%w: failed to expire trial: %v", ErrInternal, err)
		}
		uc.logger.Info("BookAppointment: establishment id=%d trial expired, moved to pending", est.ID)
		return nil, ErrEstablishmentInactive
	}

	if !est.IsBookable() {
		uc.logger.Warn("BookAppointment: establishment id=%d not bookable (active=%t, subscription=%s)",
			est.ID, est.Active, est.Subscription.Status)
		return nil, ErrEstablishmentInactive
	}

	// 4. Services: all requested ids must resolve to active services of this
	// tenant, otherwise the whole booking is rejected.
	serviceIDs := uniqueIDs(req.ServiceIDs)
	services, err := uc.catalogRepo.GetActiveByIDs(ctx, req.EstablishmentID, serviceIDs)
	if err != nil {
		uc.logger.Error("BookAppointment: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	if len(services) != len(serviceIDs) {
		uc.logger.Warn("BookAppointment: %d of %d requested services resolved", len(services), len(serviceIDs))
		return nil, ErrServiceNotFound
	}

	// 5. Professional must belong to the tenant and be active
	prof, err := uc.professionalRepo.GetByID(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("BookAppointment: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("BookAppointment: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}
	if prof.EstablishmentID != req.EstablishmentID || !prof.Active {
		uc.logger.Warn("BookAppointment: professional id=%d not available for establishment id=%d",
			req.ProfessionalID, req.EstablishmentID)
		return nil, ErrProfessionalNotFound
	}

	// 6. Customer
	if _, err := uc.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("BookAppointment: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("BookAppointment: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	// 7. Capture price and duration at booking time. Promotions are resolved
	// against the current wall clock, not the appointment date.
	totalDuration := 0
	totalPrice := 0.0
	for _, svc := range services {
		totalDuration += svc.DurationMinutes
		totalPrice += svc.PriceAt(now)
	}

	var result *domain.Appointment

	// 8. Slot re-check and insert under a serializable transaction
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Lock the professional's active appointments on that date
		occupied, err := uc.appointmentRepo.ListActiveByProfessionalAndDate(txCtx, req.ProfessionalID, req.Date, true)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to list occupied slots: %v", err)
			return fmt.Errorf("%w: failed to list occupied slots: %v", ErrInternal, err)
		}

		// 8.2. The candidate slot must not fall inside any occupied interval
		for i := range occupied {
			taken, err := slotOccupiedBy(req.TimeSlot, &occupied[i])
			if err != nil {
				return fmt.Errorf("%w: failed to compute occupancy: %v", ErrInternal, err)
			}
			if taken {
				uc.logger.Warn("BookAppointment: slot %s on %s taken by appointment id=%d",
					req.TimeSlot, req.Date.Format(domain.DateFormat), occupied[i].ID)
				return ErrSlotTaken
			}
		}

		// 8.3. Insert; the partial unique index catches a same-slot race the
		// read above could not see
		appt := &domain.Appointment{
			EstablishmentID: req.EstablishmentID,
			CustomerID:      req.CustomerID,
			ProfessionalID:  req.ProfessionalID,
			ServiceIDs:      serviceIDs,
			Date:            req.Date,
			TimeSlot:        req.TimeSlot,
			TotalDuration:   totalDuration,
			TotalPrice:      totalPrice,
			Status:          domain.StatusScheduled,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("BookAppointment: lost slot race for %s on %s",
					req.TimeSlot, req.Date.Format(domain.DateFormat))
				return ErrSlotTaken
			}
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 8.4. Grow the customer's appointment log in the same transaction
		if err := uc.customerRepo.AppendAppointment(txCtx, req.CustomerID, created.ID); err != nil {
			uc.logger.Error("BookAppointment: failed to append customer history: %v", err)
			return fmt.Errorf("%w: failed to append customer history: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// A serializable abort means a concurrent booking won; the loser sees
		// the same conflict as an ordinary lost slot race.
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("BookAppointment: serialization conflict for %s on %s",
				req.TimeSlot, req.Date.Format(domain.DateFormat))
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	uc.logger.Info("BookAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		EstablishmentID: result.EstablishmentID,
		CustomerID:      result.CustomerID,
		ProfessionalID:  result.ProfessionalID,
		ServiceIDs:      result.ServiceIDs,
		Date:            result.Date,
		TimeSlot:        result.TimeSlot,
		TotalDuration:   result.TotalDuration,
		TotalPrice:      result.TotalPrice,
		Status:          result.Status,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// slotOccupiedBy reports whether the candidate slot falls inside the
// appointment's occupied interval [TimeSlot, TimeSlot+TotalDuration).
func slotOccupiedBy(candidate types.TimeString, appt *domain.Appointment) (bool, error) {
	end, err := appt.OccupiedUntil()
	if err != nil {
		return false, err
	}
	return candidate.Minutes() >= appt.TimeSlot.Minutes() && candidate.Minutes() < end.Minutes(), nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
