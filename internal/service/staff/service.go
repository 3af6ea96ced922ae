package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/barberhub/scheduling-service/internal/domain"
	establishmentRepo "github.com/barberhub/scheduling-service/internal/infra/storage/establishment"
	professionalRepo "github.com/barberhub/scheduling-service/internal/infra/storage/professional"
	"github.com/barberhub/scheduling-service/internal/service/staff/models"
	"github.com/barberhub/scheduling-service/pkg/txmanager"
)

// Service manages the tenant's staff under the plan's professional quota.
type Service struct {
	professionalRepo  ProfessionalRepository
	establishmentRepo EstablishmentRepository
	appointmentRepo   AppointmentRepository
	txManager         TransactionManager
	timeProvider      TimeProvider
	logger            Logger
}

// NewService creates a new staff service.
func NewService(
	professionalRepo ProfessionalRepository,
	establishmentRepo EstablishmentRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		professionalRepo:  professionalRepo,
		establishmentRepo: establishmentRepo,
		appointmentRepo:   appointmentRepo,
		txManager:         txManager,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// AddProfessional registers a staff member. The quota check and the insert
// run in a serializable transaction so two concurrent adds at the ceiling
// cannot both pass.
func (s *Service) AddProfessional(ctx context.Context, req *models.AddProfessionalRequest, actor models.Actor) (*models.ProfessionalResponse, error) {
	s.logger.Info("AddProfessional: establishment=%d, email=%s by user=%d", req.EstablishmentID, req.Email, actor.UserID)

	est, err := s.getManagedEstablishment(ctx, req.EstablishmentID, actor)
	if err != nil {
		return nil, err
	}

	if req.Name == "" || req.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}

	prof, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("AddProfessional: invalid working template: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var created *domain.Professional
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		activeCount, err := s.professionalRepo.CountActive(txCtx, est.ID)
		if err != nil {
			s.logger.Error("AddProfessional: failed to count professionals for establishment=%d: %v", est.ID, err)
			return fmt.Errorf("%w: failed to count professionals: %v", ErrInternal, err)
		}
		if !est.Subscription.Plan.CanAddProfessional(activeCount) {
			limit, _ := est.Subscription.Plan.ProfessionalLimit()
			s.logger.Warn("AddProfessional: establishment=%d at quota %d/%d on plan=%s",
				est.ID, activeCount, limit, est.Subscription.Plan)
			return ErrQuotaExceeded
		}

		created, err = s.professionalRepo.Create(txCtx, prof)
		if err != nil {
			if errors.Is(err, professionalRepo.ErrEmailTaken) {
				s.logger.Warn("AddProfessional: email=%s already registered", req.Email)
				return ErrEmailTaken
			}
			s.logger.Error("AddProfessional: repository error: %v", err)
			return fmt.Errorf("%w: AddProfessional - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		// A serializable abort means a concurrent add claimed the seat first.
		if errors.Is(err, txmanager.ErrSerialization) {
			s.logger.Warn("AddProfessional: serialization conflict for establishment=%d", est.ID)
			return nil, ErrQuotaExceeded
		}
		return nil, err
	}

	s.logger.Info("AddProfessional: created professional id=%d for establishment=%d", created.ID, est.ID)
	return models.FromDomainProfessional(created), nil
}

// RemoveProfessional logically removes a staff member. Refused while future
// slot-occupying appointments exist; those must be cancelled or reassigned
// first.
func (s *Service) RemoveProfessional(ctx context.Context, establishmentID, professionalID int64, actor models.Actor) error {
	s.logger.Info("RemoveProfessional: professional=%d of establishment=%d by user=%d",
		professionalID, establishmentID, actor.UserID)

	if _, err := s.getManagedEstablishment(ctx, establishmentID, actor); err != nil {
		return err
	}

	prof, err := s.professionalRepo.GetByID(ctx, professionalID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
			return ErrProfessionalNotFound
		}
		s.logger.Error("RemoveProfessional: repository error for professional=%d: %v", professionalID, err)
		return fmt.Errorf("%w: RemoveProfessional - repository error: %v", ErrInternal, err)
	}
	if prof.EstablishmentID != establishmentID {
		return ErrProfessionalNotFound
	}
	if !prof.Active {
		return ErrAlreadyInactive
	}

	hasFuture, err := s.hasFutureAppointments(ctx, prof)
	if err != nil {
		return err
	}
	if hasFuture {
		s.logger.Warn("RemoveProfessional: professional=%d has future appointments", professionalID)
		return ErrHasFutureAppointments
	}

	if err := s.professionalRepo.Deactivate(ctx, professionalID); err != nil {
		s.logger.Error("RemoveProfessional: failed to deactivate professional=%d: %v", professionalID, err)
		return fmt.Errorf("%w: RemoveProfessional - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveProfessional: professional=%d deactivated", professionalID)
	return nil
}

// ListProfessionals returns the tenant's staff. Staff see everyone; the
// public listing upstream only requests active members.
func (s *Service) ListProfessionals(ctx context.Context, establishmentID int64, onlyActive bool) (*models.ProfessionalListResponse, error) {
	profs, err := s.professionalRepo.ListByEstablishment(ctx, establishmentID, onlyActive)
	if err != nil {
		s.logger.Error("ListProfessionals: repository error for establishment=%d: %v", establishmentID, err)
		return nil, fmt.Errorf("%w: ListProfessionals - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainProfessionalList(profs), nil
}

func (s *Service) hasFutureAppointments(ctx context.Context, prof *domain.Professional) (bool, error) {
	filter := domain.AppointmentsFilter{
		EstablishmentID: prof.EstablishmentID,
		ProfessionalID:  &prof.ID,
		OnlyActive:      true,
	}

	appts, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("hasFutureAppointments: repository error for professional=%d: %v", prof.ID, err)
		return false, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	for i := range appts {
		if appts[i].StartsAt().After(now) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) getManagedEstablishment(ctx context.Context, establishmentID int64, actor models.Actor) (*domain.Establishment, error) {
	if !actor.Role.Can(domain.ActionManageStaff) {
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

	// An expired trial flips to pending on first touch; the mutation that
	// discovered it is rejected like any other inactive tenant.
	if est.Subscription.IsTrialExpired(s.timeProvider.Now()) {
		if err := s.establishmentRepo.UpdateSubscriptionStatus(ctx, est.ID, domain.SubscriptionPending); err != nil {
			s.logger.Error("failed to expire trial for establishment id=%d: %v", est.ID, err)
			return nil, fmt.Errorf("%w: failed to expire trial: %v", ErrInternal, err)
		}
		s.logger.Info("establishment id=%d trial expired, moved to pending", est.ID)
		return nil, ErrEstablishmentInactive
	}
	if !est.IsBookable() {
		s.logger.Warn("establishment id=%d not active (active=%t, subscription=%s)",
			est.ID, est.Active, est.Subscription.Status)
		return nil, ErrEstablishmentInactive
	}

	return est, nil
}
