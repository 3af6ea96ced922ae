package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/barberhub/scheduling-service/internal/domain"
	appointmentRepo "github.com/barberhub/scheduling-service/internal/infra/storage/appointment"
	"github.com/barberhub/scheduling-service/internal/service/appointments/models"
)

// Service drives the appointment lifecycle after booking: reads, status
// transitions and ratings.
type Service struct {
	appointmentRepo   AppointmentRepository
	establishmentRepo EstablishmentRepository
	timeProvider      TimeProvider
	logger            Logger
}

// NewService creates a new appointment lifecycle service.
func NewService(
	appointmentRepo AppointmentRepository,
	establishmentRepo EstablishmentRepository,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo:   appointmentRepo,
		establishmentRepo: establishmentRepo,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// GetByID fetches one appointment. Customers see their own appointments;
// staff see their tenant's.
func (s *Service) GetByID(ctx context.Context, id int64, actor models.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, actor.UserID)

	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkViewAccess(appt, actor); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", actor.UserID, id)
		return nil, err
	}

	return models.FromDomainAppointment(appt), nil
}

// List returns establishment-scoped appointments. Staff only; customers use
// their own history instead.
func (s *Service) List(ctx context.Context, req *models.ListRequest, actor models.Actor) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for establishment=%d, user=%d", req.EstablishmentID, actor.UserID)

	if !actor.Role.Can(domain.ActionViewAppointment) {
		return nil, ErrAccessDenied
	}
	if actor.Role != domain.RoleAdmin && !actor.SameEstablishment(req.EstablishmentID) {
		s.logger.Warn("List: user=%d not bound to establishment=%d", actor.UserID, req.EstablishmentID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for establishment=%d: %v", req.EstablishmentID, err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	appts, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for establishment=%d: %v", req.EstablishmentID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments for establishment=%d", len(appts), req.EstablishmentID)
	return models.FromDomainAppointmentList(appts), nil
}

// ListForCustomer returns the caller's own appointments across tenants of one
// establishment scope.
func (s *Service) ListForCustomer(ctx context.Context, establishmentID int64, actor models.Actor) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListForCustomer: fetching appointments for customer=%d", actor.UserID)

	filter := domain.AppointmentsFilter{
		EstablishmentID: establishmentID,
		CustomerID:      &actor.UserID,
	}

	appts, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListForCustomer: repository error for customer=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: ListForCustomer - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(appts), nil
}

// Transition moves an appointment through its lifecycle. Customers may only
// cancel their own appointments, and only outside the tenant's notice window;
// staff transitions are free of the window. Confirmations and cancellations
// append a pending notification intent to the appointment's log.
func (s *Service) Transition(ctx context.Context, req *models.TransitionRequest, actor models.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("Transition: appointment id=%d to status=%s by user=%d", req.AppointmentID, req.Status, actor.UserID)

	if !actor.Role.Can(domain.ActionTransitionAppointment) {
		return nil, ErrAccessDenied
	}

	target, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("Transition: invalid status=%s", req.Status)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	appt, err := s.getAppointment(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	isOwningCustomer := actor.Role == domain.RoleCustomer && appt.CustomerID == actor.UserID
	isStaff := actor.Role == domain.RoleAdmin ||
		((actor.Role == domain.RoleProprietor || actor.Role == domain.RoleProfessional) && actor.SameEstablishment(appt.EstablishmentID))

	switch {
	case isStaff:
	case isOwningCustomer:
		// Customers hold no lifecycle power beyond cancelling
		if target != domain.StatusCancelled {
			s.logger.Warn("Transition: customer=%d attempted %s on appointment id=%d", actor.UserID, target, appt.ID)
			return nil, ErrAccessDenied
		}
	default:
		s.logger.Warn("Transition: access denied for user=%d to appointment id=%d", actor.UserID, appt.ID)
		return nil, ErrAccessDenied
	}

	if !appt.Status.CanTransitionTo(target) {
		s.logger.Warn("Transition: %s -> %s forbidden for appointment id=%d", appt.Status, target, appt.ID)
		return nil, ErrInvalidTransition
	}

	// The notice window binds only customer-initiated cancellations
	if isOwningCustomer && target == domain.StatusCancelled {
		if err := s.checkCancellationWindow(ctx, appt); err != nil {
			return nil, err
		}
	}

	notification := notificationForTransition(target, s.timeProvider.Now())

	if err := s.appointmentRepo.UpdateStatus(ctx, appt.ID, target, notification); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Transition: repository error for appointment id=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Transition: appointment id=%d moved %s -> %s", appt.ID, appt.Status, target)

	updated, err := s.getAppointment(ctx, appt.ID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointment(updated), nil
}

// Rate attaches the owning customer's one-time rating to a completed
// appointment.
func (s *Service) Rate(ctx context.Context, req *models.RateRequest, actor models.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("Rate: appointment id=%d by user=%d, score=%d", req.AppointmentID, actor.UserID, req.Score)

	if !actor.Role.Can(domain.ActionRateAppointment) {
		return nil, ErrAccessDenied
	}

	if req.Score < domain.MinRatingScore || req.Score > domain.MaxRatingScore {
		s.logger.Warn("Rate: invalid score=%d for appointment id=%d", req.Score, req.AppointmentID)
		return nil, ErrInvalidRating
	}

	appt, err := s.getAppointment(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	if appt.CustomerID != actor.UserID {
		s.logger.Warn("Rate: user=%d is not the owner of appointment id=%d", actor.UserID, appt.ID)
		return nil, ErrAccessDenied
	}
	if appt.Status != domain.StatusCompleted {
		s.logger.Warn("Rate: appointment id=%d is %s, not completed", appt.ID, appt.Status)
		return nil, ErrNotCompleted
	}
	if appt.Rating != nil {
		s.logger.Warn("Rate: appointment id=%d already rated", appt.ID)
		return nil, ErrAlreadyRated
	}

	rating := domain.Rating{Score: req.Score, Comment: req.Comment}
	if err := s.appointmentRepo.SetRating(ctx, appt.ID, rating); err != nil {
		s.logger.Error("Rate: repository error for appointment id=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: Rate - repository error: %v", ErrInternal, err)
	}

	appt.Rating = &rating
	s.logger.Info("Rate: appointment id=%d rated %d", appt.ID, req.Score)
	return models.FromDomainAppointment(appt), nil
}

func (s *Service) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return appt, nil
}

func (s *Service) checkViewAccess(appt *domain.Appointment, actor models.Actor) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleCustomer:
		if appt.CustomerID == actor.UserID {
			return nil
		}
	case domain.RoleProprietor, domain.RoleProfessional:
		if actor.SameEstablishment(appt.EstablishmentID) {
			return nil
		}
	}
	return ErrAccessDenied
}

// checkCancellationWindow enforces the tenant's minimum notice, in hours,
// before the appointment's start.
func (s *Service) checkCancellationWindow(ctx context.Context, appt *domain.Appointment) error {
	est, err := s.establishmentRepo.GetByID(ctx, appt.EstablishmentID)
	if err != nil {
		s.logger.Error("checkCancellationWindow: failed to get establishment id=%d: %v", appt.EstablishmentID, err)
		return fmt.Errorf("%w: failed to get establishment: %v", ErrInternal, err)
	}

	notice := est.CancellationNoticeHours
	if notice <= 0 {
		notice = domain.DefaultCancellationNoticeHours
	}

	now := s.timeProvider.Now()
	deadline := appt.StartsAt().Add(-time.Duration(notice) * time.Hour)
	if now.After(deadline) {
		s.logger.Warn("checkCancellationWindow: appointment id=%d starts %s, deadline %s passed",
			appt.ID, appt.StartsAt(), deadline)
		return ErrCancellationTooLate
	}
	return nil
}

// notificationForTransition records a pending email intent for the
// transitions a customer would be told about.
func notificationForTransition(target domain.AppointmentStatus, now time.Time) *domain.Notification {
	switch target {
	case domain.StatusConfirmed, domain.StatusCancelled:
		return &domain.Notification{
			Type:   domain.NotificationEmail,
			Status: domain.NotificationPending,
			SentAt: now,
		}
	}
	return nil
}
