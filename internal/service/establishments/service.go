package establishments

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosimple/slug"

	"github.com/barberhub/scheduling-service/internal/domain"
	establishmentRepo "github.com/barberhub/scheduling-service/internal/infra/storage/establishment"
	"github.com/barberhub/scheduling-service/internal/service/establishments/models"
)

// Service manages tenant registration and the public tenant view.
type Service struct {
	establishmentRepo EstablishmentRepository
	serviceRepo       ServiceRepository
	professionalRepo  ProfessionalRepository
	timeProvider      TimeProvider
	logger            Logger
}

// NewService creates a new establishment service.
func NewService(
	establishmentRepo EstablishmentRepository,
	serviceRepo ServiceRepository,
	professionalRepo ProfessionalRepository,
	logger Logger,
) *Service {
	return &Service{
		establishmentRepo: establishmentRepo,
		serviceRepo:       serviceRepo,
		professionalRepo:  professionalRepo,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// Create registers a new tenant owned by the caller. New tenants start on a
// one-month trial of the requested plan (basic when omitted); the slug is
// normalized from the name unless given explicitly.
func (s *Service) Create(ctx context.Context, req *models.CreateEstablishmentRequest, actor models.Actor) (*models.EstablishmentResponse, error) {
	s.logger.Info("Create: name=%s by user=%d", req.Name, actor.UserID)

	if actor.Role != domain.RoleProprietor && actor.Role != domain.RoleAdmin {
		return nil, ErrAccessDenied
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	plan := domain.PlanBasic
	if req.Plan != "" {
		plan = domain.Plan(req.Plan)
		if !plan.Valid() {
			return nil, fmt.Errorf("%w: unknown plan %q", ErrInvalidInput, req.Plan)
		}
	}

	slugValue := req.Slug
	if slugValue == "" {
		slugValue = slug.Make(req.Name)
	}
	if !domain.ValidSlug(slugValue) {
		return nil, fmt.Errorf("%w: slug must match [a-z0-9-]+", ErrInvalidInput)
	}

	notice := req.CancellationNoticeHours
	if notice <= 0 {
		notice = domain.DefaultCancellationNoticeHours
	}

	now := s.timeProvider.Now()
	est := &domain.Establishment{
		Name:                    req.Name,
		Slug:                    slugValue,
		OwnerID:                 actor.UserID,
		CancellationNoticeHours: notice,
		Active:                  true,
		Subscription: domain.Subscription{
			Plan:        plan,
			Status:      domain.SubscriptionTrial,
			StartDate:   now,
			RenewalDate: now.AddDate(0, 1, 0),
		},
	}

	created, err := s.establishmentRepo.Create(ctx, est)
	if err != nil {
		if errors.Is(err, establishmentRepo.ErrSlugTaken) {
			s.logger.Warn("Create: slug=%s already taken", slugValue)
			return nil, ErrSlugTaken
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: established id=%d slug=%s on %s trial", created.ID, created.Slug, plan)
	return models.FromDomain(created, nil, nil, now), nil
}

// GetByID returns the public tenant view with its active catalog and staff.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.EstablishmentResponse, error) {
	est, err := s.establishmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapGetError(id, err)
	}
	return s.assemble(ctx, est)
}

// GetBySlug returns the public tenant view looked up by URL slug.
func (s *Service) GetBySlug(ctx context.Context, slugValue string) (*models.EstablishmentResponse, error) {
	est, err := s.establishmentRepo.GetBySlug(ctx, slugValue)
	if err != nil {
		if errors.Is(err, establishmentRepo.ErrEstablishmentNotFound) {
			s.logger.Warn("GetBySlug: slug=%s not found", slugValue)
			return nil, ErrEstablishmentNotFound
		}
		s.logger.Error("GetBySlug: repository error for slug=%s: %v", slugValue, err)
		return nil, fmt.Errorf("%w: GetBySlug - repository error: %v", ErrInternal, err)
	}
	return s.assemble(ctx, est)
}

func (s *Service) assemble(ctx context.Context, est *domain.Establishment) (*models.EstablishmentResponse, error) {
	services, err := s.serviceRepo.ListByEstablishment(ctx, est.ID, true)
	if err != nil {
		s.logger.Error("assemble: failed to list services for establishment=%d: %v", est.ID, err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	professionals, err := s.professionalRepo.ListByEstablishment(ctx, est.ID, true)
	if err != nil {
		s.logger.Error("assemble: failed to list professionals for establishment=%d: %v", est.ID, err)
		return nil, fmt.Errorf("%w: failed to list professionals: %v", ErrInternal, err)
	}

	return models.FromDomain(est, services, professionals, s.timeProvider.Now()), nil
}

func (s *Service) mapGetError(id int64, err error) error {
	if errors.Is(err, establishmentRepo.ErrEstablishmentNotFound) {
		s.logger.Warn("establishment id=%d not found", id)
		return ErrEstablishmentNotFound
	}
	s.logger.Error("repository error for establishment id=%d: %v", id, err)
	return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
}
