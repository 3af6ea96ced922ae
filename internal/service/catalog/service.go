package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/barberhub/scheduling-service/internal/domain"
	catalogRepo "github.com/barberhub/scheduling-service/internal/infra/storage/catalog"
	establishmentRepo "github.com/barberhub/scheduling-service/internal/infra/storage/establishment"
	"github.com/barberhub/scheduling-service/internal/service/catalog/models"
)

// Service manages the tenant's service catalog and its promotions.
type Service struct {
	serviceRepo       ServiceRepository
	establishmentRepo EstablishmentRepository
	timeProvider      TimeProvider
	logger            Logger
}

// NewService creates a new catalog service.
func NewService(
	serviceRepo ServiceRepository,
	establishmentRepo EstablishmentRepository,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo:       serviceRepo,
		establishmentRepo: establishmentRepo,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// CreateService adds an offering to the catalog.
func (s *Service) CreateService(ctx context.Context, req *models.CreateServiceRequest, actor models.Actor) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: establishment=%d, name=%s by user=%d", req.EstablishmentID, req.Name, actor.UserID)

	if err := s.checkManagedEstablishment(ctx, req.EstablishmentID, actor); err != nil {
		return nil, err
	}

	if req.Name == "" || req.Price <= 0 || req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: name, positive price and positive duration are required", ErrInvalidInput)
	}

	created, err := s.serviceRepo.Create(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: created service id=%d for establishment=%d", created.ID, req.EstablishmentID)
	return models.FromDomainService(created), nil
}

// List returns the tenant's catalog.
func (s *Service) List(ctx context.Context, establishmentID int64, onlyActive bool) (*models.ServiceListResponse, error) {
	svcs, err := s.serviceRepo.ListByEstablishment(ctx, establishmentID, onlyActive)
	if err != nil {
		s.logger.Error("List: repository error for establishment=%d: %v", establishmentID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainServiceList(svcs), nil
}

// CreatePromotion opens a discounted window on one service. The tenant is
// derived from the service row; the discounted price must stay strictly below
// the base price and the window must be non-empty.
func (s *Service) CreatePromotion(ctx context.Context, req *models.CreatePromotionRequest, actor models.Actor) (*models.ServiceResponse, error) {
	s.logger.Info("CreatePromotion: service=%d by user=%d", req.ServiceID, actor.UserID)

	svc, err := s.getService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	if err := s.checkManagedEstablishment(ctx, svc.EstablishmentID, actor); err != nil {
		return nil, err
	}

	if req.DiscountedPrice <= 0 || req.DiscountedPrice >= svc.Price {
		s.logger.Warn("CreatePromotion: discounted price %.2f against base %.2f refused", req.DiscountedPrice, svc.Price)
		return nil, ErrInvalidPromotionPrice
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidPromotionWindow
	}

	promo := domain.Promotion{
		Active:          true,
		DiscountedPrice: req.DiscountedPrice,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Description:     req.Description,
	}

	if err := s.serviceRepo.SetPromotion(ctx, svc.ID, promo); err != nil {
		s.logger.Error("CreatePromotion: repository error for service=%d: %v", svc.ID, err)
		return nil, fmt.Errorf("%w: CreatePromotion - repository error: %v", ErrInternal, err)
	}

	svc.Promotion = &promo
	s.logger.Info("CreatePromotion: service=%d discounted to %.2f until %s",
		svc.ID, promo.DiscountedPrice, promo.EndDate.Format(domain.DateFormat))
	return models.FromDomainService(svc), nil
}

// EndPromotion closes the service's promotion ahead of its window.
func (s *Service) EndPromotion(ctx context.Context, serviceID int64, actor models.Actor) (*models.ServiceResponse, error) {
	s.logger.Info("EndPromotion: service=%d by user=%d", serviceID, actor.UserID)

	svc, err := s.getService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	if err := s.checkManagedEstablishment(ctx, svc.EstablishmentID, actor); err != nil {
		return nil, err
	}

	if svc.Promotion == nil || !svc.Promotion.Active {
		return nil, ErrNoPromotion
	}

	if err := s.serviceRepo.ClearPromotion(ctx, svc.ID); err != nil {
		s.logger.Error("EndPromotion: repository error for service=%d: %v", svc.ID, err)
		return nil, fmt.Errorf("%w: EndPromotion - repository error: %v", ErrInternal, err)
	}

	svc.Promotion.Active = false
	s.logger.Info("EndPromotion: service=%d promotion ended", svc.ID)
	return models.FromDomainService(svc), nil
}

func (s *Service) getService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return svc, nil
}

func (s *Service) checkManagedEstablishment(ctx context.Context, establishmentID int64, actor models.Actor) error {
	if !actor.Role.Can(domain.ActionManageCatalog) {
		return ErrAccessDenied
	}
	if actor.Role != domain.RoleAdmin && !actor.SameEstablishment(establishmentID) {
		s.logger.Warn("user=%d not bound to establishment=%d", actor.UserID, establishmentID)
		return ErrAccessDenied
	}

	est, err := s.establishmentRepo.GetByID(ctx, establishmentID)
	if err != nil {
		if errors.Is(err, establishmentRepo.ErrEstablishmentNotFound) {
			return ErrEstablishmentNotFound
		}
		s.logger.Error("repository error for establishment id=%d: %v", establishmentID, err)
		return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	// An expired trial flips to pending on first touch; the mutation that
	// discovered it is rejected like any other inactive tenant.
	if est.Subscription.IsTrialExpired(s.timeProvider.Now()) {
		if err := s.establishmentRepo.UpdateSubscriptionStatus(ctx, est.ID, domain.SubscriptionPending); err != nil {
			s.logger.Error("failed to expire trial for establishment id=%d: %v", est.ID, err)
			return fmt.Errorf("%w: failed to expire trial: %v", ErrInternal, err)
		}
		s.logger.Info("establishment id=%d trial expired, moved to pending", est.ID)
		return ErrEstablishmentInactive
	}
	if !est.IsBookable() {
		s.logger.Warn("establishment id=%d not active (active=%t, subscription=%s)",
			est.ID, est.Active, est.Subscription.Status)
		return ErrEstablishmentInactive
	}

	return nil
}
