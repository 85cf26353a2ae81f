package sitter

import (
	"context"
	"errors"
	"strings"

	"petsitter/database"
	"petsitter/models"
	"petsitter/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultSitterService) AddService(ctx context.Context, sitterID string, in models.SitterService) (*models.SitterServiceView, error) {
	svc := &models.SitterService{
		ID:            uuid.New().String(),
		SitterID:      sitterID,
		ServiceTypeID: strings.TrimSpace(in.ServiceTypeID),
		PetTypeID:     strings.TrimSpace(in.PetTypeID),
		JobName:       strings.TrimSpace(in.JobName),
		Price:         utils.RoundCurrency(in.Price),
	}
	if svc.JobName == "" {
		return nil, utils.NewValidationError("job_name is required")
	}
	if svc.Price <= 0 {
		return nil, utils.NewValidationError("price must be greater than 0")
	}
	if svc.ServiceTypeID == "" || svc.PetTypeID == "" {
		return nil, utils.NewValidationError("service_type_id and pet_type_id are required")
	}
	if _, err := s.Taxonomy.GetServiceType(ctx, svc.ServiceTypeID); err != nil {
		return nil, err
	}
	if _, err := s.Taxonomy.GetPetType(ctx, svc.PetTypeID); err != nil {
		return nil, err
	}

	if err := s.Repo.CreateService(ctx, svc); err != nil {
		return nil, utils.NewUnavailableError("failed to create sitter service", err)
	}
	if err := s.ensureTaxonomyStillExists(ctx, svc); err != nil {
		if derr := s.Repo.DeleteService(ctx, svc.ID, sitterID); derr != nil && !errors.Is(derr, database.ErrNotFound) {
			s.Logger.Error("failed to remove sitter service with deleted taxonomy", zap.String("serviceID", svc.ID), zap.Error(derr))
		}
		return nil, err
	}
	s.Logger.Info("sitter service added", zap.String("sitterID", sitterID), zap.String("serviceID", svc.ID))
	return s.view(ctx, *svc)
}

// ensureTaxonomyStillExists catches a pet or service type deleted while svc was being inserted.
func (s *DefaultSitterService) ensureTaxonomyStillExists(ctx context.Context, svc *models.SitterService) error {
	if _, err := s.Taxonomy.GetServiceType(ctx, svc.ServiceTypeID); err != nil {
		if utils.IsKind(err, utils.KindNotFound) {
			return utils.NewConflictError("Service type was deleted")
		}
		return err
	}
	if _, err := s.Taxonomy.GetPetType(ctx, svc.PetTypeID); err != nil {
		if utils.IsKind(err, utils.KindNotFound) {
			return utils.NewConflictError("Pet type was deleted")
		}
		return err
	}
	return nil
}

// ListServices returns the sitter's offerings with taxonomy names resolved.
func (s *DefaultSitterService) ListServices(ctx context.Context, sitterID string) ([]models.SitterServiceView, error) {
	services, err := s.Repo.ListServices(ctx, sitterID)
	if err != nil {
		return nil, utils.NewUnavailableError("failed to list sitter services", err)
	}
	views := make([]models.SitterServiceView, 0, len(services))
	for _, svc := range services {
		v, err := s.view(ctx, svc)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func (s *DefaultSitterService) view(ctx context.Context, svc models.SitterService) (*models.SitterServiceView, error) {
	serviceName, err := s.Taxonomy.ServiceTypeName(ctx, svc.ServiceTypeID)
	if err != nil {
		return nil, err
	}
	petName, err := s.Taxonomy.PetTypeName(ctx, svc.PetTypeID)
	if err != nil {
		return nil, err
	}
	return &models.SitterServiceView{SitterService: svc, ServiceTypeName: serviceName, PetTypeName: petName}, nil
}

func (s *DefaultSitterService) DeleteService(ctx context.Context, id, sitterID string) error {
	if err := s.Repo.DeleteService(ctx, id, sitterID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.NewNotFoundError("Sitter service not found")
		}
		return utils.NewUnavailableError("failed to delete sitter service", err)
	}
	return nil
}
