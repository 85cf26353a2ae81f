// Package taxonomy manages the pet type and service type lists sitters and bookings refer to.
package taxonomy

import (
	"context"
	"errors"
	"strings"

	"petsitter/database"
	bookingRepo "petsitter/database/repository/booking"
	taxonomyRepo "petsitter/database/repository/taxonomy"
	"petsitter/models"
	"petsitter/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UnknownName is shown for a taxonomy id that no longer resolves.
const UnknownName = "ไม่ระบุ"

type TaxonomyService interface {
	CreatePetType(ctx context.Context, in models.PetType) (*models.PetType, error)
	ListPetTypes(ctx context.Context) ([]models.PetType, error)
	GetPetType(ctx context.Context, id string) (*models.PetType, error)
	UpdatePetType(ctx context.Context, id string, in models.PetType) (*models.PetType, error)
	DeletePetType(ctx context.Context, id string) error

	CreateServiceType(ctx context.Context, in models.ServiceType) (*models.ServiceType, error)
	ListServiceTypes(ctx context.Context) ([]models.ServiceType, error)
	GetServiceType(ctx context.Context, id string) (*models.ServiceType, error)
	UpdateServiceType(ctx context.Context, id string, in models.ServiceType) (*models.ServiceType, error)
	DeleteServiceType(ctx context.Context, id string) error

	PetTypeName(ctx context.Context, id string) (string, error)
	ServiceTypeName(ctx context.Context, id string) (string, error)
}

// BookingReferences reports whether bookings still use a taxonomy id.
type BookingReferences interface {
	HasReference(ctx context.Context, field, id string) (bool, error)
}

// ServiceReferences reports whether sitter services still use a taxonomy id.
type ServiceReferences interface {
	HasServiceReference(ctx context.Context, field, id string) (bool, error)
}

// DefaultTaxonomyService refuses to delete entries that are still referenced.
type DefaultTaxonomyService struct {
	Repo     taxonomyRepo.TaxonomyRepository
	Bookings BookingReferences
	Services ServiceReferences
	Logger   *zap.Logger
}

func notFoundOr(err error, what, msg string) error {
	if errors.Is(err, database.ErrNotFound) {
		return utils.NewNotFoundError(what + " not found")
	}
	return utils.NewUnavailableError(msg, err)
}

// ensureUnreferenced fails with Conflict while a booking or sitter service uses id through field.
func (s *DefaultTaxonomyService) ensureUnreferenced(ctx context.Context, field, id, what string) error {
	used, err := s.Bookings.HasReference(ctx, field, id)
	if err != nil {
		return utils.NewUnavailableError("failed to check booking references", err)
	}
	if !used {
		used, err = s.Services.HasServiceReference(ctx, field, id)
		if err != nil {
			return utils.NewUnavailableError("failed to check sitter service references", err)
		}
	}
	if used {
		return utils.NewConflictError(what + " is still used by bookings or sitter services")
	}
	return nil
}

// deleteRestricted runs del only while id is unreferenced, then checks again and runs restore
// when a booking or sitter service picked up id in between. Creates re-check the other way,
// so one of the two sides always sees the other.
func (s *DefaultTaxonomyService) deleteRestricted(ctx context.Context, field, id, what string, del, restore func() error) error {
	if err := s.ensureUnreferenced(ctx, field, id, what); err != nil {
		return err
	}
	if err := del(); err != nil {
		return notFoundOr(err, what, "failed to delete "+strings.ToLower(what))
	}
	if err := s.ensureUnreferenced(ctx, field, id, what); err != nil {
		if rerr := restore(); rerr != nil {
			s.Logger.Error("failed to restore referenced taxonomy entry",
				zap.String("field", field),
				zap.String("id", id),
				zap.Error(rerr),
			)
		}
		return err
	}
	return nil
}

func (s *DefaultTaxonomyService) CreatePetType(ctx context.Context, in models.PetType) (*models.PetType, error) {
	pt := &models.PetType{
		ID:          uuid.New().String(),
		TypeName:    strings.TrimSpace(in.TypeName),
		Description: strings.TrimSpace(in.Description),
	}
	if pt.TypeName == "" {
		return nil, utils.NewValidationError("type_name is required")
	}
	if err := s.Repo.CreatePetType(ctx, pt); err != nil {
		return nil, utils.NewUnavailableError("failed to create pet type", err)
	}
	return pt, nil
}

func (s *DefaultTaxonomyService) ListPetTypes(ctx context.Context) ([]models.PetType, error) {
	types, err := s.Repo.ListPetTypes(ctx)
	if err != nil {
		return nil, utils.NewUnavailableError("failed to list pet types", err)
	}
	return types, nil
}

func (s *DefaultTaxonomyService) GetPetType(ctx context.Context, id string) (*models.PetType, error) {
	pt, err := s.Repo.GetPetType(ctx, id)
	if err != nil {
		return nil, utils.NewUnavailableError("failed to load pet type", err)
	}
	if pt == nil {
		return nil, utils.NewNotFoundError("Pet type not found")
	}
	return pt, nil
}

func (s *DefaultTaxonomyService) UpdatePetType(ctx context.Context, id string, in models.PetType) (*models.PetType, error) {
	pt := &models.PetType{
		ID:          id,
		TypeName:    strings.TrimSpace(in.TypeName),
		Description: strings.TrimSpace(in.Description),
	}
	if pt.TypeName == "" {
		return nil, utils.NewValidationError("type_name is required")
	}
	if err := s.Repo.UpdatePetType(ctx, pt); err != nil {
		return nil, notFoundOr(err, "Pet type", "failed to update pet type")
	}
	return pt, nil
}

func (s *DefaultTaxonomyService) DeletePetType(ctx context.Context, id string) error {
	pt, err := s.Repo.GetPetType(ctx, id)
	if err != nil {
		return utils.NewUnavailableError("failed to load pet type", err)
	}
	if pt == nil {
		return utils.NewNotFoundError("Pet type not found")
	}
	err = s.deleteRestricted(ctx, bookingRepo.FieldPetTypeID, id, "Pet type",
		func() error { return s.Repo.DeletePetType(ctx, id) },
		func() error { return s.Repo.CreatePetType(ctx, pt) },
	)
	if err != nil {
		return err
	}
	s.Logger.Info("pet type deleted", zap.String("petTypeID", id))
	return nil
}

func (s *DefaultTaxonomyService) CreateServiceType(ctx context.Context, in models.ServiceType) (*models.ServiceType, error) {
	st := &models.ServiceType{
		ID:              uuid.New().String(),
		ShortName:       strings.TrimSpace(in.ShortName),
		FullDescription: strings.TrimSpace(in.FullDescription),
	}
	if st.ShortName == "" {
		return nil, utils.NewValidationError("short_name is required")
	}
	if err := s.Repo.CreateServiceType(ctx, st); err != nil {
		return nil, utils.NewUnavailableError("failed to create service type", err)
	}
	return st, nil
}

func (s *DefaultTaxonomyService) ListServiceTypes(ctx context.Context) ([]models.ServiceType, error) {
	types, err := s.Repo.ListServiceTypes(ctx)
	if err != nil {
		return nil, utils.NewUnavailableError("failed to list service types", err)
	}
	return types, nil
}

func (s *DefaultTaxonomyService) GetServiceType(ctx context.Context, id string) (*models.ServiceType, error) {
	st, err := s.Repo.GetServiceType(ctx, id)
	if err != nil {
		return nil, utils.NewUnavailableError("failed to load service type", err)
	}
	if st == nil {
		return nil, utils.NewNotFoundError("Service type not found")
	}
	return st, nil
}

func (s *DefaultTaxonomyService) UpdateServiceType(ctx context.Context, id string, in models.ServiceType) (*models.ServiceType, error) {
	st := &models.ServiceType{
		ID:              id,
		ShortName:       strings.TrimSpace(in.ShortName),
		FullDescription: strings.TrimSpace(in.FullDescription),
	}
	if st.ShortName == "" {
		return nil, utils.NewValidationError("short_name is required")
	}
	if err := s.Repo.UpdateServiceType(ctx, st); err != nil {
		return nil, notFoundOr(err, "Service type", "failed to update service type")
	}
	return st, nil
}

func (s *DefaultTaxonomyService) DeleteServiceType(ctx context.Context, id string) error {
	st, err := s.Repo.GetServiceType(ctx, id)
	if err != nil {
		return utils.NewUnavailableError("failed to load service type", err)
	}
	if st == nil {
		return utils.NewNotFoundError("Service type not found")
	}
	err = s.deleteRestricted(ctx, bookingRepo.FieldServiceTypeID, id, "Service type",
		func() error { return s.Repo.DeleteServiceType(ctx, id) },
		func() error { return s.Repo.CreateServiceType(ctx, st) },
	)
	if err != nil {
		return err
	}
	s.Logger.Info("service type deleted", zap.String("serviceTypeID", id))
	return nil
}

// PetTypeName resolves id to its display name, or UnknownName.
func (s *DefaultTaxonomyService) PetTypeName(ctx context.Context, id string) (string, error) {
	pt, err := s.Repo.GetPetType(ctx, id)
	if err != nil {
		return "", utils.NewUnavailableError("failed to load pet type", err)
	}
	if pt == nil {
		return UnknownName, nil
	}
	return pt.TypeName, nil
}

// ServiceTypeName resolves id to its short name, or UnknownName.
func (s *DefaultTaxonomyService) ServiceTypeName(ctx context.Context, id string) (string, error) {
	st, err := s.Repo.GetServiceType(ctx, id)
	if err != nil {
		return "", utils.NewUnavailableError("failed to load service type", err)
	}
	if st == nil {
		return UnknownName, nil
	}
	return st.ShortName, nil
}
