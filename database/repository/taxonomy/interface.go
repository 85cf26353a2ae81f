package taxonomyRepo

import (
	"context"

	"petsitter/models"
)

// TaxonomyRepository defines methods for pet type and service type data access.
// Get methods return nil when the entry does not exist; Update and Delete return
// database.ErrNotFound.
type TaxonomyRepository interface {
	CreatePetType(ctx context.Context, pt *models.PetType) error
	ListPetTypes(ctx context.Context) ([]models.PetType, error)
	GetPetType(ctx context.Context, id string) (*models.PetType, error)
	UpdatePetType(ctx context.Context, pt *models.PetType) error
	DeletePetType(ctx context.Context, id string) error

	CreateServiceType(ctx context.Context, st *models.ServiceType) error
	ListServiceTypes(ctx context.Context) ([]models.ServiceType, error)
	GetServiceType(ctx context.Context, id string) (*models.ServiceType, error)
	UpdateServiceType(ctx context.Context, st *models.ServiceType) error
	DeleteServiceType(ctx context.Context, id string) error
}
