package taxonomy

import (
	"context"
	"testing"

	"petsitter/database/repository/memory"
	"petsitter/models"
	"petsitter/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService() (*DefaultTaxonomyService, *memory.SitterRepo, *memory.BookingRepo) {
	store := memory.NewStore()
	sitters := memory.NewSitterRepo(store)
	bookings := memory.NewBookingRepo(store)
	return &DefaultTaxonomyService{
		Repo:     memory.NewTaxonomyRepo(store),
		Bookings: bookings,
		Services: sitters,
		Logger:   zap.NewNop(),
	}, sitters, bookings
}

func TestPetTypeCRUD(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService()

	_, err := svc.CreatePetType(ctx, models.PetType{TypeName: "  "})
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	created, err := svc.CreatePetType(ctx, models.PetType{TypeName: "Cat", Description: "Indoor cats"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	updated, err := svc.UpdatePetType(ctx, created.ID, models.PetType{TypeName: "Cat", Description: "All cats"})
	require.NoError(t, err)
	assert.Equal(t, "All cats", updated.Description)

	got, err := svc.GetPetType(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)

	_, err = svc.UpdatePetType(ctx, "missing", models.PetType{TypeName: "Fish"})
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	require.NoError(t, svc.DeletePetType(ctx, created.ID))
	_, err = svc.GetPetType(ctx, created.ID)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	assert.Equal(t, utils.KindNotFound, utils.KindOf(svc.DeletePetType(ctx, created.ID)))
}

func TestServiceTypeCRUD(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService()

	_, err := svc.CreateServiceType(ctx, models.ServiceType{FullDescription: "no name"})
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	created, err := svc.CreateServiceType(ctx, models.ServiceType{ShortName: "Boarding", FullDescription: "Overnight stay"})
	require.NoError(t, err)

	list, err := svc.ListServiceTypes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Boarding", list[0].ShortName)

	_, err = svc.UpdateServiceType(ctx, created.ID, models.ServiceType{ShortName: ""})
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	require.NoError(t, svc.DeleteServiceType(ctx, created.ID))
	list, err = svc.ListServiceTypes(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteReferencedPetTypeIsRejected(t *testing.T) {
	ctx := context.Background()
	svc, sitters, _ := newService()

	dog, err := svc.CreatePetType(ctx, models.PetType{TypeName: "Dog"})
	require.NoError(t, err)
	require.NoError(t, sitters.CreateService(ctx, &models.SitterService{
		ID: "svc-1", SitterID: "sitter-1", PetTypeID: dog.ID, ServiceTypeID: "walk", JobName: "Walk", Price: 100,
	}))

	err = svc.DeletePetType(ctx, dog.ID)
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))

	name, err := svc.PetTypeName(ctx, dog.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dog", name)

	name, err = svc.PetTypeName(ctx, "deleted-long-ago")
	require.NoError(t, err)
	assert.Equal(t, UnknownName, name)
}

func TestDeleteServiceTypeUsedByBookingIsRejected(t *testing.T) {
	ctx := context.Background()
	svc, _, bookings := newService()

	walk, err := svc.CreateServiceType(ctx, models.ServiceType{ShortName: "Walking"})
	require.NoError(t, err)
	require.NoError(t, bookings.Create(ctx, &models.Booking{ID: "b1", SitterID: "sitter-1", ServiceTypeID: walk.ID}))

	assert.Equal(t, utils.KindConflict, utils.KindOf(svc.DeleteServiceType(ctx, walk.ID)))

	name, err := svc.ServiceTypeName(ctx, walk.ID)
	require.NoError(t, err)
	assert.Equal(t, "Walking", name)
}

// bookingOnDelete stores a booking for the type being deleted right before the delete itself,
// as a booking created concurrently with the admin's delete would.
type bookingOnDelete struct {
	*memory.TaxonomyRepo
	bookings *memory.BookingRepo
}

func (r bookingOnDelete) DeletePetType(ctx context.Context, id string) error {
	if err := r.bookings.Create(ctx, &models.Booking{ID: "b-late", SitterID: "sitter-1", PetTypeID: id}); err != nil {
		return err
	}
	return r.TaxonomyRepo.DeletePetType(ctx, id)
}

func TestDeletePetTypeRacingBookingIsRestored(t *testing.T) {
	ctx := context.Background()
	svc, _, bookings := newService()
	dog, err := svc.CreatePetType(ctx, models.PetType{TypeName: "Dog", Description: "All dogs"})
	require.NoError(t, err)

	svc.Repo = bookingOnDelete{TaxonomyRepo: svc.Repo.(*memory.TaxonomyRepo), bookings: bookings}
	assert.Equal(t, utils.KindConflict, utils.KindOf(svc.DeletePetType(ctx, dog.ID)))

	got, err := svc.GetPetType(ctx, dog.ID)
	require.NoError(t, err)
	assert.Equal(t, *dog, *got)
}
