package sitter

import (
	"context"
	"testing"
	"time"

	"petsitter/database/repository/memory"
	"petsitter/models"
	"petsitter/services/taxonomy"
	"petsitter/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	svc        *DefaultSitterService
	tax        *taxonomy.DefaultTaxonomyService
	sitters    *memory.SitterRepo
	bookings   *memory.BookingRepo
	taxonomies *memory.TaxonomyRepo
	dog        *models.PetType
	walk       *models.ServiceType
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	sitters := memory.NewSitterRepo(store)
	bookings := memory.NewBookingRepo(store)
	taxonomies := memory.NewTaxonomyRepo(store)
	tax := &taxonomy.DefaultTaxonomyService{
		Repo:     taxonomies,
		Bookings: bookings,
		Services: sitters,
		Logger:   zap.NewNop(),
	}
	svc, err := NewDefaultSitterService(sitters, bookings, tax, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	dog, err := tax.CreatePetType(ctx, models.PetType{TypeName: "Dog"})
	require.NoError(t, err)
	walk, err := tax.CreateServiceType(ctx, models.ServiceType{ShortName: "Walking"})
	require.NoError(t, err)

	return &fixture{
		svc: svc, tax: tax, sitters: sitters, bookings: bookings, taxonomies: taxonomies,
		dog: dog, walk: walk,
	}
}

func TestNewDefaultSitterServiceRequiresDependencies(t *testing.T) {
	_, err := NewDefaultSitterService(nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestAddAndListServices(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	added, err := f.svc.AddService(ctx, "sitter-1", models.SitterService{
		ServiceTypeID: f.walk.ID, PetTypeID: f.dog.ID, JobName: "Evening walk", Price: 250,
	})
	require.NoError(t, err)
	assert.Equal(t, "Walking", added.ServiceTypeName)
	assert.Equal(t, "Dog", added.PetTypeName)

	list, err := f.svc.ListServices(ctx, "sitter-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Evening walk", list[0].JobName)

	assert.Equal(t, utils.KindNotFound, utils.KindOf(f.svc.DeleteService(ctx, added.ID, "sitter-2")))
	require.NoError(t, f.svc.DeleteService(ctx, added.ID, "sitter-1"))

	list, err = f.svc.ListServices(ctx, "sitter-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddServiceValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tests := []struct {
		name string
		in   models.SitterService
		kind utils.ErrorKind
	}{
		{"no job name", models.SitterService{ServiceTypeID: f.walk.ID, PetTypeID: f.dog.ID, Price: 100}, utils.KindValidation},
		{"free", models.SitterService{ServiceTypeID: f.walk.ID, PetTypeID: f.dog.ID, JobName: "x"}, utils.KindValidation},
		{"unknown pet type", models.SitterService{ServiceTypeID: f.walk.ID, PetTypeID: "lizard", JobName: "x", Price: 1}, utils.KindNotFound},
		{"unknown service type", models.SitterService{ServiceTypeID: "grooming", PetTypeID: f.dog.ID, JobName: "x", Price: 1}, utils.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AddService(ctx, "sitter-1", tt.in)
			assert.Equal(t, tt.kind, utils.KindOf(err))
		})
	}
}

// typeDeletingSitterRepo removes the service type just before the offering lands.
type typeDeletingSitterRepo struct {
	*memory.SitterRepo
	taxonomies *memory.TaxonomyRepo
}

func (r typeDeletingSitterRepo) CreateService(ctx context.Context, svc *models.SitterService) error {
	if err := r.taxonomies.DeleteServiceType(ctx, svc.ServiceTypeID); err != nil {
		return err
	}
	return r.SitterRepo.CreateService(ctx, svc)
}

func TestAddServiceWithTypeDeletedMeanwhileIsUndone(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.svc.Repo = typeDeletingSitterRepo{SitterRepo: f.sitters, taxonomies: f.taxonomies}

	_, err := f.svc.AddService(ctx, "sitter-1", models.SitterService{
		ServiceTypeID: f.walk.ID, PetTypeID: f.dog.ID, JobName: "Evening walk", Price: 250,
	})
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))

	list, err := f.svc.ListServices(ctx, "sitter-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPaymentMethods(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.PrimaryPaymentMethod(ctx, "sitter-1")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	_, err = f.svc.AddPaymentMethod(ctx, "sitter-1", models.PaymentMethod{PromptPayNumber: "12345"})
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
	_, err = f.svc.AddPaymentMethod(ctx, "sitter-1", models.PaymentMethod{PromptPayNumber: "08l2345678"})
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	first, err := f.svc.AddPaymentMethod(ctx, "sitter-1", models.PaymentMethod{PromptPayNumber: "081-234-5678"})
	require.NoError(t, err)
	assert.Equal(t, "0812345678", first.PromptPayNumber)
	_, err = f.svc.AddPaymentMethod(ctx, "sitter-1", models.PaymentMethod{PromptPayNumber: "1234567890123"})
	require.NoError(t, err)

	primary, err := f.svc.PrimaryPaymentMethod(ctx, "sitter-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, primary.ID)

	require.NoError(t, f.svc.DeletePaymentMethod(ctx, first.ID, "sitter-1"))
	methods, err := f.svc.ListPaymentMethods(ctx, "sitter-1")
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, "1234567890123", methods[0].PromptPayNumber)
}

func TestIncomeStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	day := func(d, h int) time.Time { return time.Date(2024, 1, d, h, 0, 0, 0, time.UTC) }

	rows := []models.Booking{
		{ID: "b1", StartTime: day(1, 9), EndTime: day(1, 10), TotalPrice: 100.10, Status: models.BookingConfirmed, PaymentStatus: models.PaymentPaid, ServiceTypeID: f.walk.ID},
		{ID: "b2", StartTime: day(1, 15), EndTime: day(1, 17), TotalPrice: 200.20, Status: models.BookingConfirmed, PaymentStatus: models.PaymentPaid, ServiceTypeID: f.walk.ID},
		{ID: "b3", StartTime: day(2, 9), EndTime: day(2, 10), TotalPrice: 50, Status: models.BookingConfirmed, PaymentStatus: models.PaymentPaid, ServiceTypeID: "gone"},
		{ID: "b4", StartTime: day(3, 9), EndTime: day(3, 10), TotalPrice: 999, Status: models.BookingCancelled, PaymentStatus: models.PaymentPaid, ServiceTypeID: f.walk.ID},
		{ID: "b5", StartTime: day(4, 9), EndTime: day(4, 10), TotalPrice: 999, Status: models.BookingConfirmed, PaymentStatus: models.PaymentPending, ServiceTypeID: f.walk.ID},
	}
	for i := range rows {
		rows[i].SitterID = "sitter-1"
		require.NoError(t, f.bookings.Create(ctx, &rows[i]))
	}

	stats, err := f.svc.IncomeStats(ctx, "sitter-1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Stats.TotalJobs)
	assert.InDelta(t, 350.30, stats.Stats.TotalIncome, 1e-9)

	require.Len(t, stats.IncomeStats, 2)
	assert.Equal(t, "2024-01-01", stats.IncomeStats[0].BookingDate)
	assert.Equal(t, "Walking", stats.IncomeStats[0].ShortName)
	assert.InDelta(t, 300.30, stats.IncomeStats[0].TotalIncome, 1e-9)
	assert.Equal(t, day(1, 9), stats.IncomeStats[0].StartTime)
	assert.Equal(t, day(1, 17), stats.IncomeStats[0].EndTime)
	assert.Equal(t, taxonomy.UnknownName, stats.IncomeStats[1].ShortName)

	empty, err := f.svc.IncomeStats(ctx, "sitter-2")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Stats.TotalJobs)
	assert.NotNil(t, empty.IncomeStats)
}
