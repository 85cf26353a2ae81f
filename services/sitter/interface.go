package sitter

import (
	"context"
	"fmt"

	bookingRepo "petsitter/database/repository/booking"
	sitterRepo "petsitter/database/repository/sitter"
	"petsitter/models"
	"petsitter/services/taxonomy"

	"go.uber.org/zap"
)

// SitterService manages what a sitter offers, where they get paid and what they earned.
type SitterService interface {
	// Offerings
	AddService(ctx context.Context, sitterID string, in models.SitterService) (*models.SitterServiceView, error)
	ListServices(ctx context.Context, sitterID string) ([]models.SitterServiceView, error)
	DeleteService(ctx context.Context, id, sitterID string) error

	// Payment methods
	AddPaymentMethod(ctx context.Context, sitterID string, in models.PaymentMethod) (*models.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, sitterID string) ([]models.PaymentMethod, error)
	PrimaryPaymentMethod(ctx context.Context, sitterID string) (*models.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id, sitterID string) error

	// Reporting
	IncomeStats(ctx context.Context, sitterID string) (*models.IncomeStats, error)
}

// DefaultSitterService is the production implementation.
type DefaultSitterService struct {
	Repo     sitterRepo.SitterRepository
	Bookings bookingRepo.BookingRepository
	Taxonomy taxonomy.TaxonomyService
	Logger   *zap.Logger
}

func NewDefaultSitterService(
	repo sitterRepo.SitterRepository,
	bookings bookingRepo.BookingRepository,
	tax taxonomy.TaxonomyService,
	logger *zap.Logger,
) (*DefaultSitterService, error) {
	if repo == nil || bookings == nil || tax == nil {
		return nil, fmt.Errorf("sitter service initialization error: one or more dependencies are nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultSitterService{Repo: repo, Bookings: bookings, Taxonomy: tax, Logger: logger}, nil
}
