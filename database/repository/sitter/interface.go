package sitterRepo

import (
	"context"

	"petsitter/models"
)

// SitterRepository defines methods for a sitter's offerings and payout details.
type SitterRepository interface {
	// CreateService inserts a sitter service.
	CreateService(ctx context.Context, svc *models.SitterService) error
	// GetService returns the service or nil when it does not exist.
	GetService(ctx context.Context, id string) (*models.SitterService, error)
	// ListServices returns a sitter's services.
	ListServices(ctx context.Context, sitterID string) ([]models.SitterService, error)
	// DeleteService removes a service owned by sitterID. It returns database.ErrNotFound
	// when no such service exists for that sitter.
	DeleteService(ctx context.Context, id, sitterID string) error
	// HasServiceReference reports whether any service references the taxonomy id through field.
	HasServiceReference(ctx context.Context, field, id string) (bool, error)

	// CreatePaymentMethod inserts a payment method.
	CreatePaymentMethod(ctx context.Context, pm *models.PaymentMethod) error
	// ListPaymentMethods returns a sitter's payment methods, oldest first.
	ListPaymentMethods(ctx context.Context, sitterID string) ([]models.PaymentMethod, error)
	// DeletePaymentMethod removes a payment method owned by sitterID.
	DeletePaymentMethod(ctx context.Context, id, sitterID string) error
}
