package admin

import (
	"context"

	userRepo "petsitter/database/repository/user"
	"petsitter/models"

	"go.uber.org/zap"
)

// AdminService covers back-office work that is not part of the booking lifecycle.
type AdminService interface {
	ListSitters(ctx context.Context, status string) ([]models.Account, error)
	SetSitterVerification(ctx context.Context, sitterID string, status models.VerificationStatus) (*models.Account, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Accounts userRepo.AccountRepository
	Logger   *zap.Logger
}
