package admin

import (
	"context"
	"errors"

	"petsitter/database"
	"petsitter/models"
	"petsitter/utils"

	"go.uber.org/zap"
)

// ListSitters returns sitter accounts, optionally only those in one verification status.
func (s *DefaultAdminService) ListSitters(ctx context.Context, status string) ([]models.Account, error) {
	filter := models.VerificationStatus(status)
	if status != "" && !filter.Valid() {
		return nil, utils.NewValidationError("Invalid verification status")
	}
	sitters, err := s.Accounts.ListSitters(ctx, filter)
	if err != nil {
		return nil, utils.NewUnavailableError("failed to list sitters", err)
	}
	return sitters, nil
}

func (s *DefaultAdminService) SetSitterVerification(ctx context.Context, sitterID string, status models.VerificationStatus) (*models.Account, error) {
	if !status.Valid() {
		return nil, utils.NewValidationError("Invalid verification status")
	}
	account, err := s.Accounts.SetVerificationStatus(ctx, sitterID, status)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NewNotFoundError("Sitter not found")
		}
		return nil, utils.NewUnavailableError("failed to update sitter", err)
	}
	s.Logger.Info("sitter verification updated", zap.String("sitterID", sitterID), zap.String("status", string(status)))
	return account, nil
}
