package user

import (
	"context"
	"errors"
	"strings"

	"petsitter/database"
	"petsitter/models"
	"petsitter/utils"
)

func (s *DefaultAccountService) UpdateFCMToken(ctx context.Context, accountID, fcmToken string) error {
	fcmToken = strings.TrimSpace(fcmToken)
	if fcmToken == "" {
		return utils.NewValidationError("fcm_token is required")
	}
	if err := s.Repo.SetFCMToken(ctx, accountID, fcmToken); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.NewNotFoundError("Account not found")
		}
		return utils.NewUnavailableError("failed to update push token", err)
	}
	return nil
}

func (s *DefaultAccountService) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	account, err := s.Repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, utils.NewUnavailableError("failed to load account", err)
	}
	if account == nil {
		return nil, utils.NewNotFoundError("Account not found")
	}
	return account, nil
}
