package sitter

import (
	"context"
	"errors"
	"strings"
	"time"

	"petsitter/database"
	"petsitter/models"
	"petsitter/utils"

	"github.com/google/uuid"
)

// normalizePromptPay strips separators and accepts a 10 digit phone number or a 13 digit
// national id.
func normalizePromptPay(number string) (string, bool) {
	number = strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(number))
	if len(number) != 10 && len(number) != 13 {
		return "", false
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return number, true
}

func (s *DefaultSitterService) AddPaymentMethod(ctx context.Context, sitterID string, in models.PaymentMethod) (*models.PaymentMethod, error) {
	number, ok := normalizePromptPay(in.PromptPayNumber)
	if !ok {
		return nil, utils.NewValidationError("promptpay_number must be a 10 digit phone number or 13 digit ID")
	}
	pm := &models.PaymentMethod{
		ID:              uuid.New().String(),
		SitterID:        sitterID,
		PromptPayNumber: number,
		AccountName:     strings.TrimSpace(in.AccountName),
		BankName:        strings.TrimSpace(in.BankName),
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.Repo.CreatePaymentMethod(ctx, pm); err != nil {
		return nil, utils.NewUnavailableError("failed to save payment method", err)
	}
	return pm, nil
}

func (s *DefaultSitterService) ListPaymentMethods(ctx context.Context, sitterID string) ([]models.PaymentMethod, error) {
	methods, err := s.Repo.ListPaymentMethods(ctx, sitterID)
	if err != nil {
		return nil, utils.NewUnavailableError("failed to list payment methods", err)
	}
	return methods, nil
}

// PrimaryPaymentMethod is the sitter's oldest payment method, shown to members paying for a booking.
func (s *DefaultSitterService) PrimaryPaymentMethod(ctx context.Context, sitterID string) (*models.PaymentMethod, error) {
	methods, err := s.ListPaymentMethods(ctx, sitterID)
	if err != nil {
		return nil, err
	}
	if len(methods) == 0 {
		return nil, utils.NewNotFoundError("Sitter has no payment method")
	}
	return &methods[0], nil
}

func (s *DefaultSitterService) DeletePaymentMethod(ctx context.Context, id, sitterID string) error {
	if err := s.Repo.DeletePaymentMethod(ctx, id, sitterID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.NewNotFoundError("Payment method not found")
		}
		return utils.NewUnavailableError("failed to delete payment method", err)
	}
	return nil
}
