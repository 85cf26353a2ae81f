package booking

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"petsitter/database"
	bookingRepo "petsitter/database/repository/booking"
	"petsitter/models"
	"petsitter/services/lifecycle"
	"petsitter/utils"

	"go.uber.org/zap"
)

// slipPublicID names a slip asset after its booking and content, so a re-upload never
// overwrites the asset the stored booking still points at.
func slipPublicID(bookingID string, image []byte) string {
	sum := sha256.Sum256(image)
	return fmt.Sprintf("%s-%x", bookingID, sum[:8])
}

// UploadSlip stores the image and moves the booking to payment review in one guarded write.
// If the write fails the new asset is removed again.
func (s *DefaultBookingService) UploadSlip(ctx context.Context, bookingID, memberID string, image []byte) (*models.Booking, error) {
	if len(image) == 0 {
		return nil, utils.NewValidationError("image is required")
	}
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	ev := lifecycle.Event{Kind: lifecycle.EventUploadSlip, Actor: lifecycle.Member(memberID)}
	d, err := lifecycle.Decide(b, ev)
	if err != nil {
		return nil, err
	}

	stored, err := s.Storage.UploadSlip(ctx, slipPublicID(b.ID, image), bytes.NewReader(image))
	if err != nil {
		return nil, utils.NewUnavailableError("failed to store payment slip", err)
	}

	slip := &bookingRepo.SlipUpdate{ImageURL: stored.URL, PublicID: stored.PublicID, UploadedAt: s.now()}
	updated, err := s.write(ctx, b, d, nil, slip)
	if err != nil {
		if stored.PublicID != b.SlipPublicID {
			s.deleteAsset(ctx, stored.PublicID)
		}
		return nil, err
	}
	if b.SlipPublicID != "" && b.SlipPublicID != stored.PublicID {
		s.deleteAsset(ctx, b.SlipPublicID)
	}

	s.Logger.Info("payment slip uploaded", zap.String("bookingID", b.ID), zap.String("publicID", stored.PublicID))
	s.publish(ctx, ev.Kind, updated)
	return updated, nil
}

func (s *DefaultBookingService) deleteAsset(ctx context.Context, publicID string) {
	// Cleanup must run even when the request context is already done.
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
	defer cancel()
	if err := s.Storage.DeleteFile(cleanupCtx, publicID); err != nil {
		s.Logger.Error("failed to delete slip asset", zap.String("publicID", publicID), zap.Error(err))
	}
}

// ListSlips returns the admin review queue, optionally filtered by payment status.
func (s *DefaultBookingService) ListSlips(ctx context.Context, status string) ([]models.SlipRecord, error) {
	filter := models.PaymentStatus(status)
	if status != "" && !filter.Valid() {
		return nil, utils.NewValidationError("Invalid payment status")
	}
	slips, err := s.Repo.ListSlips(ctx, filter)
	if err != nil {
		return nil, utils.NewUnavailableError("failed to list payment slips", err)
	}
	return slips, nil
}

// SetPaymentStatus is the admin decision on a slip. When expectedUpdatedAt is given the
// booking must not have changed since the admin loaded it.
func (s *DefaultBookingService) SetPaymentStatus(ctx context.Context, bookingID string, status models.PaymentStatus, expectedUpdatedAt *time.Time) (*models.Booking, error) {
	if !status.Valid() {
		return nil, utils.NewValidationError("Invalid payment status")
	}
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if expectedUpdatedAt != nil && !b.UpdatedAt.Equal(*expectedUpdatedAt) {
		return nil, utils.NewConflictError("booking was changed by someone else, reload and try again")
	}
	ev := lifecycle.Event{Kind: lifecycle.EventAdminSetPayment, Actor: lifecycle.Admin(), PaymentStatus: status}
	return s.transition(ctx, b, ev, expectedUpdatedAt, nil)
}

// DeleteBooking force-deletes a booking with its review and slip asset.
func (s *DefaultBookingService) DeleteBooking(ctx context.Context, bookingID string, confirm bool) error {
	if !confirm {
		return utils.NewValidationError("deleting a booking requires confirm=true")
	}
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteWithReview(ctx, b.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.NewNotFoundError("Booking not found")
		}
		return utils.NewUnavailableError("failed to delete booking", err)
	}
	// A review inserted after the transaction's snapshot would survive it.
	if err := s.Reviews.DeleteByBooking(ctx, b.ID); err != nil {
		s.Logger.Warn("failed to sweep review of deleted booking", zap.String("bookingID", b.ID), zap.Error(err))
	}
	if b.SlipPublicID != "" {
		s.deleteAsset(ctx, b.SlipPublicID)
	}
	if s.Ratings != nil {
		s.Ratings.InvalidateSitter(ctx, b.SitterID)
	}

	s.Logger.Warn("booking force-deleted", zap.String("bookingID", b.ID))
	return nil
}
