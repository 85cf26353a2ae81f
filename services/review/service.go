package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"petsitter/database"
	bookingRepo "petsitter/database/repository/booking"
	reviewRepo "petsitter/database/repository/review"
	"petsitter/models"
	"petsitter/services/lifecycle"
	"petsitter/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewService accepts one review per eligible booking and aggregates sitter ratings.
type ReviewService interface {
	SubmitReview(ctx context.Context, in models.ReviewInput) (*models.Review, error)
	// AverageRating is the mean rating of a sitter, or exactly 0 with no reviews.
	AverageRating(ctx context.Context, sitterID string) (float64, error)
	ListBySitter(ctx context.Context, sitterID string) (*models.SitterReviews, error)
}

// DefaultReviewService is the production implementation. Cache may be nil.
type DefaultReviewService struct {
	Bookings bookingRepo.BookingRepository
	Reviews  reviewRepo.ReviewRepository
	Cache    RatingCache
	Logger   *zap.Logger
	Now      func() time.Time
}

func (s *DefaultReviewService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultReviewService) SubmitReview(ctx context.Context, in models.ReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, utils.NewValidationError("rating must be between 1 and 5")
	}
	text := strings.TrimSpace(in.ReviewText)
	if text == "" {
		return nil, utils.NewValidationError("review_text is required")
	}

	b, err := s.Bookings.GetByID(ctx, in.BookingID)
	if err != nil {
		return nil, utils.NewUnavailableError("failed to load booking", err)
	}
	if b == nil || b.SitterID != in.SitterID {
		return nil, utils.NewNotFoundError("Booking not found")
	}
	if _, err := lifecycle.Decide(b, lifecycle.Event{Kind: lifecycle.EventSubmitReview, Actor: lifecycle.Member(in.MemberID)}); err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:         uuid.New().String(),
		BookingID:  b.ID,
		MemberID:   b.MemberID,
		SitterID:   b.SitterID,
		Rating:     in.Rating,
		ReviewText: text,
		CreatedAt:  s.now(),
	}
	if err := s.Reviews.Create(ctx, review); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, utils.NewConflictError("a review already exists for this booking")
		}
		return nil, utils.NewUnavailableError("failed to save review", err)
	}

	// An admin delete may have removed the booking since it was loaded.
	if still, err := s.Bookings.GetByID(ctx, b.ID); err == nil && still == nil {
		if err := s.Reviews.DeleteByBooking(ctx, b.ID); err != nil {
			s.Logger.Warn("failed to drop review of deleted booking", zap.String("bookingID", b.ID), zap.Error(err))
		}
		s.invalidate(ctx, b.SitterID)
		return nil, utils.NewNotFoundError("Booking not found")
	}

	s.invalidate(ctx, b.SitterID)
	return review, nil
}

// InvalidateSitter drops the cached average of a sitter, e.g. after a review was removed.
func (s *DefaultReviewService) InvalidateSitter(ctx context.Context, sitterID string) {
	s.invalidate(ctx, sitterID)
}

func (s *DefaultReviewService) invalidate(ctx context.Context, sitterID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, sitterID); err != nil {
		s.Logger.Warn("failed to invalidate rating cache", zap.String("sitterID", sitterID), zap.Error(err))
	}
}

func (s *DefaultReviewService) AverageRating(ctx context.Context, sitterID string) (float64, error) {
	if s.Cache != nil {
		avg, ok, err := s.Cache.Get(ctx, sitterID)
		if err != nil {
			s.Logger.Warn("rating cache read failed", zap.String("sitterID", sitterID), zap.Error(err))
		} else if ok {
			return avg, nil
		}
	}

	// The generation is read before computing so a review landing meanwhile
	// keeps this result out of the cache.
	gen, cacheable := int64(0), s.Cache != nil
	if cacheable {
		var err error
		if gen, err = s.Cache.Generation(ctx, sitterID); err != nil {
			s.Logger.Warn("rating generation read failed", zap.String("sitterID", sitterID), zap.Error(err))
			cacheable = false
		}
	}

	avg, count, err := s.Reviews.AverageForSitter(ctx, sitterID)
	if err != nil {
		return 0, utils.NewUnavailableError("failed to compute average rating", err)
	}
	if count == 0 {
		avg = 0
	}

	if cacheable {
		stored, err := s.Cache.SetIfGeneration(ctx, sitterID, gen, avg)
		if err != nil {
			s.Logger.Warn("rating cache write failed", zap.String("sitterID", sitterID), zap.Error(err))
		} else if !stored {
			s.Logger.Debug("rating cache fill skipped, invalidated meanwhile", zap.String("sitterID", sitterID))
		}
	}
	return avg, nil
}

func (s *DefaultReviewService) ListBySitter(ctx context.Context, sitterID string) (*models.SitterReviews, error) {
	reviews, err := s.Reviews.ListBySitter(ctx, sitterID)
	if err != nil {
		return nil, utils.NewUnavailableError("failed to list reviews", err)
	}
	avg, err := s.AverageRating(ctx, sitterID)
	if err != nil {
		return nil, err
	}
	return &models.SitterReviews{Reviews: reviews, AverageRating: avg}, nil
}
