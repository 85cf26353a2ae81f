package reviewRepo

import (
	"context"

	"petsitter/models"
)

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// Create inserts a review. A second review for the same booking fails with
	// database.ErrDuplicate.
	Create(ctx context.Context, review *models.Review) error
	// ListBySitter returns a sitter's reviews, newest first.
	ListBySitter(ctx context.Context, sitterID string) ([]models.Review, error)
	// AverageForSitter returns the mean rating and review count of a sitter.
	AverageForSitter(ctx context.Context, sitterID string) (avg float64, count int64, err error)
	// ReviewedBookings reports which of the given booking ids have a review.
	ReviewedBookings(ctx context.Context, bookingIDs []string) (map[string]bool, error)
	// DeleteByBooking removes the review of a booking, if any.
	DeleteByBooking(ctx context.Context, bookingID string) error
}
