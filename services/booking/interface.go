package booking

import (
	"context"
	"time"

	bookingRepo "petsitter/database/repository/booking"
	reviewRepo "petsitter/database/repository/review"
	sitterRepo "petsitter/database/repository/sitter"
	taxonomyRepo "petsitter/database/repository/taxonomy"
	"petsitter/models"
	"petsitter/services/notification"
	"petsitter/services/storage"

	"go.uber.org/zap"
)

// BookingService covers the booking record, the payment slip workflow and sitter job acceptance.
// Every status or payment status change is decided by the lifecycle package before it is written.
type BookingService interface {
	CreateBooking(ctx context.Context, in models.BookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.BookingView, error)
	ListForMember(ctx context.Context, memberID string) ([]models.BookingView, error)
	ListForSitter(ctx context.Context, sitterID string, status models.BookingStatus) ([]models.BookingView, error)
	MemberCancel(ctx context.Context, bookingID, memberID string) (*models.Booking, error)

	UploadSlip(ctx context.Context, bookingID, memberID string, image []byte) (*models.Booking, error)
	ListSlips(ctx context.Context, status string) ([]models.SlipRecord, error)
	SetPaymentStatus(ctx context.Context, bookingID string, status models.PaymentStatus, expectedUpdatedAt *time.Time) (*models.Booking, error)
	DeleteBooking(ctx context.Context, bookingID string, confirm bool) error

	AcceptJob(ctx context.Context, bookingID, sitterID string) (*AcceptResult, error)
	CancelJob(ctx context.Context, bookingID, sitterID string) (*models.Booking, error)
}

// RatingInvalidator drops a sitter's cached average rating.
type RatingInvalidator interface {
	InvalidateSitter(ctx context.Context, sitterID string)
}

// DefaultBookingService implements BookingService. Events and Ratings may be nil.
type DefaultBookingService struct {
	Repo    bookingRepo.BookingRepository
	Reviews reviewRepo.ReviewRepository
	Sitters sitterRepo.SitterRepository
	// Taxonomy, when set, is consulted again after a booking is inserted.
	Taxonomy taxonomyRepo.TaxonomyRepository
	Storage  storage.SlipStorage
	Events   notification.Publisher
	Ratings  RatingInvalidator
	Logger   *zap.Logger
	Now      func() time.Time
}
