package bookingRepo

import (
	"context"
	"time"

	"petsitter/models"
)

// Field names other collections use to reference taxonomy entries.
const (
	FieldPetTypeID     = "pet_type_id"
	FieldServiceTypeID = "service_type_id"
)

// StateGuard is the state a booking must be in for a conditional write to apply.
type StateGuard struct {
	Status        models.BookingStatus
	PaymentStatus models.PaymentStatus
	// UpdatedAt, when set, must also match (optimistic concurrency token).
	UpdatedAt *time.Time
}

// SlipUpdate attaches an uploaded payment slip.
type SlipUpdate struct {
	ImageURL   string
	PublicID   string
	UploadedAt time.Time
}

// StateChange is the new state written by a guarded update.
type StateChange struct {
	Status        models.BookingStatus
	PaymentStatus models.PaymentStatus
	Slip          *SlipUpdate
	UpdatedAt     time.Time
}

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID returns the booking or nil when it does not exist.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListByMember returns a member's bookings, newest first.
	ListByMember(ctx context.Context, memberID string) ([]models.Booking, error)
	// ListBySitter returns a sitter's bookings, newest first; an empty status means all.
	ListBySitter(ctx context.Context, sitterID string, status models.BookingStatus) ([]models.Booking, error)
	// ListPaidBySitter returns the sitter's paid, non-cancelled bookings ordered by start time.
	ListPaidBySitter(ctx context.Context, sitterID string) ([]models.Booking, error)
	// ListSlips returns the admin review queue; an empty status means all.
	ListSlips(ctx context.Context, status models.PaymentStatus) ([]models.SlipRecord, error)
	// FindOverlapping returns one confirmed booking of the sitter, other than excludeID,
	// whose window overlaps [start, end), or nil.
	FindOverlapping(ctx context.Context, sitterID, excludeID string, start, end time.Time) (*models.Booking, error)
	// UpdateState applies change if the booking is still in the guarded state and returns
	// the updated booking. It returns database.ErrNotFound or database.ErrStaleWrite.
	UpdateState(ctx context.Context, id string, guard StateGuard, change StateChange) (*models.Booking, error)
	// Delete removes a booking. It returns database.ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
	// DeleteWithReview removes a booking and its review in one transaction. Either both are
	// gone or neither is. It returns database.ErrNotFound when the booking is absent.
	DeleteWithReview(ctx context.Context, id string) error
	// HasReference reports whether any booking references the taxonomy id through field.
	HasReference(ctx context.Context, field, id string) (bool, error)
	// WithSitterLock runs fn while holding the sitter's acceptance lock. Reads and writes made
	// through ctx inside fn commit atomically with respect to other holders of the same lock.
	WithSitterLock(ctx context.Context, sitterID string, fn func(ctx context.Context) error) error
}
