package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"petsitter/database"
	bookingRepo "petsitter/database/repository/booking"
	"petsitter/models"
	"petsitter/services/lifecycle"
	"petsitter/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// CreateBooking validates the request against the sitter's service and stores a new
// booking in status pending, payment unpaid.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, in models.BookingInput) (*models.Booking, error) {
	for field, value := range map[string]string{
		"member_id":         in.MemberID,
		"sitter_id":         in.SitterID,
		"pet_type_id":       in.PetTypeID,
		"sitter_service_id": in.SitterServiceID,
		"service_type_id":   in.ServiceTypeID,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, utils.NewValidationError(field + " is required")
		}
	}

	start, err := utils.ParseLocalTime(in.StartTime)
	if err != nil {
		return nil, utils.NewValidationError("start_time: " + err.Error())
	}
	end, err := utils.ParseLocalTime(in.EndTime)
	if err != nil {
		return nil, utils.NewValidationError("end_time: " + err.Error())
	}
	if !end.After(start) {
		return nil, utils.NewValidationError("end_time must be after start_time")
	}
	if in.TotalPrice < 0 {
		return nil, utils.NewValidationError("total_price must not be negative")
	}
	if in.PetQuantity <= 0 {
		return nil, utils.NewValidationError("pet_quantity must be at least 1")
	}

	svc, err := s.Sitters.GetService(ctx, in.SitterServiceID)
	if err != nil {
		return nil, utils.NewUnavailableError("failed to load sitter service", err)
	}
	if svc == nil {
		return nil, utils.NewNotFoundError("Sitter service not found")
	}
	if svc.SitterID != in.SitterID || svc.PetTypeID != in.PetTypeID || svc.ServiceTypeID != in.ServiceTypeID {
		return nil, utils.NewValidationError("sitter service does not match sitter_id, pet_type_id and service_type_id")
	}

	now := s.now()
	b := &models.Booking{
		ID:              uuid.New().String(),
		MemberID:        in.MemberID,
		SitterID:        in.SitterID,
		PetTypeID:       in.PetTypeID,
		SitterServiceID: in.SitterServiceID,
		ServiceTypeID:   in.ServiceTypeID,
		StartTime:       start,
		EndTime:         end,
		TotalPrice:      utils.RoundCurrency(in.TotalPrice),
		PetQuantity:     in.PetQuantity,
		Status:          models.BookingPending,
		PaymentStatus:   models.PaymentUnpaid,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, utils.NewUnavailableError("failed to create booking", err)
	}
	if err := s.ensureTaxonomyStillExists(ctx, b); err != nil {
		if derr := s.Repo.Delete(ctx, b.ID); derr != nil && !errors.Is(derr, database.ErrNotFound) {
			s.Logger.Error("failed to remove booking with deleted taxonomy", zap.String("bookingID", b.ID), zap.Error(derr))
		}
		return nil, err
	}

	s.Logger.Info("booking created",
		zap.String("bookingID", b.ID),
		zap.String("memberID", b.MemberID),
		zap.String("sitterID", b.SitterID),
	)
	return b, nil
}

// ensureTaxonomyStillExists catches a pet or service type deleted between the sitter service
// lookup and the insert. Taxonomy deletes re-check references after deleting, so one side wins.
func (s *DefaultBookingService) ensureTaxonomyStillExists(ctx context.Context, b *models.Booking) error {
	if s.Taxonomy == nil {
		return nil
	}
	pt, err := s.Taxonomy.GetPetType(ctx, b.PetTypeID)
	if err != nil {
		return utils.NewUnavailableError("failed to load pet type", err)
	}
	if pt == nil {
		return utils.NewConflictError("Pet type was deleted")
	}
	st, err := s.Taxonomy.GetServiceType(ctx, b.ServiceTypeID)
	if err != nil {
		return utils.NewUnavailableError("failed to load service type", err)
	}
	if st == nil {
		return utils.NewConflictError("Service type was deleted")
	}
	return nil
}

func (s *DefaultBookingService) load(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewUnavailableError("failed to load booking", err)
	}
	if b == nil {
		return nil, utils.NewNotFoundError("Booking not found")
	}
	return b, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.BookingView, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.withReviews(ctx, []models.Booking{*b})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *DefaultBookingService) ListForMember(ctx context.Context, memberID string) ([]models.BookingView, error) {
	bookings, err := s.Repo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, utils.NewUnavailableError("failed to list bookings", err)
	}
	return s.withReviews(ctx, bookings)
}

func (s *DefaultBookingService) ListForSitter(ctx context.Context, sitterID string, status models.BookingStatus) ([]models.BookingView, error) {
	if status != "" && !status.Valid() {
		return nil, utils.NewValidationError("Invalid booking status")
	}
	bookings, err := s.Repo.ListBySitter(ctx, sitterID, status)
	if err != nil {
		return nil, utils.NewUnavailableError("failed to list jobs", err)
	}
	return s.withReviews(ctx, bookings)
}

// withReviews joins has_review onto bookings at read time.
func (s *DefaultBookingService) withReviews(ctx context.Context, bookings []models.Booking) ([]models.BookingView, error) {
	views := make([]models.BookingView, 0, len(bookings))
	if len(bookings) == 0 {
		return views, nil
	}
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	reviewed, err := s.Reviews.ReviewedBookings(ctx, ids)
	if err != nil {
		return nil, utils.NewUnavailableError("failed to load reviews", err)
	}
	for _, b := range bookings {
		views = append(views, models.BookingView{Booking: b, HasReview: reviewed[b.ID]})
	}
	return views, nil
}

func (s *DefaultBookingService) MemberCancel(ctx context.Context, bookingID, memberID string) (*models.Booking, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, b, lifecycle.Event{Kind: lifecycle.EventMemberCancel, Actor: lifecycle.Member(memberID)}, nil, nil)
}

// transition decides ev against b, writes the result guarded on b's current state and
// publishes the change. Idempotent repeats return b untouched.
func (s *DefaultBookingService) transition(ctx context.Context, b *models.Booking, ev lifecycle.Event, token *time.Time, slip *bookingRepo.SlipUpdate) (*models.Booking, error) {
	d, err := lifecycle.Decide(b, ev)
	if err != nil {
		return nil, err
	}
	if !d.Changed {
		return b, nil
	}
	updated, err := s.write(ctx, b, d, token, slip)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, ev.Kind, updated)
	return updated, nil
}

func (s *DefaultBookingService) write(ctx context.Context, b *models.Booking, d lifecycle.Decision, token *time.Time, slip *bookingRepo.SlipUpdate) (*models.Booking, error) {
	guard := bookingRepo.StateGuard{Status: b.Status, PaymentStatus: b.PaymentStatus, UpdatedAt: token}
	change := bookingRepo.StateChange{
		Status:        d.Status,
		PaymentStatus: d.PaymentStatus,
		Slip:          slip,
		UpdatedAt:     s.now(),
	}
	updated, err := s.Repo.UpdateState(ctx, b.ID, guard, change)
	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, database.ErrNotFound):
		return nil, utils.NewNotFoundError("Booking not found")
	case errors.Is(err, database.ErrStaleWrite):
		return nil, utils.NewConflictError("booking was changed by someone else, reload and try again")
	default:
		return nil, utils.NewUnavailableError("failed to update booking", err)
	}
}

// publish hands the change to the notifier. Delivery is best effort and never fails the request.
func (s *DefaultBookingService) publish(ctx context.Context, kind lifecycle.EventKind, b *models.Booking) {
	if s.Events == nil {
		return
	}
	ev := models.BookingEvent{
		BookingID:     b.ID,
		MemberID:      b.MemberID,
		SitterID:      b.SitterID,
		Kind:          string(kind),
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		OccurredAt:    b.UpdatedAt,
	}
	if err := s.Events.PublishBookingEvent(ctx, ev); err != nil {
		s.Logger.Warn("failed to publish booking event",
			zap.String("bookingID", b.ID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
}
