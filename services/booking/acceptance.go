package booking

import (
	"context"

	"petsitter/models"
	"petsitter/services/lifecycle"
	"petsitter/utils"

	"go.uber.org/zap"
)

// AcceptResult is either an accepted booking or the confirmed booking it collides with.
type AcceptResult struct {
	Accepted             bool
	Booking              *models.Booking
	ConflictingBookingID string
}

// Err returns the overlap as an error, or nil for an accepted job.
func (r *AcceptResult) Err() error {
	if r.Accepted {
		return nil
	}
	return &utils.OverlapError{BookingID: r.Booking.ID, ConflictingBookingID: r.ConflictingBookingID}
}

// AcceptJob confirms a pending booking unless it overlaps another confirmed booking of the
// sitter. The overlap check and the confirm write run under the sitter's lock.
func (s *DefaultBookingService) AcceptJob(ctx context.Context, bookingID, sitterID string) (*AcceptResult, error) {
	var result *AcceptResult

	err := s.Repo.WithSitterLock(ctx, sitterID, func(ctx context.Context) error {
		result = nil
		b, err := s.load(ctx, bookingID)
		if err != nil {
			return err
		}
		d, err := lifecycle.Decide(b, lifecycle.Event{Kind: lifecycle.EventSitterAccept, Actor: lifecycle.Sitter(sitterID)})
		if err != nil {
			return err
		}

		other, err := s.Repo.FindOverlapping(ctx, b.SitterID, b.ID, b.StartTime, b.EndTime)
		if err != nil {
			return utils.NewUnavailableError("failed to check sitter schedule", err)
		}
		if other != nil {
			result = &AcceptResult{Booking: b, ConflictingBookingID: other.ID}
			return nil
		}

		updated, err := s.write(ctx, b, d, nil, nil)
		if err != nil {
			return err
		}
		result = &AcceptResult{Accepted: true, Booking: updated}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Accepted {
		s.Logger.Info("job accepted", zap.String("bookingID", bookingID), zap.String("sitterID", sitterID))
		s.publish(ctx, lifecycle.EventSitterAccept, result.Booking)
	} else {
		s.Logger.Info("job overlaps a confirmed booking",
			zap.String("bookingID", bookingID),
			zap.String("conflictingBookingID", result.ConflictingBookingID),
		)
	}
	return result, nil
}

// CancelJob cancels a booking on the sitter's side; it then no longer blocks other jobs.
func (s *DefaultBookingService) CancelJob(ctx context.Context, bookingID, sitterID string) (*models.Booking, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, b, lifecycle.Event{Kind: lifecycle.EventSitterCancel, Actor: lifecycle.Sitter(sitterID)}, nil, nil)
}
