// Package lifecycle owns the booking state machine. Every status or payment status
// write in the system is decided here first.
package lifecycle

import (
	"petsitter/models"
	"petsitter/utils"
)

// EventKind names something that happened to a booking.
type EventKind string

const (
	EventUploadSlip      EventKind = "upload_slip"
	EventAdminSetPayment EventKind = "admin_set_payment"
	EventMemberCancel    EventKind = "member_cancel"
	EventSitterAccept    EventKind = "sitter_accept"
	EventSitterCancel    EventKind = "sitter_cancel"
	EventSubmitReview    EventKind = "submit_review"
)

// Actor is who triggered an event.
type Actor struct {
	Role models.Role
	ID   string
}

func Member(id string) Actor { return Actor{Role: models.RoleMember, ID: id} }
func Sitter(id string) Actor { return Actor{Role: models.RoleSitter, ID: id} }
func Admin() Actor           { return Actor{Role: models.RoleAdmin} }

// Event is a requested transition.
type Event struct {
	Kind  EventKind
	Actor Actor
	// PaymentStatus is the value an admin asks for; only used by EventAdminSetPayment.
	PaymentStatus models.PaymentStatus
}

// Decision is the state a booking moves to. Changed is false for idempotent
// repeats, which must not be written.
type Decision struct {
	Status        models.BookingStatus
	PaymentStatus models.PaymentStatus
	Changed       bool
}

var requiredRole = map[EventKind]models.Role{
	EventUploadSlip:      models.RoleMember,
	EventAdminSetPayment: models.RoleAdmin,
	EventMemberCancel:    models.RoleMember,
	EventSitterAccept:    models.RoleSitter,
	EventSitterCancel:    models.RoleSitter,
	EventSubmitReview:    models.RoleMember,
}

func authorize(b *models.Booking, ev Event) error {
	role, ok := requiredRole[ev.Kind]
	if !ok {
		return utils.NewValidationError("unknown booking event " + string(ev.Kind))
	}
	if ev.Actor.Role != role {
		return utils.NewUnauthorizedError("only a " + string(role) + " may perform " + string(ev.Kind))
	}

	owner := ""
	switch role {
	case models.RoleMember:
		owner = b.MemberID
	case models.RoleSitter:
		owner = b.SitterID
	default:
		return nil
	}
	if ev.Actor.ID == owner {
		return nil
	}
	if ev.Kind == EventSubmitReview {
		return utils.NewNotFoundError("booking not found for this member")
	}
	return utils.NewForbiddenError("booking does not belong to this " + string(role))
}

// Decide applies ev to b and returns the resulting state, or the reason the
// transition is not allowed. It never mutates b.
func Decide(b *models.Booking, ev Event) (Decision, error) {
	keep := Decision{Status: b.Status, PaymentStatus: b.PaymentStatus}

	if err := authorize(b, ev); err != nil {
		return keep, err
	}
	if ev.Kind == EventAdminSetPayment && !ev.PaymentStatus.Valid() {
		return keep, utils.NewValidationError("Invalid payment status")
	}

	if b.Status == models.BookingCancelled {
		if ev.Kind == EventMemberCancel || ev.Kind == EventSitterCancel {
			return keep, nil
		}
		return keep, utils.NewConflictError("booking has been cancelled")
	}

	next := keep
	next.Changed = true

	switch ev.Kind {
	case EventUploadSlip:
		if b.PaymentStatus == models.PaymentPaid {
			return keep, utils.NewConflictError("payment has already been confirmed")
		}
		// unpaid, failed and pending all go (back) to review with the new slip.
		next.PaymentStatus = models.PaymentPending

	case EventAdminSetPayment:
		if ev.PaymentStatus == b.PaymentStatus {
			return keep, nil
		}
		if ev.PaymentStatus == models.PaymentPaid && b.SlipImage == "" {
			return keep, utils.NewConflictError("no payment slip has been uploaded for this booking")
		}
		next.PaymentStatus = ev.PaymentStatus

	case EventMemberCancel:
		if b.PaymentStatus == models.PaymentPaid {
			return keep, utils.NewConflictError("cannot cancel a booking that has already been paid")
		}
		next.Status = models.BookingCancelled

	case EventSitterAccept:
		if b.Status == models.BookingConfirmed {
			return keep, utils.NewConflictError("booking is already confirmed")
		}
		next.Status = models.BookingConfirmed

	case EventSitterCancel:
		next.Status = models.BookingCancelled

	case EventSubmitReview:
		if b.PaymentStatus != models.PaymentPaid || b.Status != models.BookingConfirmed {
			return keep, utils.NewNotFoundError("booking is not eligible for review")
		}
		return keep, nil
	}

	return next, nil
}
