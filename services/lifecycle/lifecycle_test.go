package lifecycle

import (
	"testing"

	"petsitter/models"
	"petsitter/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booking(status models.BookingStatus, payment models.PaymentStatus) *models.Booking {
	return &models.Booking{
		ID:            "b1",
		MemberID:      "m1",
		SitterID:      "s1",
		Status:        status,
		PaymentStatus: payment,
	}
}

func withSlip(b *models.Booking) *models.Booking {
	b.SlipImage = "https://res.cloudinary.com/demo/image/upload/slips/b1.jpg"
	return b
}

func TestDecideTransitions(t *testing.T) {
	cases := []struct {
		name    string
		booking *models.Booking
		event   Event
		status  models.BookingStatus
		payment models.PaymentStatus
	}{
		{"upload from unpaid", booking(models.BookingPending, models.PaymentUnpaid),
			Event{Kind: EventUploadSlip, Actor: Member("m1")}, models.BookingPending, models.PaymentPending},
		{"re-upload after failed", booking(models.BookingPending, models.PaymentFailed),
			Event{Kind: EventUploadSlip, Actor: Member("m1")}, models.BookingPending, models.PaymentPending},
		{"admin approves", withSlip(booking(models.BookingPending, models.PaymentPending)),
			Event{Kind: EventAdminSetPayment, Actor: Admin(), PaymentStatus: models.PaymentPaid}, models.BookingPending, models.PaymentPaid},
		{"admin rejects", withSlip(booking(models.BookingPending, models.PaymentPending)),
			Event{Kind: EventAdminSetPayment, Actor: Admin(), PaymentStatus: models.PaymentFailed}, models.BookingPending, models.PaymentFailed},
		{"member cancels unpaid", booking(models.BookingPending, models.PaymentUnpaid),
			Event{Kind: EventMemberCancel, Actor: Member("m1")}, models.BookingCancelled, models.PaymentUnpaid},
		{"member cancels under review", booking(models.BookingPending, models.PaymentPending),
			Event{Kind: EventMemberCancel, Actor: Member("m1")}, models.BookingCancelled, models.PaymentPending},
		{"sitter accepts", booking(models.BookingPending, models.PaymentUnpaid),
			Event{Kind: EventSitterAccept, Actor: Sitter("s1")}, models.BookingConfirmed, models.PaymentUnpaid},
		{"sitter cancels confirmed", booking(models.BookingConfirmed, models.PaymentPaid),
			Event{Kind: EventSitterCancel, Actor: Sitter("s1")}, models.BookingCancelled, models.PaymentPaid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := Decide(tc.booking, tc.event)
			require.NoError(t, err)
			assert.True(t, d.Changed)
			assert.Equal(t, tc.status, d.Status)
			assert.Equal(t, tc.payment, d.PaymentStatus)
		})
	}
}

func TestDecideRejections(t *testing.T) {
	cases := []struct {
		name    string
		booking *models.Booking
		event   Event
		kind    utils.ErrorKind
	}{
		{"member cancels paid", booking(models.BookingConfirmed, models.PaymentPaid),
			Event{Kind: EventMemberCancel, Actor: Member("m1")}, utils.KindConflict},
		{"upload after paid", booking(models.BookingPending, models.PaymentPaid),
			Event{Kind: EventUploadSlip, Actor: Member("m1")}, utils.KindConflict},
		{"bogus payment status", booking(models.BookingPending, models.PaymentPending),
			Event{Kind: EventAdminSetPayment, Actor: Admin(), PaymentStatus: "bogus"}, utils.KindValidation},
		{"paid without slip", booking(models.BookingPending, models.PaymentUnpaid),
			Event{Kind: EventAdminSetPayment, Actor: Admin(), PaymentStatus: models.PaymentPaid}, utils.KindConflict},
		{"accept twice", booking(models.BookingConfirmed, models.PaymentUnpaid),
			Event{Kind: EventSitterAccept, Actor: Sitter("s1")}, utils.KindConflict},
		{"member sets payment", booking(models.BookingPending, models.PaymentPending),
			Event{Kind: EventAdminSetPayment, Actor: Member("m1"), PaymentStatus: models.PaymentPaid}, utils.KindUnauthorized},
		{"other sitter accepts", booking(models.BookingPending, models.PaymentUnpaid),
			Event{Kind: EventSitterAccept, Actor: Sitter("s2")}, utils.KindForbidden},
		{"other member cancels", booking(models.BookingPending, models.PaymentUnpaid),
			Event{Kind: EventMemberCancel, Actor: Member("m2")}, utils.KindForbidden},
		{"review unpaid", booking(models.BookingConfirmed, models.PaymentPending),
			Event{Kind: EventSubmitReview, Actor: Member("m1")}, utils.KindNotFound},
		{"review by stranger", booking(models.BookingConfirmed, models.PaymentPaid),
			Event{Kind: EventSubmitReview, Actor: Member("m2")}, utils.KindNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := *tc.booking
			d, err := Decide(tc.booking, tc.event)
			require.Error(t, err)
			assert.Equal(t, tc.kind, utils.KindOf(err))
			assert.False(t, d.Changed)
			assert.Equal(t, before, *tc.booking)
		})
	}
}

func TestCancelledIsTerminal(t *testing.T) {
	events := []Event{
		{Kind: EventUploadSlip, Actor: Member("m1")},
		{Kind: EventAdminSetPayment, Actor: Admin(), PaymentStatus: models.PaymentPaid},
		{Kind: EventSitterAccept, Actor: Sitter("s1")},
		{Kind: EventSubmitReview, Actor: Member("m1")},
	}
	for _, ev := range events {
		b := withSlip(booking(models.BookingCancelled, models.PaymentPending))
		_, err := Decide(b, ev)
		assert.True(t, utils.IsKind(err, utils.KindConflict), "%s on cancelled booking: %v", ev.Kind, err)
	}
}

func TestRepeatedWritesAreNoOps(t *testing.T) {
	d, err := Decide(booking(models.BookingCancelled, models.PaymentUnpaid), Event{Kind: EventMemberCancel, Actor: Member("m1")})
	require.NoError(t, err)
	assert.False(t, d.Changed)

	d, err = Decide(booking(models.BookingCancelled, models.PaymentUnpaid), Event{Kind: EventSitterCancel, Actor: Sitter("s1")})
	require.NoError(t, err)
	assert.False(t, d.Changed)

	d, err = Decide(booking(models.BookingPending, models.PaymentFailed),
		Event{Kind: EventAdminSetPayment, Actor: Admin(), PaymentStatus: models.PaymentFailed})
	require.NoError(t, err)
	assert.False(t, d.Changed)
	assert.Equal(t, models.PaymentFailed, d.PaymentStatus)
}

func TestReviewEligibility(t *testing.T) {
	d, err := Decide(booking(models.BookingConfirmed, models.PaymentPaid), Event{Kind: EventSubmitReview, Actor: Member("m1")})
	require.NoError(t, err)
	assert.False(t, d.Changed)
}
