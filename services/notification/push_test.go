package notification

import (
	"context"
	"errors"
	"testing"

	"petsitter/database/repository/memory"
	"petsitter/models"
	"petsitter/services/lifecycle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	sent []string
	fail bool
}

func (r *recordingSender) Send(_ context.Context, token string, p models.PushPayload) error {
	if r.fail {
		return errors.New("fcm unavailable")
	}
	r.sent = append(r.sent, token+":"+p.Title)
	return nil
}

func TestMessagesForPaidPayment(t *testing.T) {
	msgs := Messages(models.BookingEvent{
		BookingID:     "b1",
		MemberID:      "m1",
		SitterID:      "s1",
		Kind:          string(lifecycle.EventAdminSetPayment),
		PaymentStatus: models.PaymentPaid,
	})
	require.Len(t, msgs, 2)
	assert.Equal(t, "m1", msgs[0].AccountID)
	assert.Equal(t, "s1", msgs[1].AccountID)
	assert.Equal(t, "b1", msgs[0].Data["bookingId"])
}

func TestMessagesForUnpaidPaymentIsSilent(t *testing.T) {
	assert.Empty(t, Messages(models.BookingEvent{
		Kind:          string(lifecycle.EventAdminSetPayment),
		PaymentStatus: models.PaymentUnpaid,
	}))
}

func TestHandleBookingEventSkipsAccountsWithoutToken(t *testing.T) {
	store := memory.NewStore()
	accounts := memory.NewAccountRepo(store)
	ctx := context.Background()
	require.NoError(t, accounts.Create(ctx, &models.Account{ID: "m1", Email: "m1@example.com", Role: models.RoleMember, FCMToken: "tok-m1"}))
	require.NoError(t, accounts.Create(ctx, &models.Account{ID: "s1", Email: "s1@example.com", Role: models.RoleSitter}))

	sender := &recordingSender{}
	svc := &DefaultNotificationService{Accounts: accounts, Sender: sender, Logger: zap.NewNop()}

	err := svc.HandleBookingEvent(ctx, models.BookingEvent{
		BookingID:     "b1",
		MemberID:      "m1",
		SitterID:      "s1",
		Kind:          string(lifecycle.EventAdminSetPayment),
		PaymentStatus: models.PaymentPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"tok-m1:Payment confirmed"}, sender.sent)
}

func TestHandleBookingEventReturnsSendErrors(t *testing.T) {
	store := memory.NewStore()
	accounts := memory.NewAccountRepo(store)
	ctx := context.Background()
	require.NoError(t, accounts.Create(ctx, &models.Account{ID: "m1", Email: "m1@example.com", Role: models.RoleMember, FCMToken: "tok"}))

	svc := &DefaultNotificationService{Accounts: accounts, Sender: &recordingSender{fail: true}, Logger: zap.NewNop()}
	err := svc.HandleBookingEvent(ctx, models.BookingEvent{MemberID: "m1", Kind: string(lifecycle.EventSitterAccept)})
	assert.Error(t, err)
}
