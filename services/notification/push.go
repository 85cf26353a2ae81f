package notification

import (
	"context"
	"errors"
	"fmt"

	userRepo "petsitter/database/repository/user"
	"petsitter/models"
	"petsitter/services/lifecycle"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// PushSender delivers one push message to a device token.
type PushSender interface {
	Send(ctx context.Context, token string, p models.PushPayload) error
}

// FCMSender sends pushes through Firebase Cloud Messaging.
type FCMSender struct {
	Client *messaging.Client
}

func (s *FCMSender) Send(ctx context.Context, token string, p models.PushPayload) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: p.Title,
			Body:  p.Body,
		},
		Data: p.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}
	if _, err := s.Client.Send(ctx, msg); err != nil {
		return fmt.Errorf("FCMSender: failed to send message: %w", err)
	}
	return nil
}

// DefaultNotificationService turns booking events into pushes for the affected accounts.
type DefaultNotificationService struct {
	Accounts userRepo.AccountRepository
	Sender   PushSender
	Logger   *zap.Logger
}

// Messages returns the pushes a booking event produces.
func Messages(ev models.BookingEvent) []models.PushPayload {
	data := map[string]string{
		"bookingId":     ev.BookingID,
		"status":        string(ev.Status),
		"paymentStatus": string(ev.PaymentStatus),
	}
	to := func(accountID, title, body string) models.PushPayload {
		return models.PushPayload{AccountID: accountID, Title: title, Body: body, Data: data}
	}

	switch lifecycle.EventKind(ev.Kind) {
	case lifecycle.EventAdminSetPayment:
		switch ev.PaymentStatus {
		case models.PaymentPaid:
			return []models.PushPayload{
				to(ev.MemberID, "Payment confirmed", "Your payment has been verified."),
				to(ev.SitterID, "Booking paid", "A booking assigned to you has been paid."),
			}
		case models.PaymentFailed:
			return []models.PushPayload{
				to(ev.MemberID, "Payment rejected", "Your payment slip was rejected. Please upload a new one."),
			}
		}
	case lifecycle.EventUploadSlip:
		return []models.PushPayload{to(ev.MemberID, "Slip received", "Your payment slip is waiting for review.")}
	case lifecycle.EventMemberCancel:
		return []models.PushPayload{to(ev.SitterID, "Booking cancelled", "A member cancelled their booking.")}
	case lifecycle.EventSitterAccept:
		return []models.PushPayload{to(ev.MemberID, "Booking confirmed", "Your sitter accepted the job.")}
	case lifecycle.EventSitterCancel:
		return []models.PushPayload{to(ev.MemberID, "Booking cancelled", "Your sitter cancelled the job.")}
	}
	return nil
}

// HandleBookingEvent sends every push for ev. Accounts without a device token are skipped.
func (s *DefaultNotificationService) HandleBookingEvent(ctx context.Context, ev models.BookingEvent) error {
	var errs []error
	for _, p := range Messages(ev) {
		account, err := s.Accounts.GetByID(ctx, p.AccountID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if account == nil || account.FCMToken == "" {
			s.Logger.Debug("no push token, skipping", zap.String("accountID", p.AccountID))
			continue
		}
		if err := s.Sender.Send(ctx, account.FCMToken, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
