package models

import "time"

// BookingEvent is published after a booking's status or payment status changes.
type BookingEvent struct {
	BookingID     string        `json:"bookingId"`
	MemberID      string        `json:"memberId"`
	SitterID      string        `json:"sitterId"`
	Kind          string        `json:"kind"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	OccurredAt    time.Time     `json:"occurredAt"`
}

// PushPayload is a push message addressed to one account.
type PushPayload struct {
	AccountID string            `json:"accountId"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data"`
}
