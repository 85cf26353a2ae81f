package tasks

import (
	"encoding/json"
	"fmt"

	"petsitter/models"

	"github.com/hibiken/asynq"
)

const (
	TypeBookingStatusChanged = "booking:status_changed"
	QueueNotifications       = "notifications"
)

// NewBookingStatusChangedTask wraps a booking event for the notification worker.
func NewBookingStatusChangedTask(ev models.BookingEvent) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingStatusChanged, b)
	opts := []asynq.Option{
		asynq.Queue(QueueNotifications),
		asynq.MaxRetry(5),
	}
	return task, opts, nil
}

// ParseBookingStatusChanged decodes the payload written by NewBookingStatusChangedTask.
func ParseBookingStatusChanged(task *asynq.Task) (models.BookingEvent, error) {
	var ev models.BookingEvent
	if err := json.Unmarshal(task.Payload(), &ev); err != nil {
		return ev, fmt.Errorf("invalid %s payload: %w", TypeBookingStatusChanged, err)
	}
	return ev, nil
}
