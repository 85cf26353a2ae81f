package notification

import (
	"context"
	"fmt"

	"petsitter/models"
	"petsitter/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Publisher is the hook booking services call after a status change is stored.
type Publisher interface {
	PublishBookingEvent(ctx context.Context, ev models.BookingEvent) error
}

// NoopPublisher drops every event. Used when notifications are disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishBookingEvent(context.Context, models.BookingEvent) error { return nil }

// Enqueuer is the part of *asynq.Client the publisher needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqPublisher hands events to the background worker through Redis.
type AsynqPublisher struct {
	Client Enqueuer
	Logger *zap.Logger
}

func NewAsynqPublisher(client Enqueuer, logger *zap.Logger) *AsynqPublisher {
	return &AsynqPublisher{Client: client, Logger: logger}
}

func (p *AsynqPublisher) PublishBookingEvent(ctx context.Context, ev models.BookingEvent) error {
	task, opts, err := tasks.NewBookingStatusChangedTask(ev)
	if err != nil {
		return fmt.Errorf("PublishBookingEvent: failed to build task: %w", err)
	}
	info, err := p.Client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("PublishBookingEvent: failed to enqueue task: %w", err)
	}
	p.Logger.Debug("booking event enqueued",
		zap.String("bookingID", ev.BookingID),
		zap.String("kind", ev.Kind),
		zap.String("taskID", info.ID),
	)
	return nil
}
