package cron

import (
	"context"
	"fmt"
	"time"

	"petsitter/config"
	"petsitter/models"
	"petsitter/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingEventHandler turns a booking status change into pushes.
type BookingEventHandler interface {
	HandleBookingEvent(ctx context.Context, ev models.BookingEvent) error
}

// RedisOpt is the asynq connection for the notification queue.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewNotificationMux routes queued booking events to notifSvc.
func NewNotificationMux(notifSvc BookingEventHandler, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingStatusChanged, handleBookingStatusChanged(notifSvc, logger))
	return mux
}

// RunNotificationWorker processes the notification queue until ctx is done.
func RunNotificationWorker(ctx context.Context, notifSvc BookingEventHandler, logger *zap.Logger) error {
	concurrency := config.AppConfig.WorkerConcurrency
	if concurrency <= 0 {
		concurrency = 10
	}
	srv := asynq.NewServer(RedisOpt(), asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			tasks.QueueNotifications: 1,
		},
		Logger: logger.Sugar(),
	})
	mux := NewNotificationMux(notifSvc, logger)

	go monitorRedisConnection(ctx, logger)

	const maxAttempts = 5
	var err error
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = srv.Start(mux); err == nil {
			break
		}
		logger.Warn("notification worker failed to start",
			zap.Int("attempt", attempts),
			zap.Int("maxAttempts", maxAttempts),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempts*2) * time.Second):
		}
	}
	if err != nil {
		return fmt.Errorf("RunNotificationWorker: giving up after %d attempts: %w", maxAttempts, err)
	}
	logger.Info("notification worker started", zap.Int("concurrency", concurrency))

	<-ctx.Done()
	srv.Shutdown()
	logger.Info("notification worker stopped")
	return nil
}

func handleBookingStatusChanged(notifSvc BookingEventHandler, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		ev, err := tasks.ParseBookingStatusChanged(task)
		if err != nil {
			logger.Error("dropping malformed booking event", zap.Error(err))
			// A payload that cannot be decoded will never succeed on retry.
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		if err := notifSvc.HandleBookingEvent(ctx, ev); err != nil {
			logger.Warn("failed to deliver booking notifications",
				zap.String("bookingID", ev.BookingID),
				zap.String("kind", ev.Kind),
				zap.Error(err),
			)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings the queue database periodically to surface outages in the logs.
func monitorRedisConnection(ctx context.Context, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil && ctx.Err() == nil {
				logger.Warn("notification queue redis unreachable", zap.Error(err))
			}
		}
	}
}
