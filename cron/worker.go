package cron

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"salonbot/config"
	"salonbot/services/notification"
	"salonbot/services/tasks"
	"salonbot/utils"
)

// RedisQueueOpt is the asynq connection for the notification queue.
func RedisQueueOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewNotificationMux routes booking tasks to notifSvc.
func NewNotificationMux(notifSvc notification.NotificationService) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(utils.TaskBookingConfirmed, handleBookingConfirmedTask(notifSvc))
	return mux
}

// InitNotificationWorker runs the async worker in background and returns the
// server so the caller can shut it down.
func InitNotificationWorker(notifSvc notification.NotificationService) *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		RedisQueueOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	mux := NewNotificationMux(notifSvc)

	// Start async worker with retry logic
	go func() {
		logger.Info("Starting notification worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil || errors.Is(err, asynq.ErrServerClosed) {
				return
			}
			logger.Error("notification worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("max_attempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				logger.Error("notification worker gave up; confirmations will queue until restart")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

func handleBookingConfirmedTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		p, err := tasks.ParseBookingConfirmedPayload(task)
		if err != nil {
			logger.Error("dropping malformed booking task", zap.Error(err))
			return errors.Join(err, asynq.SkipRetry)
		}

		if err := notifSvc.NotifyBookingConfirmed(ctx, p); err != nil {
			logger.Warn("booking notification failed, will retry",
				zap.String("reservation_id", p.ReservationID),
				zap.Error(err),
			)
			return err
		}
		return nil
	}
}
