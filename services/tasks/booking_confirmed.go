package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"salonbot/models"
	"salonbot/utils"
)

const bookingConfirmedMaxRetry = 5

// NewBookingConfirmedTask builds the task announcing a confirmed reservation.
// The reservation ID doubles as the task ID so a retried enqueue is rejected
// as a duplicate.
func NewBookingConfirmedTask(payload models.BookingConfirmedPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(utils.TaskBookingConfirmed, b)
	opts := []asynq.Option{
		asynq.MaxRetry(bookingConfirmedMaxRetry),
		asynq.Timeout(30 * time.Second),
	}
	if payload.ReservationID != "" {
		opts = append(opts, asynq.TaskID(payload.ReservationID))
	}
	return task, opts, nil
}

// ParseBookingConfirmedPayload decodes a task created by NewBookingConfirmedTask.
func ParseBookingConfirmedPayload(task *asynq.Task) (models.BookingConfirmedPayload, error) {
	var p models.BookingConfirmedPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %w", task.Type(), err)
	}
	return p, nil
}
