package booking

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"

	"salonbot/models"
)

var ErrPersistenceDisabled = errors.New("reservation persistence is disabled")

// ReservationService turns confirmed dialogue sessions into reservations and
// serves them back to admins. It satisfies session.CompletionListener.
type ReservationService interface {
	BookingCompleted(ctx context.Context, s models.BookingSession) error
	ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)
}

// Enqueuer is the subset of *asynq.Client the service needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Reservation channels, derived from the session ID.
const (
	ChannelWhatsApp = "whatsapp"
	ChannelSMS      = "sms"
	ChannelWeb      = "web"
)
