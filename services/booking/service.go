package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	reservationRepo "salonbot/database/repository/reservation"
	"salonbot/models"
	"salonbot/services/tasks"
)

// DefaultReservationService persists confirmed bookings and announces them
// on the task queue. Either dependency may be nil to disable that half.
type DefaultReservationService struct {
	repo     reservationRepo.ReservationRepository
	queue    Enqueuer
	business string
	logger   *zap.Logger
	now      func() time.Time
}

func NewDefaultReservationService(repo reservationRepo.ReservationRepository, queue Enqueuer, business string, logger *zap.Logger) *DefaultReservationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultReservationService{
		repo:     repo,
		queue:    queue,
		business: business,
		logger:   logger,
		now:      time.Now,
	}
}

// BookingCompleted stores the reservation and enqueues the confirmation task.
func (s *DefaultReservationService) BookingCompleted(ctx context.Context, sess models.BookingSession) error {
	res := s.reservationFrom(sess)

	if s.repo != nil {
		if _, err := s.repo.Create(ctx, res); err != nil {
			return fmt.Errorf("store reservation for session %s: %w", sess.SessionID, err)
		}
		s.logger.Info("reservation stored",
			zap.String("reservation_id", res.ID),
			zap.String("session_id", sess.SessionID),
			zap.String("channel", res.Channel),
		)
	}

	if s.queue == nil {
		return nil
	}
	task, opts, err := tasks.NewBookingConfirmedTask(payloadFrom(res))
	if err != nil {
		return fmt.Errorf("build booking task: %w", err)
	}
	if _, err := s.queue.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("enqueue booking task: %w", err)
	}
	return nil
}

// ListReservations returns stored reservations, newest first.
func (s *DefaultReservationService) ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	if s.repo == nil {
		return nil, ErrPersistenceDisabled
	}
	return s.repo.List(ctx, filter)
}

func (s *DefaultReservationService) reservationFrom(sess models.BookingSession) models.Reservation {
	return models.Reservation{
		ID:          uuid.New().String(),
		Business:    s.business,
		Service:     sess.Draft.Service,
		Date:        sess.Draft.Date,
		Time:        sess.Draft.Time,
		ClientName:  sess.Draft.Name,
		ClientPhone: sess.Draft.Phone,
		SessionID:   sess.SessionID,
		Channel:     ChannelFor(sess.SessionID),
		Status:      models.ReservationStatusConfirmed,
		CreatedAt:   s.now().UTC(),
	}
}

func payloadFrom(r models.Reservation) models.BookingConfirmedPayload {
	return models.BookingConfirmedPayload{
		ReservationID: r.ID,
		Business:      r.Business,
		Service:       r.Service,
		Date:          r.Date,
		Time:          r.Time,
		ClientName:    r.ClientName,
		ClientPhone:   r.ClientPhone,
		SessionID:     r.SessionID,
	}
}

// ChannelFor infers the messaging channel from a session ID. Twilio
// WhatsApp senders look like "whatsapp:+385...", SMS senders are bare
// E.164 numbers, anything else came through the chat API.
func ChannelFor(sessionID string) string {
	switch {
	case strings.HasPrefix(sessionID, ChannelWhatsApp+":"):
		return ChannelWhatsApp
	case strings.HasPrefix(sessionID, "+"):
		return ChannelSMS
	default:
		return ChannelWeb
	}
}
