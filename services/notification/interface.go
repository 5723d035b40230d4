package notification

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"salonbot/models"
)

// NotificationService delivers the side effects of a confirmed booking.
type NotificationService interface {
	NotifyBookingConfirmed(ctx context.Context, p models.BookingConfirmedPayload) error
}

// SMSSender delivers a text message to a phone number.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// CalendarSync records a booking in the salon's calendar.
type CalendarSync interface {
	AddBooking(ctx context.Context, p models.BookingConfirmedPayload) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	sms      SMSSender
	calendar CalendarSync
	logger   *zap.Logger
}

func NewDefaultNotificationService(sms SMSSender, calendar CalendarSync, logger *zap.Logger) (*DefaultNotificationService, error) {
	if sms == nil || calendar == nil {
		return nil, fmt.Errorf("notification service initialization error: sms sender or calendar is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{sms: sms, calendar: calendar, logger: logger}, nil
}

// NotifyBookingConfirmed texts the client and syncs the calendar. Both are
// attempted; the returned error joins whichever failed so the task is retried.
func (s *DefaultNotificationService) NotifyBookingConfirmed(ctx context.Context, p models.BookingConfirmedPayload) error {
	var errs []error

	if p.ClientPhone == "" {
		s.logger.Warn("booking has no client phone, skipping SMS", zap.String("reservation_id", p.ReservationID))
	} else if err := s.sms.Send(ctx, p.ClientPhone, ConfirmationText(p)); err != nil {
		errs = append(errs, fmt.Errorf("send confirmation SMS: %w", err))
	}

	if err := s.calendar.AddBooking(ctx, p); err != nil {
		errs = append(errs, fmt.Errorf("calendar sync: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.logger.Info("booking notifications delivered", zap.String("reservation_id", p.ReservationID))
	return nil
}

// ConfirmationText is the SMS sent to the client.
func ConfirmationText(p models.BookingConfirmedPayload) string {
	return fmt.Sprintf("%s: vaša rezervacija (%s) je potvrđena za %s u %s. Vidimo se!",
		p.Business, p.Service, p.Date, p.Time)
}
