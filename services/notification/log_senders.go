package notification

import (
	"context"

	"go.uber.org/zap"

	"salonbot/models"
)

// LogSMSSender writes messages to the log instead of an SMS gateway.
type LogSMSSender struct {
	Logger *zap.Logger
}

func (s LogSMSSender) Send(_ context.Context, to, body string) error {
	s.Logger.Info("SMS (log only)", zap.String("to", to), zap.String("body", body))
	return nil
}

// LogCalendarSync writes bookings to the log instead of a calendar provider.
type LogCalendarSync struct {
	Logger *zap.Logger
}

func (c LogCalendarSync) AddBooking(_ context.Context, p models.BookingConfirmedPayload) error {
	c.Logger.Info("calendar entry (log only)",
		zap.String("reservation_id", p.ReservationID),
		zap.String("service", p.Service),
		zap.String("date", p.Date),
		zap.String("time", p.Time),
	)
	return nil
}
