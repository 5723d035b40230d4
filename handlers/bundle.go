// File: salonbot/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"salonbot/config"
	"salonbot/middleware"
	"salonbot/services/booking"
	"salonbot/services/session"
)

// HandlerBundle groups all endpoint handlers and the settings routes need.
type HandlerBundle struct {
	// Chat endpoints
	BusinessHandler     gin.HandlerFunc
	SendMessageHandler  gin.HandlerFunc
	GetSessionHandler   gin.HandlerFunc
	ResetSessionHandler gin.HandlerFunc

	// Twilio inbound messages
	TwilioWebhookHandler gin.HandlerFunc

	// Admin endpoints
	ListReservationsHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc

	// Chat calls are charged per client IP, webhook calls per sender number.
	ChatLimiter    *middleware.RateLimiter
	WebhookLimiter *middleware.RateLimiter

	JWTSecret       string
	TwilioAuthToken string
	PublicBaseURL   string
}

// NewHandlerBundle assembles the handlers around the session and reservation services.
func NewHandlerBundle(sessions *session.Service, reservations booking.ReservationService, cfg config.Config) *HandlerBundle {
	chat := &ChatHandler{Sessions: sessions}
	twilio := &TwilioHandler{Sessions: sessions}
	admin := &ReservationHandler{Reservations: reservations}

	return &HandlerBundle{
		BusinessHandler:     chat.Business,
		SendMessageHandler:  chat.SendMessage,
		GetSessionHandler:   chat.GetSession,
		ResetSessionHandler: chat.ResetSession,

		TwilioWebhookHandler: twilio.Webhook,

		ListReservationsHandler: admin.List,

		HealthHandler: Health,

		ChatLimiter:    middleware.NewRateLimiter(cfg.MaxRequestsPerMin),
		WebhookLimiter: middleware.NewKeyedRateLimiter(cfg.MaxRequestsPerMin, middleware.TwilioSenderKey),

		JWTSecret:       cfg.JWTSecret,
		TwilioAuthToken: cfg.TwilioAuthToken,
		PublicBaseURL:   cfg.PublicBaseURL,
	}
}
