package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"salonbot/handlers"
	"salonbot/middleware"
)

// RegisterChatRoutes registers the JSON chat API used by the web widget.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	chat := r.Group("/api/chat")
	{
		chat.Use(hb.ChatLimiter.Middleware())
		chat.GET("/business", hb.BusinessHandler)
		chat.POST("/sessions/:sessionID/messages", hb.SendMessageHandler)
		chat.GET("/sessions/:sessionID", hb.GetSessionHandler)
		chat.DELETE("/sessions/:sessionID", hb.ResetSessionHandler)
	}
}

// RegisterWebhookRoutes registers inbound messaging webhooks. The signature
// is checked before the limiter so forged senders never get a bucket.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	webhook := r.Group("/webhook")
	{
		webhook.POST("/twilio",
			middleware.TwilioSignatureVerification(hb.TwilioAuthToken, hb.PublicBaseURL),
			hb.WebhookLimiter.Middleware(),
			hb.TwilioWebhookHandler,
		)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware(hb.JWTSecret))
		adminGroup.GET("/reservations", hb.ListReservationsHandler)
	}
}

// RegisterHealthRoute registers health-check and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
