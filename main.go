// File: salonbot/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"salonbot/config"
	"salonbot/cron"
	"salonbot/database"
	reservationRepo "salonbot/database/repository/reservation"
	"salonbot/handlers"
	"salonbot/middleware"
	"salonbot/routes"
	"salonbot/services/booking"
	"salonbot/services/dialogue"
	"salonbot/services/notification"
	"salonbot/services/session"
	"salonbot/utils"
)

// rateLimiterIdle is how long an unused bucket is kept. Buckets refill within
// a minute, so anything longer only bounds memory.
const rateLimiterIdle = 10 * time.Minute

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	cfg := config.AppConfig
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	healthChecks := map[string]utils.HealthCheck{}
	var sweepTargets []cron.SweepTarget

	// Session backend.
	var store session.Store
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		if err := utils.InitSessionCache(); err != nil {
			logger.Fatal("main: failed to connect to redis session store", zap.Error(err))
		}
		store = session.NewRedisStore(utils.SessionCacheClient, cfg.SessionTTL)
		healthChecks["redis"] = func(ctx context.Context) error {
			return utils.SessionCacheClient.Ping(ctx).Err()
		}
	default:
		mem := session.NewMemoryStore()
		store = mem
		if cfg.SessionTTL > 0 {
			sweepTargets = append(sweepTargets, cron.SweepTarget{Name: "sessions", Sweeper: mem, Idle: cfg.SessionTTL})
		}
	}

	// Reservation persistence.
	var repo reservationRepo.ReservationRepository
	if cfg.PersistenceEnabled {
		if err := database.InitDB(); err != nil {
			logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
		}
		repo = reservationRepo.NewMongoReservationRepo(database.Database())
		if err := repo.EnsureIndexes(rootCtx); err != nil {
			logger.Warn("main: failed to ensure reservation indexes", zap.Error(err))
		}
		healthChecks["mongo"] = database.Ping
	}

	// Confirmation notifications.
	var queue booking.Enqueuer
	var worker *asynq.Server
	if cfg.NotificationsEnabled {
		client := asynq.NewClient(cron.RedisQueueOpt())
		defer client.Close()
		queue = client

		notifSvc, err := notification.NewDefaultNotificationService(
			notification.LogSMSSender{Logger: logger},
			notification.LogCalendarSync{Logger: logger},
			logger,
		)
		if err != nil {
			logger.Fatal("main: failed to build notification service", zap.Error(err))
		}
		worker = cron.InitNotificationWorker(notifSvc)
	}

	business := cfg.Business()
	reservations := booking.NewDefaultReservationService(repo, queue, business.Name, logger)
	sessions := session.NewService(store, dialogue.NewMachine(business), reservations, logger)

	utils.StartHealthMonitor(rootCtx, 30*time.Second, healthChecks)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.MetricsMiddleware())

	bundle := handlers.NewHandlerBundle(sessions, reservations, cfg)
	routes.RegisterRoutes(router, bundle)

	sweepTargets = append(sweepTargets,
		cron.SweepTarget{Name: "chat_rate_limiter", Sweeper: bundle.ChatLimiter, Idle: rateLimiterIdle},
		cron.SweepTarget{Name: "webhook_rate_limiter", Sweeper: bundle.WebhookLimiter, Idle: rateLimiterIdle},
	)
	sweeper, err := cron.StartSweeper(cfg.SessionSweepSchedule, logger, sweepTargets...)
	if err != nil {
		logger.Fatal("main: failed to start sweeper", zap.Error(err))
	}
	defer sweeper.Stop()

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	logger.Info("Starting server",
		zap.String("addr", srv.Addr),
		zap.String("session_backend", cfg.SessionBackend),
		zap.Bool("persistence", cfg.PersistenceEnabled),
		zap.Bool("notifications", cfg.NotificationsEnabled),
	)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	stopBackground()
	if err := database.CloseDB(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
