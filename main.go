// File: mentorhub/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mentorhub/config"
	"mentorhub/cron"
	"mentorhub/database"
	integrationRepo "mentorhub/database/repository/integration"
	notificationRepo "mentorhub/database/repository/notification"
	reviewRepo "mentorhub/database/repository/review"
	sessionRepo "mentorhub/database/repository/session"
	userRepoPkg "mentorhub/database/repository/user"
	"mentorhub/handlers"
	"mentorhub/middleware"
	"mentorhub/models"
	"mentorhub/routes"
	"mentorhub/services/analytics"
	"mentorhub/services/calendar"
	notificationSvc "mentorhub/services/notification"
	syncSvc "mentorhub/services/sync"
	"mentorhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitStateCache()
	utils.StartHealthMonitor(utils.GetCacheClient(), utils.GetStateCacheClient(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	sessRepo := sessionRepo.NewMongoSessionRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	notifRepo := notificationRepo.NewMongoNotificationRepo()
	integRepo := integrationRepo.NewMongoIntegrationRepo()
	revRepo := reviewRepo.NewMongoReviewRepo()

	// reminder queue producer.
	reminderQueue := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer reminderQueue.Close()

	// services.
	notificationService := &notificationSvc.DefaultNotificationService{
		Repo: notifRepo,
	}

	calendarService := &calendar.DefaultCalendarService{
		Sessions:     sessRepo,
		Users:        userRepo,
		Notifier:     notificationService,
		Cache:        utils.GetCacheClient(),
		ReminderQ:    reminderQueue,
		ReminderLead: 30 * time.Minute,
	}

	syncService := &syncSvc.DefaultSyncService{
		Provider:     syncSvc.NewGoogleCalendarClient(),
		ProviderName: models.ProviderGoogle,
		Integrations: integRepo,
		Sessions:     sessRepo,
		States:       utils.GetStateCacheClient(),
	}

	analyticsService := &analytics.DefaultAnalyticsService{
		Sessions: sessRepo,
		Reviews:  revRepo,
	}

	// Start the reminder worker in background.
	cron.InitReminderWorker(notificationService)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Calendar:      handlers.NewCalendarHandler(calendarService),
		Sync:          handlers.NewSyncHandler(syncService),
		Webhook:       handlers.NewWebhookHandler(sessRepo, utils.GetCacheClient()),
		Analytics:     handlers.NewAnalyticsHandler(analyticsService),
		Notifications: handlers.NewNotificationHandler(notificationService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
