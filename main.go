package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotbook/config"
	"slotbook/cron"
	"slotbook/database/store"
	"slotbook/handlers"
	"slotbook/middleware"
	"slotbook/routes"
	"slotbook/services/scheduling"
	"slotbook/services/tasks"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Persistence: MongoDB when configured, otherwise the local JSON file.
	var st store.Store
	var mongoClient *mongo.Client
	if config.AppConfig.DatabaseURL != "" {
		var err error
		mongoClient, err = store.ConnectMongo(context.Background(), config.AppConfig.DatabaseURL)
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		st = store.NewMongoStore(mongoClient)
	} else {
		st = store.NewFileStore(config.AppConfig.DataFile)
		logger.Sugar().Infof("main: using file store at %s", config.AppConfig.DataFile)
	}

	schedulingService := scheduling.NewDefaultSchedulingService(st, config.ConfirmationWindow())
	schedulingService.LeadTime = config.LeadTime()
	defer schedulingService.Close()

	// Optional Redis wiring: availability cache and the reminder queue.
	var redisClient *redis.Client
	if config.AppConfig.RedisAddr != "" {
		utils.InitCache()
		redisClient = utils.GetCacheClient()
		schedulingService.Cache = scheduling.NewRedisCache(redisClient)

		asynqClient := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		})
		defer asynqClient.Close()
		schedulingService.Reminders = &tasks.AsynqReminderScheduler{Client: asynqClient}

		cron.InitReminderWorker(logger)
	}

	// Reconcile state lost to a restart before accepting requests: stale
	// pending appointments are released and live ones get fresh timers.
	if err := schedulingService.Sweep(context.Background()); err != nil {
		logger.Sugar().Fatalf("main: startup expiry sweep failed: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	providerHandler := handlers.NewProviderHandler(schedulingService, logger)
	appointmentHandler := handlers.NewAppointmentHandler(schedulingService, logger)

	handlerBundle := &handlers.HandlerBundle{
		Provider:    providerHandler,
		Appointment: appointmentHandler,
	}
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(redisClient, mongoClient)

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
