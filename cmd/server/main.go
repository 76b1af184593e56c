package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorent/internal/config"
	"gorent/internal/handlers"
	"gorent/internal/repositories/mongodb"
	"gorent/internal/services"
	"gorent/pkg/cache"
	"gorent/pkg/database"
	"gorent/pkg/logger"
	"gorent/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.App.LogLevel),
		Format:     cfg.App.LogFormat,
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		appLogger.WithError(err).Fatal("Failed to run index migrations")
	}

	// Redis is advisory; fall back to direct reads when it is down.
	var cacheService services.CacheService = services.NoopCache{}
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Warn("Redis unavailable, running without cache")
	} else {
		cacheService = redisCache
		defer redisCache.Close()
	}

	// Repositories
	userRepo := mongodb.NewUserRepository(db.Database)
	carRepo := mongodb.NewCarRepository(db.Database, cacheService)
	bookingRepo := mongodb.NewBookingRepository(db)
	feedbackRepo := mongodb.NewFeedbackRepository(db.Database)
	locationRepo := mongodb.NewLocationRepository(db.Database)

	// Services
	authService := services.NewAuthService(userRepo, cfg.Security, appLogger)
	bookingService := services.NewBookingService(bookingRepo, carRepo, userRepo, appLogger)
	carService := services.NewCarService(carRepo, bookingRepo, feedbackRepo, appLogger)
	userService := services.NewUserService(userRepo, appLogger)
	feedbackService := services.NewFeedbackService(feedbackRepo, carRepo, userRepo, appLogger)
	reportService := services.NewReportService(bookingRepo, carRepo, userRepo, locationRepo, appLogger)

	// Handlers
	h := &routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Booking:  handlers.NewBookingHandler(bookingService),
		Car:      handlers.NewCarHandler(carService, bookingService, feedbackService),
		User:     handlers.NewUserHandler(userService),
		Feedback: handlers.NewFeedbackHandler(feedbackService),
		Report:   handlers.NewReportHandler(reportService),
		Home:     handlers.NewHomeHandler(carService, feedbackService, cfg.App.Version),
	}

	router := routes.SetupRouter(cfg, h)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.WithField("port", cfg.App.Port).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}
	appLogger.Info("Server stopped")
}
