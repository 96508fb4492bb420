package main

import (
	"context"
	"os"
	"time"

	"canteen_service/config"
	"canteen_service/internal/delivery"
	"canteen_service/internal/domain"
	"canteen_service/internal/messaging"
	"canteen_service/internal/middleware"
	"canteen_service/internal/repository"
	"canteen_service/internal/usecase"
	"canteen_service/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
		logger.Warnf("Invalid LOG_LEVEL '%s', using default: %s", cfg.LogLevel, logLevel.String())
	}
	logger.SetLevel(logLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.Info("Starting Canteen Service...")

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connection established.")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.ApplySchema(ctx, database); err != nil {
		cancel()
		logger.Fatalf("Failed to apply database schema: %v", err)
	}
	cancel()
	logger.Info("Database schema is up to date.")

	var notifier domain.OrderNotifier
	if cfg.RabbitMQURL != "" {
		publisher, err := messaging.NewPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			logger.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		notifier = publisher
		logger.Info("Order-placed publisher initialized.")
	} else {
		logger.Warn("RABBITMQ_URL not set, order-placed notifications disabled.")
	}

	// --- Dependency Injection ---
	orderRepo := repository.NewPostgresOrderRepository(database, logger)
	menuRepo := repository.NewPostgresMenuRepository(database, logger)
	userRepo := repository.NewPostgresUserRepository(database, logger)
	logger.Info("Repositories initialized.")

	orderUseCase := usecase.NewOrderUseCase(orderRepo, menuRepo, notifier, logger)
	menuUseCase := usecase.NewMenuUseCase(menuRepo, logger)
	userUseCase := usecase.NewUserUseCase(userRepo, logger)
	logger.Info("Use cases initialized.")

	orderHandler := delivery.NewOrderHandler(orderUseCase, logger)
	menuHandler := delivery.NewMenuHandler(menuUseCase, logger)
	userHandler := delivery.NewUserHandler(userUseCase, logger)
	logger.Info("Handlers initialized.")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.RedirectTrailingSlash = false

	userHandler.RegisterRoutes(router)
	menuHandler.RegisterRoutes(router)

	authorized := router.Group("")
	authorized.Use(middleware.Authenticate(userUseCase, logger))
	orderHandler.RegisterRoutes(authorized)
	logger.Info("Routes registered.")

	logger.Infof("Starting server on %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		logger.Errorf("Failed to start server on %s: %v", cfg.Port, err)
		os.Exit(1)
	}
}
