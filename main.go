package main

import (
	"os"
	"os/signal"
	"syscall"

	"devconnector/internal/config"
	"devconnector/internal/database"
	"devconnector/internal/services"
	"devconnector/pkg/logger"
	"devconnector/pkg/rabbitmq"

	"github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logger.New(cfg.AppName, cfg.Env)

	// --- Database ---
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// --- Events (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		// Debug tap: draining our own queue takes events away from downstream consumers.
		if cfg.RabbitMQConsume {
			err = mqClient.ConsumeEvents(func(event rabbitmq.Event) error {
				log.WithFields(logrus.Fields{"type": event.Type, "payload": event.Payload}).Info("profile event")
				return nil
			})
			if err != nil {
				logger.LogError("Failed to start RabbitMQ consumer", err, logrus.Fields{"queue": cfg.RabbitMQQueue})
			}
		}
	} else {
		log.Info("RABBITMQ_URL is empty, event publishing disabled")
	}

	app := newApp(cfg, db, publisher)

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Infof("Starting server on %s", cfg.Port)
		if err := app.Listen(cfg.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logger.LogError("Error during Fiber shutdown", err, nil)
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.LogError("Error closing database", err, nil)
		}
	}
	log.Info("Server gracefully stopped")
}
