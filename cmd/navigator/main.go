package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sage-glasses/service-navigation/internal/application"
	"github.com/sage-glasses/service-navigation/internal/config"
	"github.com/sage-glasses/service-navigation/internal/events"
	"github.com/sage-glasses/service-navigation/internal/handler"
	"github.com/sage-glasses/service-navigation/internal/logger"
	"github.com/sage-glasses/service-navigation/internal/routing"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-navigation")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-navigation",
		zap.String("port", cfg.Port),
		zap.String("osrm_base_url", cfg.OSRMBaseURL),
		zap.Bool("kafka_enabled", cfg.KafkaEnabled),
	)

	// Initialize route provider
	provider := routing.NewProvider(cfg.NominatimBaseURL, cfg.OSRMBaseURL, cfg.UpstreamTimeout, log)

	// Initialize event publisher
	var publisher application.EventPublisher = application.NopEventPublisher{}
	var producer *events.Producer
	if cfg.KafkaEnabled {
		producer = events.NewProducer(cfg.KafkaBrokers, log)
		defer func() { _ = producer.Close() }()
		publisher = events.NewKafkaEventPublisher(producer, log)
	}

	// Initialize the navigation engine
	navService := application.NewNavigationService(provider, publisher, log, cfg.ProximityMeters)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the device command consumer in a goroutine
	var commandConsumer *events.DeviceCommandConsumer
	if cfg.KafkaEnabled {
		groupID := cfg.KafkaGroupPrefix + "navigation-service"
		commandConsumer = events.NewDeviceCommandConsumer(cfg.KafkaBrokers, groupID, navService, log)
		defer func() { _ = commandConsumer.Close() }()

		go func() {
			log.Info("starting device command consumer")
			if err := commandConsumer.Start(ctx); err != nil && err != context.Canceled {
				log.Error("device command consumer error", zap.Error(err))
			}
		}()
	}

	// Periodic expiry cleanup
	go func() {
		ticker := time.NewTicker(cfg.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				navService.CleanupExpiredSessions(ctx, cfg.SessionTimeout)
			case <-ctx.Done():
				return
			}
		}
	}()

	// Setup Gin router for the ops surface
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	statusHandler := handler.NewStatusHandler(navService)
	statusHandler.RegisterRoutes(&router.RouterGroup)

	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("ops HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-navigation...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-navigation stopped")
}
