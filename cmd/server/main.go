// Package main provides the Zibot WhatsApp webhook server entry point.
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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sdu-se/zibot-go/internal/assistant"
	"github.com/sdu-se/zibot-go/internal/config"
	"github.com/sdu-se/zibot-go/internal/logger"
	"github.com/sdu-se/zibot-go/internal/metrics"
	"github.com/sdu-se/zibot-go/internal/registration"
	"github.com/sdu-se/zibot-go/internal/schedule"
	"github.com/sdu-se/zibot-go/internal/sentry"
	"github.com/sdu-se/zibot-go/internal/store"
	"github.com/sdu-se/zibot-go/internal/webhook"
	"github.com/sdu-se/zibot-go/internal/whatsapp"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.LogLevel)
	log.Info("Starting Zibot WhatsApp webhook server")

	// Initialize error tracking (optional)
	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize Sentry, error tracking disabled")
	} else if sentry.IsEnabled() {
		log.Info("Error tracking initialized")
	}

	// Create Prometheus registry with Go and process collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Connect to the record store
	storeClient, err := store.NewClient(context.Background(), store.Config{
		CredentialsFile: cfg.CredentialsFile,
		DatabaseURL:     cfg.DatabaseURL,
	}, log, m)
	if err != nil {
		log.WithError(err).Error("Failed to connect to record store")
		os.Exit(1)
	}
	log.WithField("database_url", cfg.DatabaseURL).Info("Record store connected")

	// Create outbound message sender
	sender := whatsapp.NewClient(cfg.GraphAPIBaseURL, cfg.PhoneNumberID, cfg.WhatsAppToken, log, m)
	log.Info("WhatsApp client created")

	// Create assistant fallback
	bot := assistant.New(cfg.OpenAIAPIKey, cfg.AssistantModel, log, m)
	log.WithField("model", cfg.AssistantModel).Info("Assistant created")

	// Create schedule service
	scheduleService := schedule.NewService(storeClient, cfg.DefaultDepartment, log)

	// Create webhook handler
	webhookHandler := webhook.NewHandler(webhook.HandlerConfig{
		VerifyToken: cfg.VerifyToken,
		Store:       storeClient,
		Schedule:    scheduleService,
		Sender:      sender,
		Assistant:   bot,
		Metrics:     m,
		Logger:      log,
	})

	// Create registration handler
	registrationHandler := registration.NewHandler(storeClient, log)
	log.Info("Handlers created")

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	if sentry.IsEnabled() {
		router.Use(sentryMiddleware())
	}

	// Setup routes
	setupRoutes(router, webhookHandler, registrationHandler, registry)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second, // outbound store/API calls carry no own deadline
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Failed to start server")
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	if sentry.IsEnabled() {
		sentry.Flush(2 * time.Second)
	}

	log.Info("Server stopped")
}
