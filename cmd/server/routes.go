// Package main provides the Zibot WhatsApp webhook server entry point.
package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sdu-se/zibot-go/internal/registration"
	"github.com/sdu-se/zibot-go/internal/webhook"
)

// setupRoutes configures all HTTP routes
func setupRoutes(
	router *gin.Engine,
	webhookHandler *webhook.Handler,
	registrationHandler *registration.Handler,
	registry *prometheus.Registry,
) {
	// Root endpoint - simple identity response for uptime checks
	rootHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "zibot"})
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Liveness probe - only that the process is running, never dependencies
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// WhatsApp webhook: GET for the verification handshake, POST for
	// message deliveries. Signature validation is a documented stub.
	router.GET("/webhook", webhookHandler.Verify)
	router.POST("/webhook", webhook.SignatureValidation(), webhookHandler.Handle)

	// Direct registration endpoint
	router.POST("/register-student", registrationHandler.Register)

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}
