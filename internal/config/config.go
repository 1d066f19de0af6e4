// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the server, the record store, the messaging API, and the assistant.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Defaults that mirror the deployed bot.
const (
	// DefaultGraphAPIBaseURL is the WhatsApp Cloud API endpoint prefix.
	// The phone number ID and "/messages" are appended per request.
	DefaultGraphAPIBaseURL = "https://graph.facebook.com/v19.0"

	// DefaultDepartment is assigned to unregistered students.
	DefaultDepartment = "SE"

	// DefaultAssistantModel is the chat-completion model for the fallback.
	DefaultAssistantModel = "gpt-4o-mini"
)

// Config holds all application configuration
type Config struct {
	// Record store (Firebase Realtime Database)
	CredentialsFile string
	DatabaseURL     string

	// WhatsApp Cloud API
	WhatsAppToken   string
	PhoneNumberID   string
	VerifyToken     string
	GraphAPIBaseURL string

	// Assistant
	OpenAIAPIKey   string
	AssistantModel string

	// Bot
	DefaultDepartment string

	// Server
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Error tracking (optional; disabled when DSN is empty)
	SentryDSN         string
	SentryEnvironment string
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then reads from env vars.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		CredentialsFile: getEnv(EnvCredentialsFile, ""),
		DatabaseURL:     getEnv(EnvDatabaseURL, ""),

		WhatsAppToken:   getEnv(EnvWhatsAppToken, ""),
		PhoneNumberID:   getEnv(EnvPhoneNumberID, ""),
		VerifyToken:     getEnv(EnvVerifyToken, ""),
		GraphAPIBaseURL: getEnv(EnvGraphAPIBaseURL, DefaultGraphAPIBaseURL),

		OpenAIAPIKey:   getEnv(EnvOpenAIAPIKey, ""),
		AssistantModel: getEnv(EnvAssistantModel, DefaultAssistantModel),

		DefaultDepartment: getEnv(EnvDefaultDepartment, DefaultDepartment),

		Port:            getEnv(EnvPort, "5000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, 30*time.Second),

		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.CredentialsFile == "" {
		errs = append(errs, errors.New(EnvCredentialsFile+" is required"))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New(EnvDatabaseURL+" is required"))
	}
	if c.WhatsAppToken == "" {
		errs = append(errs, errors.New(EnvWhatsAppToken+" is required"))
	}
	if c.PhoneNumberID == "" {
		errs = append(errs, errors.New(EnvPhoneNumberID+" is required"))
	}
	if c.VerifyToken == "" {
		errs = append(errs, errors.New(EnvVerifyToken+" is required"))
	}
	if c.OpenAIAPIKey == "" {
		errs = append(errs, errors.New(EnvOpenAIAPIKey+" is required"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New(EnvPort+" is required"))
	}
	if c.DefaultDepartment == "" {
		errs = append(errs, errors.New(EnvDefaultDepartment+" must not be empty"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvShutdownTimeout, c.ShutdownTimeout))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
