// Package config defines environment variable keys for configuration.
package config

//nolint:gosec // Environment variable keys are not credentials.
const (
	// Core (Required)
	EnvCredentialsFile = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvDatabaseURL     = "ZIBOT_FIREBASE_DATABASE_URL"
	EnvWhatsAppToken   = "ZIBOT_WHATSAPP_TOKEN"
	EnvPhoneNumberID   = "ZIBOT_PHONE_NUMBER_ID"
	EnvVerifyToken     = "ZIBOT_WEBHOOK_VERIFY_TOKEN"
	EnvOpenAIAPIKey    = "ZIBOT_OPENAI_API_KEY"

	// Server
	EnvPort            = "ZIBOT_PORT"
	EnvLogLevel        = "ZIBOT_LOG_LEVEL"
	EnvShutdownTimeout = "ZIBOT_SHUTDOWN_TIMEOUT"

	// Bot
	EnvDefaultDepartment = "ZIBOT_DEFAULT_DEPARTMENT"
	EnvAssistantModel    = "ZIBOT_ASSISTANT_MODEL"

	// WhatsApp Cloud API (override for tests / API version bumps)
	EnvGraphAPIBaseURL = "ZIBOT_GRAPH_API_BASE_URL"

	// Error tracking (optional)
	EnvSentryDSN         = "ZIBOT_SENTRY_DSN"
	EnvSentryEnvironment = "ZIBOT_SENTRY_ENVIRONMENT"
)
