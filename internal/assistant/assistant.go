// Package assistant provides the free-text fallback: questions that match
// no scheduling intent are forwarded to a chat-completion API with the
// bot's fixed persona.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/sdu-se/zibot-go/internal/logger"
	"github.com/sdu-se/zibot-go/internal/metrics"
)

// SystemPrompt is the fixed persona sent with every completion request.
const SystemPrompt = "Your name is Zibot and you are a helpful assistant for " +
	"Software Engineering students at SDU. Answer questions clearly and concisely."

// Assistant answers free-form questions with a single-turn chat completion.
type Assistant struct {
	client  openai.Client
	model   string
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// Option configures the Assistant.
type Option func(*[]option.RequestOption)

// WithBaseURL overrides the completion API endpoint. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(opts *[]option.RequestOption) {
		*opts = append(*opts, option.WithBaseURL(baseURL))
	}
}

// New creates a new Assistant using the given API key and model.
func New(apiKey, model string, log *logger.Logger, m *metrics.Metrics, opts ...Option) *Assistant {
	requestOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	for _, opt := range opts {
		opt(&requestOpts)
	}

	return &Assistant{
		client:  openai.NewClient(requestOpts...),
		model:   model,
		logger:  log.WithModule("assistant"),
		metrics: m,
	}
}

// Reply sends the user text as the sole user message, with the fixed system
// persona, and returns the trimmed reply text. Failures are propagated to
// the caller; the dispatcher turns them into the user-facing apology.
func (a *Assistant) Reply(ctx context.Context, text string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: a.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			openai.UserMessage(text),
		},
	}

	start := time.Now()
	resp, err := a.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)

	if err != nil {
		a.record("error", duration)
		a.logger.WithError(err).
			WithField("duration_ms", duration.Milliseconds()).
			WarnContext(ctx, "Chat completion failed")
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		a.record("error", duration)
		return "", errors.New("empty response from model")
	}

	a.record("success", duration)
	a.logger.WithField("total_tokens", resp.Usage.TotalTokens).
		WithField("duration_ms", duration.Milliseconds()).
		DebugContext(ctx, "Chat completion finished")

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (a *Assistant) record(status string, duration time.Duration) {
	if a.metrics == nil {
		return
	}
	a.metrics.RecordAssistantRequest(status, duration.Seconds())
}
