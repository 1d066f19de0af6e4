// Package whatsapp implements the outbound side of the WhatsApp Cloud API:
// sending text messages to a recipient through the Graph API.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	domerrors "github.com/sdu-se/zibot-go/internal/errors"
	"github.com/sdu-se/zibot-go/internal/logger"
	"github.com/sdu-se/zibot-go/internal/metrics"
)

// Client sends messages through the WhatsApp Cloud API.
//
// Calls are synchronous with no retry and no per-call timeout override;
// the platform-level HTTP timeout is the only backstop.
type Client struct {
	baseURL       string
	phoneNumberID string
	token         string
	httpClient    *http.Client
	logger        *logger.Logger
	metrics       *metrics.Metrics
}

// textMessageRequest is the Cloud API send-message payload for type "text".
type textMessageRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type textBody struct {
	Body string `json:"body"`
}

// NewClient creates a new WhatsApp Cloud API client.
// baseURL is the Graph API prefix without trailing slash,
// e.g. "https://graph.facebook.com/v19.0".
func NewClient(baseURL, phoneNumberID, token string, log *logger.Logger, m *metrics.Metrics) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		phoneNumberID: phoneNumberID,
		token:         token,
		httpClient:    http.DefaultClient,
		logger:        log.WithModule("whatsapp"),
		metrics:       m,
	}
}

// SendText posts a text message to the recipient and returns the decoded
// response body. The response is returned regardless of HTTP status; the
// status code and raw body are logged for troubleshooting.
func (c *Client) SendText(ctx context.Context, to, message string) (map[string]any, error) {
	payload := textMessageRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             textBody{Body: message},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		c.recordSend(err)
		return nil, domerrors.NewSendError(to, fmt.Errorf("marshal payload: %w", err))
	}

	url := c.baseURL + "/" + c.phoneNumberID + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.recordSend(err)
		return nil, domerrors.NewSendError(to, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordSend(err)
		return nil, domerrors.NewSendError(to, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordSend(err)
		return nil, domerrors.NewSendError(to, fmt.Errorf("read response: %w", err))
	}

	c.logger.WithField("status", resp.StatusCode).
		WithField("response", string(raw)).
		DebugContext(ctx, "WhatsApp API response")

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		c.recordSend(err)
		return nil, domerrors.NewSendError(to, fmt.Errorf("decode response: %w", err))
	}

	c.recordSend(nil)
	return decoded, nil
}

// SetHTTPClient replaces the underlying HTTP client. Used by tests.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

func (c *Client) recordSend(err error) {
	if c.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordMessageSent(status)
}
