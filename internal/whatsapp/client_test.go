package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/sdu-se/zibot-go/internal/errors"
	"github.com/sdu-se/zibot-go/internal/logger"
)

func newTestClient(serverURL string) *Client {
	c := NewClient(serverURL, "10987654321", "test-token", logger.New("error"), nil)
	return c
}

func TestClient_SendText(t *testing.T) {
	var captured struct {
		path    string
		auth    string
		payload textMessageRequest
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.payload))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messaging_product":"whatsapp","messages":[{"id":"wamid.test"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.SendText(context.Background(), "4512345678", "hello there")
	require.NoError(t, err)

	assert.Equal(t, "/10987654321/messages", captured.path)
	assert.Equal(t, "Bearer test-token", captured.auth)
	assert.Equal(t, "whatsapp", captured.payload.MessagingProduct)
	assert.Equal(t, "4512345678", captured.payload.To)
	assert.Equal(t, "text", captured.payload.Type)
	assert.Equal(t, "hello there", captured.payload.Text.Body)

	assert.Equal(t, "whatsapp", resp["messaging_product"])
}

func TestClient_SendText_NonSuccessStatusStillDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token","code":190}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.SendText(context.Background(), "4512345678", "hello")

	// The API response is surfaced to the caller even on an auth failure;
	// delivery status lives in the body, not the transport error.
	require.NoError(t, err)
	require.Contains(t, resp, "error")
}

func TestClient_SendText_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // refuse all connections

	client := newTestClient(server.URL)
	_, err := client.SendText(context.Background(), "4512345678", "hello")
	require.Error(t, err)

	var sendErr *domerrors.SendError
	require.ErrorAs(t, err, &sendErr)
	assert.Equal(t, "4512345678", sendErr.Recipient)
}

func TestClient_SendText_MalformedResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.SendText(context.Background(), "4512345678", "hello")

	var sendErr *domerrors.SendError
	require.ErrorAs(t, err, &sendErr)
}

func TestClient_SendText_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(server.URL)
	client.SetHTTPClient(server.Client())
	_, err := client.SendText(ctx, "4512345678", "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c := NewClient("https://graph.facebook.com/v19.0/", "123", "tok", logger.New("error"), nil)
	assert.Equal(t, "https://graph.facebook.com/v19.0", c.baseURL)
}
