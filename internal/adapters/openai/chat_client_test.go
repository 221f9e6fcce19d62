package openai_adapter

import (
	"context"
	"encoding/json"
	"marketplace-service/internal/contextkeys"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, url string, retries int) *ChatClient {
	t.Helper()
	client, err := NewChatClient(Config{
		APIKey:     "sk-test",
		URL:        url,
		MaxRetries: retries,
		Timeout:    2 * time.Second,
	}, contextkeys.LoggerFromContext(context.Background()))
	require.NoError(t, err)
	return client
}

func TestComplete_Success(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hello there"}}]}`))
	}))
	defer server.Close()

	reply, err := newTestClient(t, server.URL, 0).Complete(context.Background(), "system ctx", "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello there", reply)

	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, maxTokens, got.MaxTokens)
	assert.InDelta(t, temperature, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "system ctx", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
}

func TestComplete_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer server.Close()

	reply, err := newTestClient(t, server.URL, 2).Complete(context.Background(), "s", "m")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestComplete_ClientErrorIsReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, 0).Complete(context.Background(), "s", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad key")
}

func TestComplete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, 0).Complete(context.Background(), "s", "m")
	assert.Error(t, err)
}

func TestNewChatClient_RequiresKey(t *testing.T) {
	_, err := NewChatClient(Config{}, contextkeys.LoggerFromContext(context.Background()))
	assert.Error(t, err)
}
