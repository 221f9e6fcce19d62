package openai_adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/port"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	DefaultURL   = "https://api.openai.com/v1/chat/completions"
	DefaultModel = "gpt-3.5-turbo"

	maxTokens   = 300
	temperature = 0.7
)

type Config struct {
	APIKey     string
	URL        string
	Model      string
	MaxRetries int
	Timeout    time.Duration
}

// ChatClient - клиент chat-completions API с повторами на 5xx и сетевых ошибках.
type ChatClient struct {
	apiKey     string
	url        string
	model      string
	httpClient *retryablehttp.Client
}

func NewChatClient(cfg Config, logger port.LoggerPort) (*ChatClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key cannot be empty")
	}
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	retryClient.Logger = &leveledLoggerBridge{logger: logger.WithFields(port.Fields{"component": "OpenAIChatClient"})}

	return &ChatClient{
		apiKey:     cfg.APIKey,
		url:        cfg.URL,
		model:      cfg.Model,
		httpClient: retryClient,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete отправляет системный контекст и сообщение пользователя, возвращает текст первого ответа.
func (c *ChatClient) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "OpenAIChatClient",
		"method":    "Complete",
		"model":     c.model,
	})

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		clientLogger.Error("Completion request failed", err, nil)
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		clientLogger.Warn("Undecodable completion response", port.Fields{"status": resp.StatusCode})
		return "", fmt.Errorf("failed to decode completion response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := http.StatusText(resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		clientLogger.Warn("Completion API returned an error", port.Fields{"status": resp.StatusCode})
		return "", fmt.Errorf("completion api error (status %d): %s", resp.StatusCode, msg)
	}

	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("completion api returned no choices")
	}

	clientLogger.Debug("Completion received", port.Fields{"duration": time.Since(start).String()})
	return parsed.Choices[0].Message.Content, nil
}

// leveledLoggerBridge подключает LoggerPort к retryablehttp.LeveledLogger.
type leveledLoggerBridge struct {
	logger port.LoggerPort
}

func toFields(keysAndValues ...interface{}) port.Fields {
	fields := make(port.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return fields
}

func (b *leveledLoggerBridge) Error(msg string, keysAndValues ...interface{}) {
	b.logger.Error(msg, nil, toFields(keysAndValues...))
}

func (b *leveledLoggerBridge) Info(msg string, keysAndValues ...interface{}) {
	b.logger.Info(msg, toFields(keysAndValues...))
}

func (b *leveledLoggerBridge) Debug(msg string, keysAndValues ...interface{}) {
	b.logger.Debug(msg, toFields(keysAndValues...))
}

func (b *leveledLoggerBridge) Warn(msg string, keysAndValues ...interface{}) {
	b.logger.Warn(msg, toFields(keysAndValues...))
}
