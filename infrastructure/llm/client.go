// Package llm talks to an OpenAI-compatible chat-completions gateway and
// turns its replies into mindmap candidates.
package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"context"

	"mindmap-backend/application/ports"
	"mindmap-backend/pkg/errors"
)

// Client calls a chat-completions endpoint (OpenAI wire format) with Bearer
// auth and a fixed model identifier. It classifies the HTTP outcome but never
// retries; retry policy is the caller's cost decision.
type Client struct {
	http    *http.Client
	apiKey  string
	model   string
	baseURL string
}

// Config holds gateway client settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a gateway client. A zero timeout falls back to 60s; an
// unbounded outbound call to a slow model is never acceptable.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
	}
}

type chatRequest struct {
	Model    string              `json:"model"`
	Messages []ports.ChatMessage `json:"messages"`
}

// Complete sends one synchronous request with the system/user message pair.
// A missing API key is a configuration error and fails before any network
// I/O. 429 and 402 are classified distinctly; every other non-2xx outcome or
// transport failure becomes a gateway error with the status preserved.
func (c *Client) Complete(ctx context.Context, systemInstruction, userMessage string) (*ports.ChatCompletion, error) {
	if c.apiKey == "" {
		return nil, errors.NewConfigurationError("LLM_API_KEY is not configured")
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []ports.ChatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: userMessage},
		},
	})
	if err != nil {
		return nil, errors.NewGatewayError("failed to encode gateway request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewGatewayError("failed to build gateway request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.NewGatewayError("gateway request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errors.NewRateLimitedError()
	case resp.StatusCode == http.StatusPaymentRequired:
		return nil, errors.NewPaymentRequiredError()
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, errors.NewGatewayError(
			fmt.Sprintf("gateway returned status %d", resp.StatusCode),
			fmt.Errorf("%s: %s", resp.Status, string(snippet)),
		)
	}

	var envelope ports.ChatCompletion
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, errors.NewGatewayError("failed to decode gateway response", err)
	}

	return &envelope, nil
}
