package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "insightcli/internal/errors"
)

// Provider completes a prompt into insight text. Implementations receive
// only aggregate summaries, never raw transactions.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// ProviderConfig holds settings shared by the remote providers
type ProviderConfig struct {
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	APIKey      string
	// BaseURL overrides the provider endpoint, used by tests
	BaseURL string
}

const (
	defaultAnthropicURL   = "https://api.anthropic.com/v1/messages"
	defaultAnthropicModel = "claude-sonnet-4-20250514"
	defaultOpenAIURL      = "https://api.openai.com/v1/chat/completions"
	defaultOpenAIModel    = "gpt-4o"
)

// AnthropicProvider calls the Anthropic Messages API
type AnthropicProvider struct {
	cfg    ProviderConfig
	client *http.Client
}

// NewAnthropicProvider creates an Anthropic-backed provider
func NewAnthropicProvider(cfg ProviderConfig) *AnthropicProvider {
	if cfg.Model == "" {
		cfg.Model = defaultAnthropicModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultAnthropicURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &AnthropicProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Name returns the provider identifier
func (p *AnthropicProvider) Name() string { return "anthropic" }

// Complete sends the prompt to the Messages API and returns the first
// text block of the response.
func (p *AnthropicProvider) Complete(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"model":       p.cfg.Model,
		"max_tokens":  p.cfg.MaxTokens,
		"temperature": p.cfg.Temperature,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.NewProviderError("failed to encode anthropic request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.NewProviderError("failed to build anthropic request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.cfg.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", apperrors.NewProviderError("anthropic request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", apperrors.NewProviderError(
			fmt.Sprintf("anthropic returned status %d: %s", resp.StatusCode, string(data)), nil)
	}

	var decoded struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", apperrors.NewProviderError("failed to decode anthropic response", err)
	}
	if len(decoded.Content) == 0 {
		return "", apperrors.NewProviderError("anthropic response has no content", nil)
	}

	return decoded.Content[0].Text, nil
}

// OpenAIProvider calls the OpenAI Chat Completions API
type OpenAIProvider struct {
	cfg    ProviderConfig
	client *http.Client
}

// NewOpenAIProvider creates an OpenAI-backed provider
func NewOpenAIProvider(cfg ProviderConfig) *OpenAIProvider {
	if cfg.Model == "" {
		cfg.Model = defaultOpenAIModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenAIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &OpenAIProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Name returns the provider identifier
func (p *OpenAIProvider) Name() string { return "openai" }

// Complete sends the prompt to the Chat Completions API
func (p *OpenAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"model":       p.cfg.Model,
		"max_tokens":  p.cfg.MaxTokens,
		"temperature": p.cfg.Temperature,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.NewProviderError("failed to encode openai request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.NewProviderError("failed to build openai request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", apperrors.NewProviderError("openai request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", apperrors.NewProviderError(
			fmt.Sprintf("openai returned status %d: %s", resp.StatusCode, string(data)), nil)
	}

	var decoded struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", apperrors.NewProviderError("failed to decode openai response", err)
	}
	if len(decoded.Choices) == 0 {
		return "", apperrors.NewProviderError("openai response has no choices", nil)
	}

	return decoded.Choices[0].Message.Content, nil
}
