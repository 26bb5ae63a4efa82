// Package openai implements the generation provider against an
// OpenAI-compatible chat completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/autoposts/titlegen-backend/internal/config"
	"github.com/autoposts/titlegen-backend/internal/domain"
	"github.com/autoposts/titlegen-backend/internal/provider"
)

// Client calls the chat completions endpoint of an OpenAI-compatible API.
// Any transport or service failure is returned as an error wrapping
// domain.ErrGeneration; there is no retry at this layer. The caller's
// retry loop exists only for similarity rejection, never for transport
// errors.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client from OpenAIConfig.
func NewClient(cfg config.OpenAIConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "openai"),
	}
}

type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	Temperature      float64       `json:"temperature"`
	MaxTokens        int           `json:"max_tokens"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
	PresencePenalty  float64       `json:"presence_penalty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Generate sends one prompt with the given sampling parameters and returns
// the generated text plus token usage.
func (c *Client) Generate(ctx context.Context, prompt string, params domain.GenerationParams) (*provider.TextResult, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature:      params.Temperature,
		MaxTokens:        params.MaxTokens,
		FrequencyPenalty: params.FrequencyPenalty,
		PresencePenalty:  params.PresencePenalty,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "openai request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("openai: request failed: %w: %w", domain.ErrGeneration, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: read body: %w: %w", domain.ErrGeneration, err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("openai: decode json (status %d): %w: %w", resp.StatusCode, domain.ErrGeneration, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := "unexpected status"
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return nil, fmt.Errorf("openai: status %d: %s: %w", resp.StatusCode, msg, domain.ErrGeneration)
	}

	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty choices: %w", domain.ErrGeneration)
	}

	result := &provider.TextResult{
		Content: parsed.Choices[0].Message.Content,
		Usage: domain.TokenUsage{
			PromptTokens:     parsed.Usage.PromptTokens,
			CompletionTokens: parsed.Usage.CompletionTokens,
			TotalTokens:      parsed.Usage.TotalTokens,
		},
	}

	c.log.DebugContext(ctx, "openai response",
		slog.Int("status", resp.StatusCode),
		slog.Int("total_tokens", result.Usage.TotalTokens),
	)

	return result, nil
}
