package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ZaguanLabs/tweetlate"
)

// OpenAIClient translates via OpenAI chat completions. Texts arrive with
// their sigils already masked; the prompt instructs the model to copy
// XZ<n> placeholders through verbatim.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	limiter     *tweetlate.RateLimiter
}

// OpenAIConfig holds configuration for the OpenAI client.
type OpenAIConfig struct {
	APIKey            string  // OpenAI API key
	Model             string  // Model to use (default: "gpt-4o-mini")
	Temperature       float32 // Temperature for generation (default: 0.3)
	BaseURL           string  // Custom base URL (optional)
	RequestsPerMinute int     // Rate limit; 0 disables pacing
}

// NewOpenAIClient creates an OpenAI translation client.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	var limiter *tweetlate.RateLimiter
	if cfg.RequestsPerMinute > 0 {
		limiter = tweetlate.NewRateLimiter(cfg.RequestsPerMinute)
	}

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
		limiter:     limiter,
	}
}

// Translate translates a single masked text.
func (c *OpenAIClient) Translate(ctx context.Context, sub tweetlate.Subscription, text string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(sub)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", &tweetlate.TranslateError{
			StatusCode: apiStatus(err),
			Message:    "OpenAI API call failed",
			Cause:      err,
			Retryable:  retryableAPIError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return "", &tweetlate.TranslateError{
			Message:   "no response from OpenAI",
			Retryable: true,
		}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func systemPrompt(sub tweetlate.Subscription) string {
	return fmt.Sprintf(`You are an expert native translator. Translate the user's message from %s into idiomatic %s.

Rules:
- Tokens of the form XZ0, XZ1, XZ2, ... are placeholders. Copy them through EXACTLY as they appear; never translate, move, or remove them.
- Return only the translation, with no commentary or quotes.
- Preserve the original's tone; these are short social-media posts, so keep the register casual.`,
		sub.SourceLang, sub.TargetLang)
}

// apiStatus extracts the HTTP status from an OpenAI API error, 0 when
// unavailable.
func apiStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	return 0
}

// retryableAPIError classifies an OpenAI failure: rate limiting, server
// errors, and transport failures are retryable; bad requests are not.
func retryableAPIError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
	}
	// Transport-level failure with no structured status.
	return true
}

// Verify OpenAIClient implements TranslationClient
var _ TranslationClient = (*OpenAIClient)(nil)
