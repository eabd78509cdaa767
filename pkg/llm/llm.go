// Package llm provides the language model client used by the deck build
// workflow. It wraps langchaingo's OpenAI-compatible client so any endpoint
// speaking that protocol (Groq, OpenAI, local inference servers) can serve
// stage proposals.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrInvalidConfig indicates invalid client configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyResponse indicates the model returned no content.
	ErrEmptyResponse = errors.New("model returned empty response")
)

// Request is a single proposal request to the model. System sets the stage
// persona, Prompt carries the stage inputs, and Temperature controls
// sampling.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// ProposalClient generates free-form text completions for workflow stages.
// Implementations must honor context cancellation.
type ProposalClient interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Config holds configuration for the model client.
type Config struct {
	// BaseURL is the OpenAI-compatible endpoint.
	// For Groq: https://api.groq.com/openai/v1
	BaseURL string

	// Model is the chat model to use, e.g. llama-3.3-70b-versatile.
	Model string

	// APIKey authenticates against the endpoint.
	APIKey string
}

// ConfigFromEnv creates a Config from environment variables.
//
// Environment variables:
//   - LLM_BASE_URL: endpoint (default: https://api.groq.com/openai/v1)
//   - LLM_MODEL: model name (default: llama-3.3-70b-versatile)
//   - GROQ_API_KEY: API key
func ConfigFromEnv() Config {
	baseURL := os.Getenv("LLM_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}

	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}

	return Config{
		BaseURL: baseURL,
		Model:   model,
		APIKey:  os.Getenv("GROQ_API_KEY"),
	}
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base URL required", ErrInvalidConfig)
	}

	if c.Model == "" {
		return fmt.Errorf("%w: model required", ErrInvalidConfig)
	}

	if c.APIKey == "" {
		return fmt.Errorf("%w: API key required", ErrInvalidConfig)
	}

	return nil
}
