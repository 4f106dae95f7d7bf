// Package llm provides the generative-model capability behind the
// summarize and semantic-fallback branches.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"
)

// ErrEmptyCompletion is returned when the model responds without any text.
var ErrEmptyCompletion = errors.New("model returned empty completion")

// Gemini is a synchronous, single-shot text generation client. All context
// is passed in the prompt; the model holds no conversation state.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// Config configures the Gemini generation client.
type Config struct {
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// NewGemini creates the generation client. The API key is read from the
// configured environment variable.
func NewGemini(cfg Config) (*Gemini, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "GEMINI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: key})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: cfg.Model, timeout: t}, nil
}

// Complete sends one prompt and returns the generated text. The call is
// bounded by the configured timeout and retried once on transient failure.
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := g.complete(ctx, prompt)
	if err == nil {
		return out, nil
	}
	if ctx.Err() != nil {
		return "", err
	}
	// One retry for transient network failure; anything persistent
	// surfaces to the caller.
	out, retryErr := g.complete(ctx, prompt)
	if retryErr != nil {
		return "", fmt.Errorf("generate content (after retry): %w", retryErr)
	}
	return out, nil
}

func (g *Gemini) complete(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	resp, err := g.client.Models.GenerateContent(callCtx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
