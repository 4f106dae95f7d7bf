// Package gemini implements the Embedder interface on top of the Google
// GenAI embeddings API.
package gemini

import (
	"context"
	"fmt"
	"os"
	"time"

	"google.golang.org/genai"
)

// Client embeds text with a Gemini embedding model. Query and document
// embeds use the matching retrieval task types so similarity scores line up.
type Client struct {
	client    *genai.Client
	model     string
	timeout   time.Duration
	dimension int
}

// Config configures the Gemini embeddings client.
type Config struct {
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// NewClient creates a Gemini embeddings client using the provided
// configuration. The API key is read from the configured environment
// variable.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "GEMINI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-embedding-001"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: key})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{client: client, model: cfg.Model, timeout: t}, nil
}

// Name returns the identifier of this embedder implementation.
func (c *Client) Name() string { return "gemini" }

// Prepare is not required for remote embedding; dimension is set lazily on
// the first embed.
func (c *Client) Prepare(corpus []string) error { return nil }

// Dimension returns the dimensionality of the produced embedding vectors.
// Zero until the first embed call succeeds.
func (c *Client) Dimension() int { return c.dimension }

// EmbedDocument embeds corpus text with the retrieval-document task type.
func (c *Client) EmbedDocument(text string) ([]float64, error) {
	return c.embed(text, "RETRIEVAL_DOCUMENT")
}

// EmbedQuery embeds a question with the retrieval-query task type.
func (c *Client) EmbedQuery(text string) ([]float64, error) {
	return c.embed(text, "RETRIEVAL_QUERY")
}

func (c *Client) embed(text string, task string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}
	result, err := c.client.Models.EmbedContent(ctx, c.model, contents,
		&genai.EmbedContentConfig{TaskType: task})
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("gemini embed: no embeddings returned")
	}
	values := result.Embeddings[0].Values
	vec := make([]float64, len(values))
	for i, v := range values {
		vec[i] = float64(v)
	}
	if c.dimension == 0 {
		c.dimension = len(vec)
	}
	return vec, nil
}
