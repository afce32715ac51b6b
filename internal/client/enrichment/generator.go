package enrichment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"
)

// ErrMissingAPIKey is returned by generators configured without credentials.
// The gateway does not retry it.
var ErrMissingAPIKey = errors.New("API_KEY_MISSING")

// Generator turns a prompt into text. When jsonMode is set the provider is
// asked for a JSON document.
type Generator interface {
	Generate(ctx context.Context, prompt string, jsonMode bool) (string, error)
}

const (
	DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com/"
	DefaultGeminiModel    = "gemini-3-flash-preview"
)

// GeminiGenerator calls generateContent through the genai SDK. The client
// is built on first use.
type GeminiGenerator struct {
	APIKey   string
	Model    string
	Endpoint string
	Client   *http.Client

	mu     sync.Mutex
	client *genai.Client
}

func NewGeminiGenerator(apiKey, model, endpoint string) *GeminiGenerator {
	if model == "" {
		model = DefaultGeminiModel
	}
	if endpoint == "" {
		endpoint = DefaultGeminiEndpoint
	}
	return &GeminiGenerator{
		APIKey:   apiKey,
		Model:    model,
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *GeminiGenerator) genaiClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      g.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  g.Client,
		HTTPOptions: genai.HTTPOptions{BaseURL: g.Endpoint},
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	g.client = c
	return c, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	if g.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	c, err := g.genaiClient(ctx)
	if err != nil {
		return "", err
	}

	var cfg *genai.GenerateContentConfig
	if jsonMode {
		cfg = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}

	resp, err := c.Models.GenerateContent(ctx, g.Model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	var sb strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil && resp.Candidates[0].Content != nil {
		for _, p := range resp.Candidates[0].Content.Parts {
			if p != nil && !p.Thought {
				sb.WriteString(p.Text)
			}
		}
	}
	return sb.String(), nil
}
