package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pakbuy/backend/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	DefaultModel      = "gemini-1.5-flash"
	DefaultAPIVersion = "v1beta"
)

// Config holds Gemini client settings.
// An empty BaseURL uses the SDK's public endpoint.
type Config struct {
	APIKey            string
	BaseURL           string
	APIVersion        string
	Model             string
	RequestsPerMinute int
}

// Client sends single-turn prompts through the Gemini SDK
type Client struct {
	genai       *genai.Client
	model       string
	rateLimiter *rate.Limiter
	logger      zerolog.Logger
	debug       bool
}

// NewClient creates a new Gemini API client
func NewClient(ctx context.Context, cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: Gemini API key is required", domain.ErrCapabilityDisabled)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.BaseURL,
			APIVersion: apiVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating Gemini client: %v", domain.ErrProviderError, err)
	}

	// rate.Limit is requests per second
	perMinute := cfg.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 600
	}
	limiter := rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 10) // burst of 10 requests

	return &Client{
		genai:       gc,
		model:       model,
		rateLimiter: limiter,
		logger:      logger.With().Str("component", "gemini").Logger(),
	}, nil
}

// SetDebug enables logging of prompts and raw completions
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Model returns the configured model name
func (c *Client) Model() string {
	return c.model
}

// Complete sends a single-turn prompt and returns the generated text.
// A single attempt is made; callers decide what to do on failure.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", classifyError(ctx, fmt.Errorf("rate limiter: %w", err))
	}

	if c.debug {
		c.logger.Debug().Str("model", c.model).Int("prompt_len", len(prompt)).Msg("sending generateContent")
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), newGenerateConfig())
	if err != nil {
		c.logger.Warn().Err(err).Msg("generateContent failed")
		return "", classifyError(ctx, err)
	}

	text, err := extractText(resp)
	if err != nil {
		return "", err
	}

	if c.debug {
		c.logger.Debug().Str("completion", text).Msg("received completion")
	}
	return text, nil
}

// classifyError maps deadline failures to ErrTimeout and everything else to ErrProviderError.
// rate.Limiter.Wait reports a too-short deadline without wrapping context errors.
func classifyError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		strings.Contains(err.Error(), "would exceed context deadline") {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrProviderError, err)
}
