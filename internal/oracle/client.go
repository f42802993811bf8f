package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chrishsmith/sourcify-sub003/internal/common"
	"github.com/chrishsmith/sourcify-sub003/internal/service"
)

// provider is the raw completion transport behind the oracle client.
type provider interface {
	complete(ctx context.Context, prompt string) (string, error)
}

// Config holds configuration for the oracle client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	MaxRetries  int
	RetryDelay  time.Duration
	CacheTTL    time.Duration
	RateLimit   int
	Temperature float64
	MaxTokens   int
}

// Client implements service.Oracle over an LLM provider, adding a TTL
// response cache, a token-bucket rate limiter and retry with backoff.
type Client struct {
	provider    provider
	cache       *responseCache
	rateLimiter *rateLimiter
	logger      *slog.Logger
	retryOpts   service.RetryOptions
}

// NewClient creates an oracle client for the configured provider.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var p provider
	var err error
	switch strings.ToLower(cfg.Provider) {
	case "anthropic":
		p, err = newAnthropicProvider(cfg)
	case "openai":
		p, err = newOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported oracle provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create oracle provider: %w", err)
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Client{
		provider:    p,
		cache:       newResponseCache(cfg.CacheTTL),
		rateLimiter: newRateLimiter(cfg.RateLimit),
		logger:      logger,
		retryOpts:   retryOpts,
	}, nil
}

// Classify asks the oracle for a candidate chapter and heading.
func (c *Client) Classify(ctx context.Context, req service.OracleRequest) (service.OracleResponse, error) {
	key := cacheKey(req)
	if resp, found := c.cache.get(key); found {
		c.logger.Debug("oracle cache hit", "product_type", req.ProductType)
		return resp, nil
	}

	if err := c.rateLimiter.wait(ctx); err != nil {
		return service.OracleResponse{}, fmt.Errorf("rate limit error: %w", err)
	}

	prompt := buildPrompt(req)

	var resp service.OracleResponse
	err := common.WithRetry(ctx, func() error {
		content, err := c.provider.complete(ctx, prompt)
		if err != nil {
			c.logger.Warn("oracle request attempt failed", "error", err)
			return &common.RetryableError{Err: err, Retryable: true}
		}

		parsed, err := parseOracleResponse(content)
		if err != nil {
			c.logger.Warn("malformed oracle response", "error", err)
			return &common.RetryableError{Err: err, Retryable: true}
		}

		resp = parsed
		return nil
	}, c.retryOpts)
	if err != nil {
		return service.OracleResponse{}, fmt.Errorf("oracle classification failed: %w", err)
	}

	c.cache.set(key, resp)

	c.logger.Info("oracle classified product",
		"product_type", req.ProductType,
		"chapter", resp.Chapter.Code,
		"heading", resp.Heading.Code)

	return resp, nil
}

// Close stops background goroutines and cleans up resources.
func (c *Client) Close() error {
	if c.cache != nil {
		c.cache.Close()
	}
	if c.rateLimiter != nil {
		c.rateLimiter.Close()
	}
	return nil
}

// buildPrompt creates the prompt for a classification request.
func buildPrompt(req service.OracleRequest) string {
	details := fmt.Sprintf("Description: %s", req.Description)
	if req.ProductType != "" {
		details += fmt.Sprintf("\nProduct Type: %s", req.ProductType)
	}
	if req.Material != "" {
		details += fmt.Sprintf("\nMaterial: %s", req.Material)
	}
	if req.Use != "" {
		details += fmt.Sprintf("\nIntended Use: %s", req.Use)
	}

	return fmt.Sprintf(`Determine the Harmonized Tariff Schedule chapter (2 digits) and heading (4 digits) for this product.

Product:
%s

Instructions:
1. Pick the single most appropriate chapter and the heading within it.
2. The heading code must start with the chapter code.
3. Report your own confidence in each choice as a number between 0.0 and 1.0.
4. Respond with ONLY this JSON, no other text:

{"chapter": {"code": "NN", "name": "chapter name", "confidence": 0.0}, "heading": {"code": "NNNN", "name": "heading name", "confidence": 0.0}}`,
		details)
}
