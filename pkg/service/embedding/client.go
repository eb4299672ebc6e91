package embedding

import (
	"context"
	"strings"
	"time"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/interfaces"
	"github.com/emotion-sanctuary/sanctum/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// MaxInputLength is the maximum text length (in runes) submitted to a
// transport. Longer input is truncated silently; truncation is deterministic,
// not an error.
const MaxInputLength = 8000

// DefaultTimeout bounds one Embed call across all transports
const DefaultTimeout = 10 * time.Second

// Transport converts text into an embedding vector over one concrete wire
// protocol. Transports are tried in order until one succeeds.
type Transport interface {
	Name() string
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Client is the embedding provider adapter: an ordered chain of transports
// behind the interfaces.EmbeddingClient contract. It performs no caching and
// no retries beyond walking the chain once.
type Client struct {
	transports []Transport
	timeout    time.Duration
}

var _ interfaces.EmbeddingClient = &Client{}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithTimeout overrides the per-call timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates an embedding client from an ordered transport chain.
// At least one transport is required.
func New(transports []Transport, opts ...Option) (*Client, error) {
	if len(transports) == 0 {
		return nil, goerr.New("at least one embedding transport is required")
	}

	c := &Client{
		transports: transports,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Embed converts text into a vector via the first transport that succeeds.
// The returned dimensionality is whatever the provider produced; consistency
// is enforced at comparison time, not here.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "cannot embed empty text")
	}

	if runes := []rune(trimmed); len(runes) > MaxInputLength {
		trimmed = string(runes[:MaxInputLength])
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logger := logging.From(ctx)

	var lastErr error
	for _, t := range c.transports {
		vec, err := t.Embed(ctx, trimmed)
		if err != nil {
			logger.Warn("embedding transport failed, trying next",
				"transport", t.Name(),
				"error", err.Error(),
			)
			lastErr = err
			continue
		}
		if len(vec) == 0 {
			logger.Warn("embedding transport returned empty vector, trying next",
				"transport", t.Name(),
			)
			lastErr = goerr.New("empty embedding returned", goerr.V("transport", t.Name()))
			continue
		}
		return vec, nil
	}

	return nil, goerr.Wrap(ErrUnavailable, "all embedding transports failed",
		goerr.V("transports", len(c.transports)),
		goerr.V("cause", lastErr),
	)
}
