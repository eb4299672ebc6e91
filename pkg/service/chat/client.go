package chat

import (
	"context"
	"strings"
	"time"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/interfaces"
	"github.com/emotion-sanctuary/sanctum/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultTimeout bounds one Complete call across all transports
const DefaultTimeout = 30 * time.Second

// Sentinel errors for the chat client
var (
	ErrInvalidInput = goerr.New("chat message is empty")
	ErrUnavailable  = goerr.New("chat completion unavailable")
)

// Transport produces a completion over one concrete wire protocol.
// Transports are tried in order until one succeeds.
type Transport interface {
	Name() string
	Complete(ctx context.Context, systemPrompt, message string) (string, error)
}

// Client walks an ordered transport chain, same shape as the embedding
// adapter: worker proxy first, direct provider as fallback.
type Client struct {
	transports []Transport
	timeout    time.Duration
}

var _ interfaces.ChatClient = &Client{}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithTimeout overrides the per-call timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a chat client from an ordered transport chain
func New(transports []Transport, opts ...Option) (*Client, error) {
	if len(transports) == 0 {
		return nil, goerr.New("at least one chat transport is required")
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

// Complete generates an assistant reply via the first transport that succeeds
func (c *Client) Complete(ctx context.Context, systemPrompt, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", goerr.Wrap(ErrInvalidInput, "cannot complete empty message")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logger := logging.From(ctx)

	var lastErr error
	for _, t := range c.transports {
		reply, err := t.Complete(ctx, systemPrompt, message)
		if err != nil {
			logger.Warn("chat transport failed, trying next",
				"transport", t.Name(),
				"error", err.Error(),
			)
			lastErr = err
			continue
		}
		if strings.TrimSpace(reply) == "" {
			logger.Warn("chat transport returned empty reply, trying next",
				"transport", t.Name(),
			)
			lastErr = goerr.New("empty reply returned", goerr.V("transport", t.Name()))
			continue
		}
		return reply, nil
	}

	return "", goerr.Wrap(ErrUnavailable, "all chat transports failed",
		goerr.V("transports", len(c.transports)),
		goerr.V("cause", lastErr),
	)
}
