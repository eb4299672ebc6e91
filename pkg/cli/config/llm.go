package config

import (
	"log/slog"
	"time"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/interfaces"
	"github.com/emotion-sanctuary/sanctum/pkg/service/chat"
	"github.com/emotion-sanctuary/sanctum/pkg/service/embedding"
	"github.com/emotion-sanctuary/sanctum/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// LLM holds CLI flags for the embedding and chat provider chains. The worker
// proxy is the primary transport for both; the direct OpenAI-compatible API
// (OpenRouter) is the fallback when an API key is configured.
type LLM struct {
	workerURL string

	apiKey  string `masq:"secret"`
	baseURL string

	embeddingModel string
	chatModel      string

	embeddingTimeout time.Duration
	chatTimeout      time.Duration
}

// Flags returns CLI flags for LLM provider configuration
func (l *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "worker-url",
			Usage:       "Base URL of the proxying worker for embedding and chat",
			Sources:     cli.EnvVars("SANCTUM_WORKER_URL"),
			Destination: &l.workerURL,
		},
		&cli.StringFlag{
			Name:        "llm-api-key",
			Usage:       "API key for the direct OpenAI-compatible provider (fallback transport)",
			Sources:     cli.EnvVars("SANCTUM_LLM_API_KEY"),
			Destination: &l.apiKey,
		},
		&cli.StringFlag{
			Name:        "llm-base-url",
			Usage:       "Base URL of the direct OpenAI-compatible provider (e.g. OpenRouter)",
			Value:       "https://openrouter.ai/api/v1",
			Sources:     cli.EnvVars("SANCTUM_LLM_BASE_URL"),
			Destination: &l.baseURL,
		},
		&cli.StringFlag{
			Name:        "embedding-model",
			Usage:       "Embedding model for the direct transport",
			Sources:     cli.EnvVars("SANCTUM_EMBEDDING_MODEL"),
			Destination: &l.embeddingModel,
		},
		&cli.StringFlag{
			Name:        "chat-model",
			Usage:       "Chat model for the direct transport",
			Sources:     cli.EnvVars("SANCTUM_CHAT_MODEL"),
			Destination: &l.chatModel,
		},
		&cli.DurationFlag{
			Name:        "embedding-timeout",
			Usage:       "Timeout for one embedding call across all transports",
			Value:       embedding.DefaultTimeout,
			Sources:     cli.EnvVars("SANCTUM_EMBEDDING_TIMEOUT"),
			Destination: &l.embeddingTimeout,
		},
		&cli.DurationFlag{
			Name:        "chat-timeout",
			Usage:       "Timeout for one chat completion across all transports",
			Value:       chat.DefaultTimeout,
			Sources:     cli.EnvVars("SANCTUM_CHAT_TIMEOUT"),
			Destination: &l.chatTimeout,
		},
	}
}

// LogAttrs returns log attributes for the LLM configuration
func (l *LLM) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("worker_url", l.workerURL),
		slog.String("base_url", l.baseURL),
		slog.Bool("api_key_configured", l.apiKey != ""),
	}
}

// ConfigureEmbedding builds the embedding client from the configured
// transports. Returns nil when no transport is configured; embedding-backed
// retrieval is then disabled.
func (l *LLM) ConfigureEmbedding() (interfaces.EmbeddingClient, error) {
	var transports []embedding.Transport

	if l.workerURL != "" {
		worker, err := embedding.NewWorkerTransport(l.workerURL)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure worker embedding transport")
		}
		transports = append(transports, worker)
	}
	if l.apiKey != "" {
		direct, err := embedding.NewOpenAITransport(l.apiKey, l.baseURL, l.embeddingModel)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure direct embedding transport")
		}
		transports = append(transports, direct)
	}

	if len(transports) == 0 {
		logging.Default().Warn("No embedding transport configured, similarity retrieval disabled")
		return nil, nil
	}

	return embedding.New(transports, embedding.WithTimeout(l.embeddingTimeout))
}

// ConfigureChat builds the chat client from the configured transports.
// At least one transport is required; the service cannot converse without one.
func (l *LLM) ConfigureChat() (interfaces.ChatClient, error) {
	var transports []chat.Transport

	if l.workerURL != "" {
		worker, err := chat.NewWorkerTransport(l.workerURL)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure worker chat transport")
		}
		transports = append(transports, worker)
	}
	if l.apiKey != "" {
		direct, err := chat.NewOpenAITransport(l.apiKey, l.baseURL, l.chatModel)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure direct chat transport")
		}
		transports = append(transports, direct)
	}

	if len(transports) == 0 {
		return nil, goerr.New("no chat transport configured: set worker-url or llm-api-key")
	}

	return chat.New(transports, chat.WithTimeout(l.chatTimeout))
}
