package chat

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	openai "github.com/sashabaranov/go-openai"
)

// Defaults for the direct transport. The base URL points at OpenRouter's
// OpenAI-compatible API in production; the model ID follows its namespace.
const (
	DefaultChatModel   = "anthropic/claude-3.5-sonnet"
	defaultTemperature = 0.8
	defaultMaxTokens   = 1000
)

// OpenAITransport is the direct fallback transport against an
// OpenAI-compatible chat completion endpoint
type OpenAITransport struct {
	client *openai.Client
	model  string
}

var _ Transport = &OpenAITransport{}

// NewOpenAITransport creates the direct transport. An empty baseURL uses the
// upstream default; model may be empty to use DefaultChatModel.
func NewOpenAITransport(apiKey, baseURL, model string) (*OpenAITransport, error) {
	if apiKey == "" {
		return nil, goerr.New("API key is required for direct chat transport")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	t := &OpenAITransport{
		client: openai.NewClientWithConfig(cfg),
		model:  DefaultChatModel,
	}
	if model != "" {
		t.model = model
	}

	return t, nil
}

func (t *OpenAITransport) Name() string {
	return "openai"
}

func (t *OpenAITransport) Complete(ctx context.Context, systemPrompt, message string) (string, error) {
	messages := []openai.ChatCompletionMessage{}
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       t.model,
		Messages:    messages,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	})
	if err != nil {
		return "", goerr.Wrap(err, "direct chat request failed")
	}

	if len(resp.Choices) == 0 {
		return "", goerr.New("direct chat response has no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
