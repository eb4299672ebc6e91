package embedding

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultEmbeddingModel is the embedding model used by the direct transport
const DefaultEmbeddingModel = openai.AdaEmbeddingV2

// OpenAITransport is the direct fallback transport against an
// OpenAI-compatible embeddings endpoint (OpenRouter in production). It is
// configured only when an API key is available.
type OpenAITransport struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

var _ Transport = &OpenAITransport{}

// NewOpenAITransport creates the direct transport. An empty baseURL uses the
// upstream default; model may be empty to use DefaultEmbeddingModel.
func NewOpenAITransport(apiKey, baseURL, model string) (*OpenAITransport, error) {
	if apiKey == "" {
		return nil, goerr.New("API key is required for direct embedding transport")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	t := &OpenAITransport{
		client: openai.NewClientWithConfig(cfg),
		model:  DefaultEmbeddingModel,
	}
	if model != "" {
		t.model = openai.EmbeddingModel(model)
	}

	return t, nil
}

func (t *OpenAITransport) Name() string {
	return "openai"
}

func (t *OpenAITransport) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := t.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: []string{text},
		Model: t.model,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "direct embedding request failed")
	}

	if len(resp.Data) == 0 {
		return nil, goerr.New("direct embedding response has no data")
	}

	return resp.Data[0].Embedding, nil
}
