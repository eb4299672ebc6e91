package interfaces

import "context"

// EmbeddingClient converts text into a fixed-length embedding vector.
// Implementations hide the transport (proxy worker, direct API) from callers.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ChatClient produces a companion reply for an outbound message under the
// given system prompt.
type ChatClient interface {
	Complete(ctx context.Context, systemPrompt, message string) (string, error)
}
