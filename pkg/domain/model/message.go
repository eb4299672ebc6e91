package model

import (
	"time"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
	"github.com/google/uuid"
)

// EmbeddingDimension is the dimension of the embedding vector.
// OpenAI text-embedding-ada-002 uses 1536 dimensions.
const EmbeddingDimension = 1536

// MessageID is a UUID-based identifier for Message
type MessageID string

// NewMessageID generates a new UUID v4 MessageID
func NewMessageID() MessageID {
	return MessageID(uuid.New().String())
}

// Message represents a single chat message exchanged with a companion persona.
// The embedding is computed once when the message is persisted and is used for
// similarity-based retrieval of conversational memory. A message without an
// embedding is still valid; it is just invisible to similarity search.
type Message struct {
	ID        MessageID
	UserID    string
	Persona   types.PersonaID
	Role      types.MessageRole
	Text      string
	Embedding []float32
	CreatedAt time.Time
}

// ToEmbeddedRecord converts the message into the retrieval candidate form
func (m *Message) ToEmbeddedRecord() EmbeddedRecord {
	return EmbeddedRecord{
		ID:        string(m.ID),
		Text:      m.Text,
		Role:      m.Role,
		Tag:       m.Persona.String(),
		Embedding: m.Embedding,
		CreatedAt: m.CreatedAt,
	}
}
