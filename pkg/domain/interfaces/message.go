package interfaces

import (
	"context"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
)

// MessageRepository defines persistence for chat messages
type MessageRepository interface {
	// Create persists a new message. ID and CreatedAt are assigned when empty.
	Create(ctx context.Context, userID string, msg *model.Message) (*model.Message, error)

	// ListRecent returns up to limit messages for the user ordered by
	// creation time descending. A non-empty persona restricts the result to
	// messages exchanged with that persona; implementations may require an
	// index for the filtered variant and return an error when it is missing.
	ListRecent(ctx context.Context, userID string, persona types.PersonaID, limit int) ([]*model.Message, error)

	// Delete removes a message and its embedding
	Delete(ctx context.Context, userID string, id model.MessageID) error
}
