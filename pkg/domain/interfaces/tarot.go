package interfaces

import (
	"context"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
)

// TarotRepository defines persistence for tarot readings
type TarotRepository interface {
	// Create persists a new reading. ID and CreatedAt are assigned when empty.
	Create(ctx context.Context, userID string, reading *model.TarotReading) (*model.TarotReading, error)

	// List returns up to limit readings for the user ordered by creation time
	// descending. limit <= 0 means no limit.
	List(ctx context.Context, userID string, limit int) ([]*model.TarotReading, error)

	// Delete removes a reading
	Delete(ctx context.Context, userID string, id model.ReadingID) error
}
