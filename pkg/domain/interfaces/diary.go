package interfaces

import (
	"context"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
)

// DiaryRepository defines persistence for diary entries
type DiaryRepository interface {
	// Create persists a new entry. ID and timestamps are assigned when empty.
	Create(ctx context.Context, userID string, entry *model.DiaryEntry) (*model.DiaryEntry, error)

	// Get retrieves an entry by ID
	Get(ctx context.Context, userID string, id model.DiaryID) (*model.DiaryEntry, error)

	// Update overwrites an existing entry and bumps UpdatedAt
	Update(ctx context.Context, userID string, entry *model.DiaryEntry) (*model.DiaryEntry, error)

	// Delete removes an entry and its embedding
	Delete(ctx context.Context, userID string, id model.DiaryID) error

	// List returns all entries for the user ordered by creation time descending
	List(ctx context.Context, userID string) ([]*model.DiaryEntry, error)

	// FindByEmbedding performs vector similarity search using cosine distance.
	// Returns up to limit entries most similar to the given embedding.
	FindByEmbedding(ctx context.Context, userID string, embedding []float32, limit int) ([]*model.DiaryEntry, error)
}
