package usecase

import (
	"context"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultRelatedEntryLimit bounds related-entry lookups when no explicit
// limit is given
const DefaultRelatedEntryLimit = 5

// DiaryUseCase manages diary entries and their embeddings. The embedding is
// derived from Content alone and regenerated when Content changes.
type DiaryUseCase struct {
	uc *UseCases
}

func newDiaryUseCase(uc *UseCases) *DiaryUseCase {
	return &DiaryUseCase{uc: uc}
}

// embedContent computes the entry embedding; failure leaves the entry
// without one and logs a warning
func (x *DiaryUseCase) embedContent(ctx context.Context, entry *model.DiaryEntry) {
	if x.uc.embedder == nil {
		return
	}
	vec, err := x.uc.embedder.Embed(ctx, entry.Content)
	if err != nil {
		logging.From(ctx).Warn("failed to embed diary content, storing without embedding",
			"error", err.Error(),
		)
		return
	}
	entry.Embedding = vec
}

// Create validates and persists a new entry with a best-effort embedding
func (x *DiaryUseCase) Create(ctx context.Context, userID string, entry *model.DiaryEntry) (*model.DiaryEntry, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	x.embedContent(ctx, entry)

	created, err := x.uc.repo.Diary().Create(ctx, userID, entry)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create diary entry")
	}
	return created, nil
}

// Get retrieves one entry
func (x *DiaryUseCase) Get(ctx context.Context, userID string, id model.DiaryID) (*model.DiaryEntry, error) {
	return x.uc.repo.Diary().Get(ctx, userID, id)
}

// List returns the user's entries, newest first
func (x *DiaryUseCase) List(ctx context.Context, userID string) ([]*model.DiaryEntry, error) {
	return x.uc.repo.Diary().List(ctx, userID)
}

// Update validates and persists the edit. The embedding is regenerated only
// when Content changed; other edits keep the stored vector.
func (x *DiaryUseCase) Update(ctx context.Context, userID string, entry *model.DiaryEntry) (*model.DiaryEntry, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	existing, err := x.uc.repo.Diary().Get(ctx, userID, entry.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load diary entry for update", goerr.V("diaryID", entry.ID))
	}

	if entry.Content != existing.Content {
		entry.Embedding = nil
		x.embedContent(ctx, entry)
	} else {
		entry.Embedding = existing.Embedding
	}

	updated, err := x.uc.repo.Diary().Update(ctx, userID, entry)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update diary entry")
	}
	return updated, nil
}

// Delete removes an entry and its embedding
func (x *DiaryUseCase) Delete(ctx context.Context, userID string, id model.DiaryID) error {
	return x.uc.repo.Diary().Delete(ctx, userID, id)
}

// Related returns entries semantically close to the given one via vector
// search. An entry without an embedding has no related entries.
func (x *DiaryUseCase) Related(ctx context.Context, userID string, id model.DiaryID, limit int) ([]*model.DiaryEntry, error) {
	if limit <= 0 {
		limit = DefaultRelatedEntryLimit
	}

	entry, err := x.uc.repo.Diary().Get(ctx, userID, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load diary entry", goerr.V("diaryID", id))
	}
	if len(entry.Embedding) == 0 {
		return []*model.DiaryEntry{}, nil
	}

	// fetch one extra so the entry itself can be dropped
	neighbors, err := x.uc.repo.Diary().FindByEmbedding(ctx, userID, entry.Embedding, limit+1)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search related diary entries")
	}

	related := make([]*model.DiaryEntry, 0, limit)
	for _, n := range neighbors {
		if n.ID == entry.ID {
			continue
		}
		related = append(related, n)
		if len(related) == limit {
			break
		}
	}
	return related, nil
}
