package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type diaryRepository struct {
	mu      sync.RWMutex
	entries map[string]map[model.DiaryID]*model.DiaryEntry // keyed by userID
}

func newDiaryRepository() *diaryRepository {
	return &diaryRepository{
		entries: make(map[string]map[model.DiaryID]*model.DiaryEntry),
	}
}

func copyDiaryEntry(e *model.DiaryEntry) *model.DiaryEntry {
	copied := &model.DiaryEntry{
		ID:        e.ID,
		UserID:    e.UserID,
		Date:      e.Date,
		Title:     e.Title,
		Mood:      e.Mood,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if e.Embedding != nil {
		copied.Embedding = make([]float32, len(e.Embedding))
		copy(copied.Embedding, e.Embedding)
	}
	return copied
}

func (r *diaryRepository) Create(ctx context.Context, userID string, entry *model.DiaryEntry) (*model.DiaryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[userID]; !exists {
		r.entries[userID] = make(map[model.DiaryID]*model.DiaryEntry)
	}

	now := time.Now().UTC()
	created := copyDiaryEntry(entry)
	if created.ID == "" {
		created.ID = model.NewDiaryID()
	}
	created.UserID = userID
	created.CreatedAt = now
	created.UpdatedAt = now

	r.entries[userID][created.ID] = created
	return copyDiaryEntry(created), nil
}

func (r *diaryRepository) Get(ctx context.Context, userID string, id model.DiaryID) (*model.DiaryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.entries[userID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "diary entry not found", goerr.V("diaryID", id))
	}

	entry, exists := bucket[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "diary entry not found", goerr.V("diaryID", id))
	}

	return copyDiaryEntry(entry), nil
}

func (r *diaryRepository) Update(ctx context.Context, userID string, entry *model.DiaryEntry) (*model.DiaryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.entries[userID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "diary entry not found", goerr.V("diaryID", entry.ID))
	}

	existing, exists := bucket[entry.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "diary entry not found", goerr.V("diaryID", entry.ID))
	}

	updated := copyDiaryEntry(entry)
	updated.UserID = userID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	bucket[entry.ID] = updated
	return copyDiaryEntry(updated), nil
}

func (r *diaryRepository) Delete(ctx context.Context, userID string, id model.DiaryID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.entries[userID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "diary entry not found", goerr.V("diaryID", id))
	}

	if _, exists := bucket[id]; !exists {
		return goerr.Wrap(ErrNotFound, "diary entry not found", goerr.V("diaryID", id))
	}

	delete(bucket, id)
	return nil
}

func (r *diaryRepository) List(ctx context.Context, userID string) ([]*model.DiaryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.entries[userID]
	if !exists {
		return []*model.DiaryEntry{}, nil
	}

	result := make([]*model.DiaryEntry, 0, len(bucket))
	for _, e := range bucket {
		result = append(result, copyDiaryEntry(e))
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *diaryRepository) FindByEmbedding(ctx context.Context, userID string, embedding []float32, limit int) ([]*model.DiaryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.entries[userID]
	if !exists {
		return []*model.DiaryEntry{}, nil
	}

	type scored struct {
		entry *model.DiaryEntry
		score float64
	}

	var candidates []scored
	for _, e := range bucket {
		if len(e.Embedding) == 0 {
			continue
		}
		s := diaryCosineSimilarity(embedding, e.Embedding)
		candidates = append(candidates, scored{entry: copyDiaryEntry(e), score: s})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if limit > len(candidates) {
		limit = len(candidates)
	}

	result := make([]*model.DiaryEntry, limit)
	for i := 0; i < limit; i++ {
		result[i] = candidates[i].entry
	}

	return result, nil
}

func diaryCosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}

	return dot / denom
}
