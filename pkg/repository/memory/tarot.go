package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type tarotRepository struct {
	mu       sync.RWMutex
	readings map[string]map[model.ReadingID]*model.TarotReading // keyed by userID
}

func newTarotRepository() *tarotRepository {
	return &tarotRepository{
		readings: make(map[string]map[model.ReadingID]*model.TarotReading),
	}
}

func copyReading(r *model.TarotReading) *model.TarotReading {
	copied := &model.TarotReading{
		ID:             r.ID,
		UserID:         r.UserID,
		Question:       r.Question,
		Mode:           r.Mode,
		Topic:          r.Topic,
		Interpretation: r.Interpretation,
		CreatedAt:      r.CreatedAt,
	}
	copied.Cards = make([]model.DrawnCard, len(r.Cards))
	copy(copied.Cards, r.Cards)
	return copied
}

func (r *tarotRepository) Create(ctx context.Context, userID string, reading *model.TarotReading) (*model.TarotReading, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.readings[userID]; !exists {
		r.readings[userID] = make(map[model.ReadingID]*model.TarotReading)
	}

	created := copyReading(reading)
	if created.ID == "" {
		created.ID = model.NewReadingID()
	}
	created.UserID = userID
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.readings[userID][created.ID] = created
	return copyReading(created), nil
}

func (r *tarotRepository) List(ctx context.Context, userID string, limit int) ([]*model.TarotReading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.readings[userID]
	if !exists {
		return []*model.TarotReading{}, nil
	}

	result := make([]*model.TarotReading, 0, len(bucket))
	for _, reading := range bucket {
		result = append(result, copyReading(reading))
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

func (r *tarotRepository) Delete(ctx context.Context, userID string, id model.ReadingID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.readings[userID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "tarot reading not found", goerr.V("readingID", id))
	}

	if _, exists := bucket[id]; !exists {
		return goerr.Wrap(ErrNotFound, "tarot reading not found", goerr.V("readingID", id))
	}

	delete(bucket, id)
	return nil
}
