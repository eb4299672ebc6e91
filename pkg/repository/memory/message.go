package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type messageRepository struct {
	mu       sync.RWMutex
	messages map[string]map[model.MessageID]*model.Message // keyed by userID
}

func newMessageRepository() *messageRepository {
	return &messageRepository{
		messages: make(map[string]map[model.MessageID]*model.Message),
	}
}

func copyMessage(m *model.Message) *model.Message {
	copied := &model.Message{
		ID:        m.ID,
		UserID:    m.UserID,
		Persona:   m.Persona,
		Role:      m.Role,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
	if m.Embedding != nil {
		copied.Embedding = make([]float32, len(m.Embedding))
		copy(copied.Embedding, m.Embedding)
	}
	return copied
}

func (r *messageRepository) Create(ctx context.Context, userID string, msg *model.Message) (*model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.messages[userID]; !exists {
		r.messages[userID] = make(map[model.MessageID]*model.Message)
	}

	created := copyMessage(msg)
	if created.ID == "" {
		created.ID = model.NewMessageID()
	}
	created.UserID = userID
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.messages[userID][created.ID] = created
	return copyMessage(created), nil
}

func (r *messageRepository) ListRecent(ctx context.Context, userID string, persona types.PersonaID, limit int) ([]*model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.messages[userID]
	if !exists {
		return []*model.Message{}, nil
	}

	result := make([]*model.Message, 0, len(bucket))
	for _, m := range bucket {
		if persona != "" && m.Persona != persona {
			continue
		}
		result = append(result, copyMessage(m))
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

func (r *messageRepository) Delete(ctx context.Context, userID string, id model.MessageID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.messages[userID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "message not found", goerr.V("messageID", id))
	}

	if _, exists := bucket[id]; !exists {
		return goerr.Wrap(ErrNotFound, "message not found", goerr.V("messageID", id))
	}

	delete(bucket, id)
	return nil
}
