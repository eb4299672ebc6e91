package usecase

import (
	"fmt"
	"sync"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
)

// messageCache holds recently listed message history per (user, persona).
// Sending a message invalidates the pair so the next listing reflects it;
// InvalidateMessages is exposed on UseCases for persona switches and logins.
type messageCache struct {
	mu      sync.RWMutex
	entries map[string][]*model.Message
}

func newMessageCache() *messageCache {
	return &messageCache{
		entries: make(map[string][]*model.Message),
	}
}

func cacheKey(userID string, persona types.PersonaID, limit int) string {
	return fmt.Sprintf("%s/%s/%d", userID, persona, limit)
}

func (c *messageCache) get(userID string, persona types.PersonaID, limit int) ([]*model.Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	msgs, ok := c.entries[cacheKey(userID, persona, limit)]
	return msgs, ok
}

func (c *messageCache) set(userID string, persona types.PersonaID, limit int, msgs []*model.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey(userID, persona, limit)] = msgs
}

func (c *messageCache) invalidate(userID string, persona types.PersonaID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := userID + "/" + persona.String() + "/"
	for key := range c.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.entries, key)
		}
	}
}

// InvalidateMessages drops any cached message history for the pair
func (uc *UseCases) InvalidateMessages(userID string, persona types.PersonaID) {
	uc.msgCache.invalidate(userID, persona)
}
