package model

import (
	"time"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// TarotSpreadSize is the number of cards in a reading
const TarotSpreadSize = 3

// MaxTarotHistory is the maximum number of readings kept per user.
// Creating a reading beyond this prunes the oldest ones.
const MaxTarotHistory = 10

// ReadingID is a UUID-based identifier for TarotReading
type ReadingID string

// NewReadingID generates a new UUID v4 ReadingID
func NewReadingID() ReadingID {
	return ReadingID(uuid.New().String())
}

// DrawnCard is one card position in a reading. Only the card ID and
// orientation are persisted; full card data is restored from the deck on read.
type DrawnCard struct {
	CardID   int
	Reversed bool
}

// TarotReading represents one three-card reading for a user
type TarotReading struct {
	ID             ReadingID
	UserID         string
	Question       string
	Cards          []DrawnCard
	Mode           types.TarotMode
	Topic          types.TarotTopic
	Interpretation string // optional LLM-generated interpretation
	CreatedAt      time.Time
}

// Validate checks the reading's user-supplied fields
func (r *TarotReading) Validate() error {
	if r.Question == "" {
		return goerr.New("tarot question is required")
	}
	if len(r.Cards) != TarotSpreadSize {
		return goerr.New("tarot reading requires exactly three cards", goerr.V("cards", len(r.Cards)))
	}
	if !r.Mode.IsValid() {
		return goerr.New("invalid tarot mode", goerr.V("mode", r.Mode))
	}
	if !r.Topic.IsValid() {
		return goerr.New("invalid tarot topic", goerr.V("topic", r.Topic))
	}
	return nil
}
