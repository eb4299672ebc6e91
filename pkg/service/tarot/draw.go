package tarot

import (
	"context"
	"math/rand/v2"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/utils/logging"
)

// RestoredCard is a drawn card joined back with its deck data
type RestoredCard struct {
	Card     Card `json:"card"`
	Reversed bool `json:"reversed"`
}

// Meaning returns the card meaning for its orientation
func (c RestoredCard) Meaning() string {
	if c.Reversed {
		return c.Card.Reversed
	}
	return c.Card.Upright
}

// Draw picks a three-card spread: distinct cards, each independently upright
// or reversed
func Draw() []model.DrawnCard {
	picked := rand.Perm(DeckSize)[:model.TarotSpreadSize]

	cards := make([]model.DrawnCard, 0, model.TarotSpreadSize)
	for _, idx := range picked {
		cards = append(cards, model.DrawnCard{
			CardID:   majorArcana[idx].ID,
			Reversed: rand.IntN(2) == 1,
		})
	}
	return cards
}

// Restore joins persisted drawn cards with the deck. A card ID the deck no
// longer knows is skipped with a warning rather than failing the reading.
func Restore(ctx context.Context, drawn []model.DrawnCard) []RestoredCard {
	logger := logging.From(ctx)

	restored := make([]RestoredCard, 0, len(drawn))
	for _, d := range drawn {
		card, ok := CardByID(d.CardID)
		if !ok {
			logger.Warn("unknown card ID in stored reading, skipping",
				"cardID", d.CardID,
			)
			continue
		}
		restored = append(restored, RestoredCard{Card: card, Reversed: d.Reversed})
	}
	return restored
}
